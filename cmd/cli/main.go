package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/Blastoche/simu-solaire/pkg/cache"
	"github.com/Blastoche/simu-solaire/pkg/runtime/terminal"
	"github.com/Blastoche/simu-solaire/pkg/services/consumption"
	"github.com/Blastoche/simu-solaire/pkg/services/economics"
	"github.com/Blastoche/simu-solaire/pkg/services/production"
	"github.com/Blastoche/simu-solaire/pkg/services/simulation"
	"github.com/Blastoche/simu-solaire/pkg/services/weather"
	"github.com/Blastoche/simu-solaire/pkg/services/weather/pvgis"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)
	zerolog.DefaultContextLogger = &logger

	engine, err := simulation.NewEngine(simulation.Deps{
		Resolver:    weather.NewResolver(pvgis.NewClient(pvgis.DefaultTimeout)),
		Estimator:   production.DefaultChain(),
		Synthesizer: consumption.NewSynthesizer(consumption.DefaultCatalog()),
		Analyzer:    economics.NewAnalyzer(economics.DefaultTariffs()),
		Cache:       cache.NewStack(cache.NewMemoryTier(0)),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Runner: engine,
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
