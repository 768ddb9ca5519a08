package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Blastoche/simu-solaire/pkg/cache"
	"github.com/Blastoche/simu-solaire/pkg/observability"
	"github.com/Blastoche/simu-solaire/pkg/server"
	"github.com/Blastoche/simu-solaire/pkg/services/config"
	"github.com/Blastoche/simu-solaire/pkg/services/consumption"
	"github.com/Blastoche/simu-solaire/pkg/services/economics"
	"github.com/Blastoche/simu-solaire/pkg/services/production"
	"github.com/Blastoche/simu-solaire/pkg/services/simulation"
	"github.com/Blastoche/simu-solaire/pkg/services/weather"
	"github.com/Blastoche/simu-solaire/pkg/services/weather/pvgis"
	"github.com/Blastoche/simu-solaire/pkg/store/duckdb"
	"github.com/Blastoche/simu-solaire/pkg/store/duckdb/results"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the simulation web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the configuration file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.Cache.DbPath})
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	resultStore, err := results.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create result store: %w", err)
	}

	diskTier, err := cache.NewDiskTier(cfg.Cache.DiskDir)
	if err != nil {
		return fmt.Errorf("failed to create disk cache: %w", err)
	}
	stack := cache.NewStack(
		cache.NewMemoryTier(cfg.Cache.MemoryCapacity),
		diskTier,
		cache.NewStoreTier(resultStore),
	)

	var source weather.Source
	if !cfg.Weather.Disabled {
		source = pvgis.NewClient(cfg.Weather.PVGISTimeout)
	}

	tariffs, err := economics.LoadTariffs(cfg.TariffsPath)
	if err != nil {
		return fmt.Errorf("failed to load tariffs: %w", err)
	}
	catalog, err := consumption.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load appliance catalog: %w", err)
	}

	engine, err := simulation.NewEngine(simulation.Deps{
		Resolver:    weather.NewResolver(source),
		Estimator:   production.DefaultChain(),
		Synthesizer: consumption.NewSynthesizer(catalog),
		Analyzer:    economics.NewAnalyzer(tariffs),
		Cache:       stack,
		Metrics:     observability.NewMetrics(),
	})
	if err != nil {
		return fmt.Errorf("failed to build simulation engine: %w", err)
	}

	host := cfg.Server.Host
	if env := os.Getenv("SERVER_HOST"); env != "" {
		host = env
	}
	port := fmt.Sprintf("%d", cfg.Server.Port)
	if env := os.Getenv("SERVER_PORT"); env != "" {
		port = env
	}

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies:    server.Dependencies{Simulator: engine},
	})

	return webAPI.Start()
}
