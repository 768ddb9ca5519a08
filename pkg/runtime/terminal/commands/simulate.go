package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Blastoche/simu-solaire/pkg/adapters"
	"github.com/Blastoche/simu-solaire/pkg/models/domain"
	"github.com/Blastoche/simu-solaire/pkg/runtime/terminal/export"
)

// Runner is the pipeline dependency of the simulate command.
type Runner interface {
	Run(ctx context.Context, req domain.SimulationRequest) (*domain.SimulationResult, error)
}

type SimulateCmd struct {
	latitude  float64
	longitude float64
	tilt      float64
	azimuth   float64

	powerKW            float64
	moduleFamily       string
	inverterEfficiency float64

	efficiencyClass string
	occupants       int
	floorAreaM2     float64

	year           int
	forceSynthetic bool
	modelTier      string
	investmentEUR  float64

	runner   Runner
	reporter *export.Reporter
}

func NewSimulateCmd(runner Runner, reporter *export.Reporter) *cobra.Command {
	sc := &SimulateCmd{runner: runner, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Estimate production, consumption and economics for an installation",
		RunE:  sc.run,
	}

	cmd.Flags().Float64Var(&sc.latitude, "lat", 0, "Site latitude in degrees")
	cmd.Flags().Float64Var(&sc.longitude, "lon", 0, "Site longitude in degrees")
	cmd.Flags().Float64Var(&sc.tilt, "tilt", 30, "Panel tilt in degrees from horizontal")
	cmd.Flags().Float64Var(&sc.azimuth, "azimuth", 180, "Panel azimuth in degrees (180 = south)")
	cmd.Flags().Float64Var(&sc.powerKW, "power", 3, "Installed power in kW")
	cmd.Flags().StringVar(&sc.moduleFamily, "module", "", "Module family (e.g. mono-si)")
	cmd.Flags().Float64Var(&sc.inverterEfficiency, "inverter", 0, "Nominal inverter efficiency in (0, 1]")
	cmd.Flags().StringVar(&sc.efficiencyClass, "class", "D", "Dwelling efficiency class A..G")
	cmd.Flags().IntVar(&sc.occupants, "occupants", 2, "Number of occupants")
	cmd.Flags().Float64Var(&sc.floorAreaM2, "area", 80, "Floor area in square meters")
	cmd.Flags().IntVar(&sc.year, "year", 2020, "Weather year")
	cmd.Flags().BoolVar(&sc.forceSynthetic, "synthetic", false, "Skip the live weather service")
	cmd.Flags().StringVar(&sc.modelTier, "tier", "", "Pin a production model tier")
	cmd.Flags().Float64Var(&sc.investmentEUR, "investment", 0, "Investment override in EUR")

	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func (sc *SimulateCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	req := domain.SimulationRequest{
		Location: domain.Location{
			Latitude:  sc.latitude,
			Longitude: sc.longitude,
			Tilt:      sc.tilt,
			Azimuth:   sc.azimuth,
		},
		System: domain.PVSystem{
			PowerKW:            sc.powerKW,
			ModuleFamily:       sc.moduleFamily,
			InverterEfficiency: sc.inverterEfficiency,
		},
		Household: domain.Household{
			EfficiencyClass: sc.efficiencyClass,
			Occupants:       sc.occupants,
			FloorAreaM2:     sc.floorAreaM2,
		},
		Year:                  sc.year,
		ForceSyntheticWeather: sc.forceSynthetic,
		ModelTier:             domain.ModelTier(sc.modelTier),
	}
	if sc.investmentEUR > 0 {
		req.InvestmentEUR = &sc.investmentEUR
	}

	res, err := sc.runner.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	report := adapters.MapSimulationResultToReport(*res, req.Year)
	return sc.reporter.Handle(&report)
}
