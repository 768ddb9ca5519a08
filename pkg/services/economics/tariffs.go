package economics

import (
	"fmt"

	"github.com/spf13/viper"
)

// Band is one power-indexed tariff step; it applies to systems up to
// MaxPowerKW inclusive.
type Band struct {
	MaxPowerKW float64 `mapstructure:"max_power_kw"`
	Rate       float64 `mapstructure:"rate"`
}

// Tariffs is the immutable tariff and incentive schedule, loaded once at
// startup. Figures default to the 2025 French residential schedule.
type Tariffs struct {
	PurchasePriceKWh float64 `mapstructure:"purchase_price_kwh"`
	SellBands        []Band  `mapstructure:"sell_bands"`       // €/kWh by system size
	BonusBands       []Band  `mapstructure:"bonus_bands"`      // €/kW one-time
	InstallCostBands []Band  `mapstructure:"install_cost_bands"` // €/kW
	ReducedVATRate   float64 `mapstructure:"reduced_vat_rate"`
	VATMaxPowerKW    float64 `mapstructure:"vat_max_power_kw"`
}

// DefaultTariffs returns the built-in schedule.
func DefaultTariffs() *Tariffs {
	return &Tariffs{
		PurchasePriceKWh: 0.20,
		SellBands: []Band{
			{MaxPowerKW: 3, Rate: 0.04},
			{MaxPowerKW: 9, Rate: 0.04},
			{MaxPowerKW: 36, Rate: 0.0731},
		},
		BonusBands: []Band{
			{MaxPowerKW: 3, Rate: 80},
			{MaxPowerKW: 9, Rate: 80},
			{MaxPowerKW: 36, Rate: 180},
		},
		InstallCostBands: []Band{
			{MaxPowerKW: 3, Rate: 2500},
			{MaxPowerKW: 9, Rate: 2200},
			{MaxPowerKW: 36, Rate: 1800},
		},
		ReducedVATRate: 0.10,
		VATMaxPowerKW:  3,
	}
}

// LoadTariffs reads a tariff schedule from a config file. An empty path
// returns the built-in schedule.
func LoadTariffs(path string) (*Tariffs, error) {
	if path == "" {
		return DefaultTariffs(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("reduced_vat_rate", 0.10)
	v.SetDefault("vat_max_power_kw", 3)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read tariff schedule: %w", err)
	}

	var t Tariffs
	if err := v.Unmarshal(&t); err != nil {
		return nil, fmt.Errorf("failed to parse tariff schedule: %w", err)
	}
	if t.PurchasePriceKWh <= 0 {
		return nil, fmt.Errorf("tariff schedule %q has no purchase price", path)
	}
	return &t, nil
}

// bandRate returns the rate of the first band covering the power, or the
// last band's rate for oversized systems.
func bandRate(bands []Band, powerKW float64) float64 {
	if len(bands) == 0 {
		return 0
	}
	for _, b := range bands {
		if powerKW <= b.MaxPowerKW {
			return b.Rate
		}
	}
	return bands[len(bands)-1].Rate
}

// lowestRate returns the smallest rate across bands, the documented default
// when no band applies cleanly.
func lowestRate(bands []Band) float64 {
	if len(bands) == 0 {
		return 0
	}
	low := bands[0].Rate
	for _, b := range bands[1:] {
		if b.Rate < low {
			low = b.Rate
		}
	}
	return low
}
