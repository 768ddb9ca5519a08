package consumption

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadCatalog reads an appliance catalog from a config file. An empty path
// returns the built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read appliance catalog: %w", err)
	}

	var catalog Catalog
	if err := v.Unmarshal(&catalog); err != nil {
		return nil, fmt.Errorf("failed to parse appliance catalog: %w", err)
	}
	if len(catalog.Appliances) == 0 {
		return nil, fmt.Errorf("appliance catalog %q defines no appliances", path)
	}
	return &catalog, nil
}
