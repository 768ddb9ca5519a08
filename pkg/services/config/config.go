// Package config loads the service configuration from an optional YAML file
// with environment defaults.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CacheConfig struct {
	MemoryCapacity int    `mapstructure:"memory_capacity"`
	DiskDir        string `mapstructure:"disk_dir"`
	DbPath         string `mapstructure:"db_path"`
}

type WeatherConfig struct {
	PVGISTimeout time.Duration `mapstructure:"pvgis_timeout"`
	Disabled     bool          `mapstructure:"disabled"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Weather WeatherConfig `mapstructure:"weather"`

	// Optional override files; built-in defaults apply when empty.
	TariffsPath string `mapstructure:"tariffs_path"`
	CatalogPath string `mapstructure:"catalog_path"`
}

// LoadConfig reads the configuration file at path. An empty path returns the
// defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("cache.memory_capacity", 128)
	v.SetDefault("cache.disk_dir", "simu-solaire-cache")
	v.SetDefault("cache.db_path", "simu-solaire.db")
	v.SetDefault("weather.pvgis_timeout", "30s")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &config, nil
}
