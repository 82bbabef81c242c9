package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	API    API               `mapstructure:"api"`
	Store  Store             `mapstructure:"store"`
	Admins map[string]string `mapstructure:"admins"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Store struct {
	CatalogPath string `mapstructure:"catalog_path"`
	SalesPath   string `mapstructure:"sales_path"`
}

// Load reads config/config.yml. A missing file falls back to the defaults;
// a malformed one is an error.
func Load() (cfg *Config, err error) {
	// The default "." delimiter would split the admin emails into nested
	// keys, so the instance uses one that never appears in a key.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath("./config")

	v.SetDefault("api::port", "8081")
	v.SetDefault("store::catalog_path", "data/games.xlsx")
	v.SetDefault("store::sales_path", "data/ventas_temp.xlsx")

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
