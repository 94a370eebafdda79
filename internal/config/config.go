package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config carries tool-level defaults; command-line flags override it.
// Values come from the environment (REGIONODDS_ prefix) or an optional
// .regionodds env file in the working directory.
type Config struct {
	DBPath   string `mapstructure:"DB_PATH"`
	Trials   int    `mapstructure:"TRIALS"`
	Workers  int    `mapstructure:"WORKERS"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration with defaults applied.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".regionodds")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	v.SetDefault("DB_PATH", "")
	v.SetDefault("TRIALS", 20000)
	v.SetDefault("WORKERS", 0)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetEnvPrefix("REGIONODDS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
