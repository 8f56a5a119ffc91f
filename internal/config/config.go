// Package config loads CLI settings from config files and the
// environment. Settings resolve in order: flags (handled by the CLI),
// PADWAN_* environment variables, then padwan.yaml in the working
// directory or the home directory.
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the resolved CLI settings
type Config struct {
	Model        string        `mapstructure:"model"`
	BatchModel   string        `mapstructure:"batch_model"`
	System       string        `mapstructure:"system"`
	Temperature  float64       `mapstructure:"temperature"`
	Theme        string        `mapstructure:"theme"`
	LogLevel     string        `mapstructure:"log_level"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	PollTimeout  time.Duration `mapstructure:"poll_timeout"`
}

// Defaults used when neither file nor environment provides a value
const (
	DefaultPollInterval = 10 * time.Second
	DefaultPollTimeout  = 30 * time.Minute
)

// Load reads the configuration. API keys may come from a .env file in
// the working directory; a missing config file is not an error.
func Load(defaultModel, defaultBatchModel string) (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetConfigName("padwan")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix("PADWAN")
	v.AutomaticEnv()

	v.SetDefault("model", defaultModel)
	v.SetDefault("batch_model", defaultBatchModel)
	v.SetDefault("system", "")
	v.SetDefault("temperature", 0.0)
	v.SetDefault("theme", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("poll_interval", DefaultPollInterval)
	v.SetDefault("poll_timeout", DefaultPollTimeout)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
