package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
		Port string `mapstructure:"port"`
	} `mapstructure:"app"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Provider struct {
		BaseURL           string `mapstructure:"base_url"`
		ReferenceCurrency string `mapstructure:"reference_currency"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
		APIKey            string `mapstructure:"api_key"`
	} `mapstructure:"provider"`

	Prefs struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"prefs"`

	Refresh struct {
		Auto bool   `mapstructure:"auto"`
		Cron string `mapstructure:"cron"`
	} `mapstructure:"refresh"`
}

func (c *Config) ProviderTimeout() time.Duration {
	if c.Provider.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")
	v.AddConfigPath("../../config")

	v.SetDefault("app.name", "currency-converter")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("provider.base_url", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("provider.reference_currency", "USD")
	v.SetDefault("provider.timeout_seconds", 30)
	v.SetDefault("prefs.path", "currency_converter_config.json")
	v.SetDefault("refresh.auto", false)
	v.SetDefault("refresh.cron", "0 1 * * *")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// the config file is optional, defaults plus env are enough to run
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
