package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// Environment configuration
const (
	EnvPrefix     = "CIVITAS"
	EnvConfigPath = "CIVITAS_CONFIG_PATH"
	ConfigName    = ".civitas" // .yaml is implicit
)

// Environment holds values supplied outside the app preferences. They seed
// the preferences on first run.
type Environment struct {
	APIBaseURL string
	LogLevel   string
}

// LoadEnvironment reads CIVITAS_* variables and an optional .civitas.yaml
// from CIVITAS_CONFIG_PATH, the working directory or the home directory.
func LoadEnvironment() (Environment, error) {
	v := viper.New()
	v.SetDefault("api_url", DefaultAPIBaseURL)
	v.SetDefault("log_level", "info")
	v.SetConfigName(ConfigName)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Environment{APIBaseURL: DefaultAPIBaseURL}, err
		}
	}

	return Environment{
		APIBaseURL: v.GetString("api_url"),
		LogLevel:   v.GetString("log_level"),
	}, nil
}
