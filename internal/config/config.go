package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Sessions SessionsConfig `mapstructure:"sessions"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	JSON   bool   `mapstructure:"json"`
	File   string `mapstructure:"file"`
	Stderr bool   `mapstructure:"stderr"` // mirror file logs to stderr
}

// SessionsConfig controls the session lifecycle.
type SessionsConfig struct {
	// LockFinished makes finished sessions reject set edits.
	LockFinished bool `mapstructure:"lock_finished"`
}

// CatalogConfig lists the exercises seeded at start-up.
// An empty list means the built-in catalog is used.
type CatalogConfig struct {
	Exercises []ExerciseConfig `mapstructure:"exercises"`
}

type ExerciseConfig struct {
	Name        string `mapstructure:"name"`
	MuscleGroup string `mapstructure:"muscle_group"`
}

// EnvPrefix is prepended to environment overrides, e.g. WORKOUTS_LOG_LEVEL.
const EnvPrefix = "WORKOUTS"

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Handling ---
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// log.level -> WORKOUTS_LOG_LEVEL
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	// --- Defaults ---
	// Every scalar key needs a default so AutomaticEnv can see it during Unmarshal.
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.stderr", true)
	v.SetDefault("sessions.lock_finished", true)

	// A missing config file is fine, defaults and env vars still apply.
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, err
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, err
	}
	return config, config.validate()
}

func (c Config) validate() error {
	for _, ex := range c.Catalog.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			return errors.New("catalog.exercises: every exercise needs a name")
		}
	}
	return nil
}
