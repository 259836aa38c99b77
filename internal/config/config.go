// Package config resolves application settings from defaults, an optional
// YAML config file and LIFESTYLE_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/lifestyle/internal/recommend"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LIFESTYLE"

// Config holds all application settings.
type Config struct {
	RecommendationEndpoint string        `mapstructure:"recommendation_endpoint"`
	RecommendationTimeout  time.Duration `mapstructure:"recommendation_timeout"`
	DBPath                 string        `mapstructure:"db_path"`
	SaveHistory            bool          `mapstructure:"save_history"`
	QuestionsPath          string        `mapstructure:"questions_path"`
	LogPath                string        `mapstructure:"log_path"`
	LogLevel               string        `mapstructure:"log_level"`
	LogCalls               bool          `mapstructure:"log_calls"`
}

// DefaultConfig returns settings that keep all files under home/.lifestyle.
func DefaultConfig(home string) Config {
	base := filepath.Join(home, ".lifestyle")
	return Config{
		RecommendationEndpoint: recommend.DefaultEndpoint,
		DBPath:                 filepath.Join(base, "lifestyle.db"),
		SaveHistory:            true,
		LogPath:                filepath.Join(base, "logs", "lifestyle.log"),
		LogLevel:               "info",
	}
}

// DefaultConfigPath is where Load looks when no path is given.
func DefaultConfigPath(home string) string {
	return filepath.Join(home, ".lifestyle", "config.yaml")
}

// Load resolves the configuration. path names an explicit config file; it
// must exist. With an empty path the default location is read if present.
func Load(path string) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return load(viper.New(), home, path)
}

func load(v *viper.Viper, home, path string) (Config, error) {
	def := DefaultConfig(home)
	v.SetDefault("recommendation_endpoint", def.RecommendationEndpoint)
	v.SetDefault("recommendation_timeout", def.RecommendationTimeout)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("save_history", def.SaveHistory)
	v.SetDefault("questions_path", def.QuestionsPath)
	v.SetDefault("log_path", def.LogPath)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_calls", def.LogCalls)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath(home)
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		notFound := errors.As(err, &pathErr) || errors.As(err, new(viper.ConfigFileNotFoundError))
		if explicit || !notFound {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	if c.RecommendationEndpoint == "" {
		return fmt.Errorf("recommendation_endpoint must not be empty")
	}
	if c.RecommendationTimeout < 0 {
		return fmt.Errorf("recommendation_timeout must not be negative")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	return nil
}

// Recommend returns the recommendation client settings.
func (c Config) Recommend() recommend.Config {
	return recommend.Config{
		Endpoint: c.RecommendationEndpoint,
		Timeout:  c.RecommendationTimeout,
	}
}
