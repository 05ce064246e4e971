// Package config loads obsql settings from flags, environment and an
// optional YAML file.
package config

import (
	"os"
	"strings"

	"github.com/pingcap/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all obsql settings.
type Config struct {
	Dialect   string    `mapstructure:"dialect" yaml:"dialect"`
	Output    string    `mapstructure:"output" yaml:"output"`
	Normalize bool      `mapstructure:"normalize" yaml:"normalize"`
	Log       LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// Dialects and output formats accepted by Validate.
var (
	Dialects = []string{"mysql", "oceanbase"}
	Outputs  = []string{"json", "yaml", "sql", "tree"}
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Dialect:   "oceanbase",
		Output:    "json",
		Normalize: true,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// New returns a viper instance carrying the defaults and OBSQL_ environment
// bindings. Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	cfg := Default()
	v.SetDefault("dialect", cfg.Dialect)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("normalize", cfg.Normalize)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)

	v.SetEnvPrefix("OBSQL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from path, or from obsql.yaml in the working
// directory or $HOME/.obsql when path is empty, and validates it.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Annotate(err, "failed to read config file")
		}
	} else {
		v.SetConfigName("obsql")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.obsql")

		// A missing file leaves the defaults in place.
		_ = v.ReadInConfig()
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Annotate(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that configuration values are sensible
func (c *Config) Validate() error {
	c.Dialect = strings.ToLower(c.Dialect)
	c.Output = strings.ToLower(c.Output)
	if !contains(Dialects, c.Dialect) {
		return errors.Errorf("unknown dialect %q (want one of %s)", c.Dialect, strings.Join(Dialects, ", "))
	}
	if !contains(Outputs, c.Output) {
		return errors.Errorf("unknown output %q (want one of %s)", c.Output, strings.Join(Outputs, ", "))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return errors.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// WriteDefault writes the default settings to path as YAML.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(os.WriteFile(path, data, 0o644))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
