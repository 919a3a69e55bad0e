// Package config loads appxpack's tool configuration from file and
// environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for appxpack.
type Config struct {
	Build BuildConfig `mapstructure:"build"`
}

// BuildConfig holds defaults for the build command. Command-line flags win
// over these.
type BuildConfig struct {
	Output  string   `mapstructure:"output"`
	MimeMap string   `mapstructure:"mime_map"`
	Exclude []string `mapstructure:"exclude"`
	Hash    bool     `mapstructure:"hash"`
}

// DefaultOutputName is the fixed name of the content-types part inside an
// AppX package.
const DefaultOutputName = "[Content_Types].xml"

// LoadConfig reads .appxpack.yaml (current directory, then home) and
// APPXPACK_* environment variables over built-in defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("build.output", DefaultOutputName)
	v.SetDefault("build.mime_map", "")
	v.SetDefault("build.exclude", []string{})
	v.SetDefault("build.hash", false)

	v.SetConfigName(".appxpack")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix("APPXPACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; defaults apply when absent.
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
