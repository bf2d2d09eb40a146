// Package config loads application configuration from a YAML file and
// KOTOBA_ environment variables. Environment variables take precedence
// over file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Study StudyConfig `mapstructure:"study"`
	Sync  SyncConfig  `mapstructure:"sync"`
	LLM   LLMConfig   `mapstructure:"llm"`
	Decks DecksConfig `mapstructure:"decks"`
}

// StudyConfig tunes how sessions are built and graded.
type StudyConfig struct {
	SessionSize int  `mapstructure:"session_size" validate:"oneof=0 5 10 20"`
	NewItemCap  int  `mapstructure:"new_item_cap" validate:"gte=0,lte=20"`
	GradeTiers  int  `mapstructure:"grade_tiers" validate:"oneof=2 4"`
	AutoSuggest bool `mapstructure:"auto_suggest"`
}

// SyncConfig points at the optional remote profile endpoint. Sync is
// disabled when the URL is empty.
type SyncConfig struct {
	URL   string `mapstructure:"url" validate:"omitempty,url"`
	Token string `mapstructure:"token"`
}

// LLMConfig selects the optional hint provider.
type LLMConfig struct {
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=anthropic openai gemini mock"`
	Model    string `mapstructure:"model"`
}

// DecksConfig points at an optional directory of user deck files.
type DecksConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads config.yaml from the kotoba config directory, overlays
// KOTOBA_ environment variables, and validates the result. A missing
// config file is fine; defaults apply.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("KOTOBA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("study.session_size", 10)
	v.SetDefault("study.new_item_cap", 5)
	v.SetDefault("study.grade_tiers", 2)
	v.SetDefault("study.auto_suggest", false)
}

func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return fmt.Errorf("invalid config: %s fails %q", f.Namespace(), f.Tag())
	}
	return fmt.Errorf("invalid config: %w", err)
}

// configDir resolves $XDG_CONFIG_HOME/kotoba, falling back to
// ~/.config/kotoba.
func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "kotoba"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", "kotoba"), nil
}
