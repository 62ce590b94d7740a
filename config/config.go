// SPDX-License-Identifier: MIT

// Package config holds the cpredict CLI settings.
//
// Values are layered in this order, later layers winning:
//  1. Default()
//  2. an optional YAML file
//  3. CPREDICT_* environment variables
//  4. command-line flags (applied by the caller)
//
// Validate must be called after the last layer is applied.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the environment variable prefix, e.g. CPREDICT_PREDICTOR_EPSILON.
const EnvPrefix = "CPREDICT"

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete CLI configuration.
type Config struct {
	Predictor PredictorConfig `yaml:"predictor" envconfig:"PREDICTOR"`
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Log       LogConfig       `yaml:"log" envconfig:"LOG"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
}

// PredictorConfig configures the conformal predictor and its scorer.
//
// Seed drives smoothed p-values; 0 asks the CLI for a fresh seed per run.
//
// Only CPREDICT_<SECTION>_<FIELD> keys are read. Leaf fields must not carry an
// envconfig tag: envconfig also looks up a tagged field under its bare name.
type PredictorConfig struct {
	Epsilon float64 `yaml:"epsilon" split_words:"true" validate:"gt=0,lt=1"`
	Smooth  bool    `yaml:"smooth" split_words:"true"`
	Seed    int64   `yaml:"seed" split_words:"true"`
	K       int     `yaml:"k" split_words:"true" validate:"gte=1"`
}

// DataConfig describes how input tables are read.
type DataConfig struct {
	LabelColumn string `yaml:"label_column" split_words:"true" validate:"required"`
	HasHeader   bool   `yaml:"has_header" split_words:"true"`
	Sheet       string `yaml:"sheet" split_words:"true"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
}

// OutputConfig selects the result encoding.
type OutputConfig struct {
	Format string `yaml:"format" split_words:"true" validate:"oneof=table json yaml"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Predictor: PredictorConfig{Epsilon: 0.1, K: 1},
		Data:      DataConfig{LabelColumn: "-1", HasHeader: true},
		Log:       LogConfig{Level: "info"},
		Output:    OutputConfig{Format: "table"},
	}
}

// Load builds a configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Unset variables leave fields untouched, so file values survive.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
