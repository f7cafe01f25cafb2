package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MEDAILLES_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if MEDAILLES_CONFIG is set
//  3. env (prefix MEDAILLES_); nested keys use a double underscore,
//     e.g. MEDAILLES_RESOURCES__EDITIONS. Lists are comma separated.
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	envProvider := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
		if key == "config" {
			return "", nil
		}
		key = strings.ReplaceAll(key, "__", ".")
		if key == "comparison_years" {
			return key, strings.Split(value, ",")
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if k.Exists("comparison_years") {
		cfg.ComparisonYears = nil
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the build relies on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.DataSource) == "":
		return fmt.Errorf("%w: data_source must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.OutputDir) == "":
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	case len(c.ComparisonYears) == 0:
		return fmt.Errorf("%w: comparison_years must not be empty", ErrInvalidConfig)
	case c.OpacityMin < 0 || c.OpacityMax > 1 || c.OpacityMin > c.OpacityMax:
		return fmt.Errorf("%w: opacity range [%s, %s] is invalid", ErrInvalidConfig,
			strconv.FormatFloat(c.OpacityMin, 'f', -1, 64), strconv.FormatFloat(c.OpacityMax, 'f', -1, 64))
	case c.ChartWidth <= 0 || c.ChartHeight <= 0:
		return fmt.Errorf("%w: chart size must be positive", ErrInvalidConfig)
	case !strings.Contains(c.Resources.DayPattern, "%d"):
		return fmt.Errorf("%w: resources.day_pattern must contain %%d", ErrInvalidConfig)
	}
	return nil
}
