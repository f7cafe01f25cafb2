// Package config defines the dashboard build configuration and its loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address of `serve`, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataSource is where the JSON files live: a directory or an http(s) base URL.
	DataSource string `koanf:"data_source"`

	// OutputDir receives index.html, static assets and exported images.
	OutputDir string `koanf:"output_dir"`

	// SiteURL is stamped in every watermark.
	SiteURL string `koanf:"site_url"`

	// ComparisonYears lists the day-aligned editions, most recent first.
	// The first entry is the active year.
	ComparisonYears []int `koanf:"comparison_years"`

	// HTTPTimeoutMS bounds each remote fetch; 0 disables the bound.
	HTTPTimeoutMS int `koanf:"http_timeout_ms"`

	// RefreshIntervalS rebuilds the site periodically while serving; 0 disables.
	RefreshIntervalS int `koanf:"refresh_interval_s"`

	// OpacityMax and OpacityMin bound the historical-year line opacity.
	OpacityMax float64 `koanf:"opacity_max"`
	OpacityMin float64 `koanf:"opacity_min"`

	// HoverTolerancePX is the nearest-line distance for free hover.
	HoverTolerancePX float64 `koanf:"hover_tolerance_px"`

	// ChartWidth and ChartHeight size the raster charts (before export scaling).
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// Resources names the four JSON files relative to DataSource.
	Resources Resources `koanf:"resources"`
}

// Resources are the relative names of the input files.
type Resources struct {
	Editions string `koanf:"editions"`
	// DayPattern is a fmt pattern taking the year.
	DayPattern string `koanf:"day_pattern"`
	Sports     string `koanf:"sports"`
	Athletes   string `koanf:"athletes"`
}

// DayFile returns the comparison file name for year.
func (r Resources) DayFile(year int) string {
	return fmt.Sprintf(r.DayPattern, year)
}

// ActiveYear is the emphasized comparison year.
func (c *Config) ActiveYear() int {
	if len(c.ComparisonYears) == 0 {
		return 0
	}
	return c.ComparisonYears[0]
}

// HTTPTimeout is the per-fetch bound; zero means none.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutMS) * time.Millisecond
}

// RefreshInterval is the rebuild period of `serve`; zero disables it.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalS) * time.Second
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		DataSource:       "output",
		OutputDir:        "site",
		SiteURL:          "francemedailles.fr",
		ComparisonYears:  []int{2026, 2022, 2018, 2014, 2010, 2006, 2002, 1998, 1994, 1992},
		HTTPTimeoutMS:    10_000,
		RefreshIntervalS: 0,
		OpacityMax:       0.68,
		OpacityMin:       0.24,
		HoverTolerancePX: 20,
		ChartWidth:       720,
		ChartHeight:      360,
		Resources: Resources{
			Editions:   "france_winter_medals_by_edition.json",
			DayPattern: "medal_evolution_since_j0_%d_FRA.json",
			Sports:     "france_winter_medals_by_sport.json",
			Athletes:   "france_winter_top_athletes.json",
		},
	}
}
