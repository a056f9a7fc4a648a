// Package config defines the cleaning job configuration and how it is loaded.
//
// Conventions:
//   - Defaults keep the historical file names and fill policy, so
//     running without any configuration cleans combined_fifa_data.csv.
//   - All functions accept context.Context as the first parameter.
//   - Errors are wrapped with this package's sentinel errors.
package config

import (
	"context"

	"github.com/okian/fifaclean/internal/domain/impute"
	"github.com/okian/fifaclean/internal/domain/model"
)

// Default file locations.
const (
	DefaultInputPath  = "combined_fifa_data.csv"
	DefaultOutputPath = "cleaned_combined_fifa_data_filtered.csv"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// InputPath is the raw combined dataset.
	InputPath string `koanf:"input_path"`

	// OutputPath receives the cleaned dataset and is re-read for the report.
	OutputPath string `koanf:"output_path"`

	// Delimiter separates fields in both files. Must be a single character.
	Delimiter string `koanf:"delimiter"`

	// MetricsPath, when set, receives a Prometheus text dump at the end of the run.
	MetricsPath string `koanf:"metrics_path"`

	// GoalkeeperPrefix marks goalkeeper-only columns.
	GoalkeeperPrefix string `koanf:"goalkeeper_prefix"`

	// GoalkeeperMarker is the preferred_positions substring identifying goalkeepers.
	GoalkeeperMarker string `koanf:"goalkeeper_marker"`

	// WorkRateFallback is used for players with no work rate in any year.
	WorkRateFallback string `koanf:"work_rate_fallback"`

	// NullTokens are the cell spellings read as absent. Nil keeps
	// repository.DefaultNullTokens.
	NullTokens []string `koanf:"null_tokens"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		InputPath:        DefaultInputPath,
		OutputPath:       DefaultOutputPath,
		Delimiter:        ",",
		GoalkeeperPrefix: model.GoalkeeperPrefix,
		GoalkeeperMarker: impute.DefaultGoalkeeperMarker,
		WorkRateFallback: impute.DefaultWorkRateFallback,
	}
}

// DelimiterRune returns the delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}
