// Package recon reconciles published crosstab spreadsheets against their
// recreations, sheet by sheet, and reports matches, value differences and
// missing data points.
package recon

import (
	"time"

	"github.com/joaomendes-ine/etl-workflow/pkg/recon/match"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/normalize"
	"github.com/joaomendes-ine/etl-workflow/pkg/recon/parser"
	"go.uber.org/zap"
)

// FuzzyConfig holds the fuzzy coordinate matching thresholds.
type FuzzyConfig struct {
	// LevelThreshold is the minimum similarity a single header level needs
	// to contribute to a fuzzy score.
	LevelThreshold float64 `mapstructure:"level_threshold"`
	// AcceptThreshold is the minimum score for a fuzzy pair.
	AcceptThreshold float64 `mapstructure:"accept_threshold"`
}

// Config configures a reconciliation run.
type Config struct {
	// NumericTolerance is the inclusive absolute difference accepted as a match.
	NumericTolerance float64 `mapstructure:"numeric_tolerance"`
	// Normalize holds the label and value normalization tables.
	Normalize normalize.Rules `mapstructure:"normalize"`
	// Parser holds region detection and header search parameters.
	Parser parser.Params `mapstructure:"parser"`
	// Fuzzy holds the fuzzy matching thresholds.
	Fuzzy FuzzyConfig `mapstructure:"fuzzy"`
	// Workers bounds how many sheets CompareFiles processes at once.
	Workers int `mapstructure:"workers"`
	// SheetTimeout bounds the time spent on one sheet. Zero disables it.
	SheetTimeout time.Duration `mapstructure:"sheet_timeout"`

	logger *zap.Logger
}

// DefaultConfig returns default reconciliation settings.
func DefaultConfig() Config {
	m := match.DefaultOptions()
	return Config{
		NumericTolerance: m.Tolerance,
		Normalize:        normalize.DefaultRules(),
		Parser:           parser.DefaultParams(),
		Fuzzy: FuzzyConfig{
			LevelThreshold:  m.LevelThreshold,
			AcceptThreshold: m.AcceptThreshold,
		},
		Workers:      4,
		SheetTimeout: 2 * time.Minute,
	}
}

// WithLogger returns a copy of the config that logs through l.
func (c Config) WithLogger(l *zap.Logger) Config {
	c.logger = l
	return c
}

// Logger returns the configured logger, or a no-op logger.
func (c Config) Logger() *zap.Logger {
	if c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}

// MatchOptions returns the matcher options derived from the config.
func (c Config) MatchOptions() match.Options {
	return match.Options{
		Tolerance:       c.NumericTolerance,
		LevelThreshold:  c.Fuzzy.LevelThreshold,
		AcceptThreshold: c.Fuzzy.AcceptThreshold,
	}
}

func (c Config) workers() int {
	if c.Workers < 1 {
		return 1
	}
	return c.Workers
}
