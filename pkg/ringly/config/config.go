// Package config holds the ambient configuration for a ringlykit
// application: log level, scan/connect timeouts, and the ANCS parsing
// policy knobs spec.md leaves up to the host application.
package config

import (
	"time"

	"github.com/mcuadros/go-defaults"
	"github.com/sirupsen/logrus"
)

// Config holds application configuration. Fields go-defaults can set
// directly (uint/bool/string kinds) carry a `default` tag; the two
// time.Duration fields are filled in by DefaultConfig since go-defaults
// has no notion of duration literals.
type Config struct {
	LogLevel logrus.Level `json:"log_level" default:"4"`

	ScanTimeout    time.Duration `json:"scan_timeout"`
	ConnectTimeout time.Duration `json:"connect_timeout"`

	// ParseANCSV1Flags enables parsing of the optional flags byte that may
	// follow an ANCS v1 notification's terminator, per V1Assembler.IncludeFlags.
	ParseANCSV1Flags bool `json:"parse_ancs_v1_flags" default:"true"`

	// ANCSV1ReferenceDate, if non-nil, pins the year/month used to expand
	// ANCS v1's day/hour/minute fields into a full timestamp. Nil means
	// use wall-clock time at parse time, per V1Assembler.YearMonthDate.
	ANCSV1ReferenceDate *time.Time `json:"ancs_v1_reference_date,omitempty"`

	OutputFormat string `json:"output_format" default:"table"`
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	cfg := &Config{
		ScanTimeout:    10 * time.Second,
		ConnectTimeout: 15 * time.Second,
	}
	defaults.SetDefaults(cfg)
	return cfg
}

// NewLogger creates a configured logger instance.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	return logger
}
