package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ScanTimeout)
	assert.Equal(t, 15*time.Second, cfg.ConnectTimeout)
	assert.True(t, cfg.ParseANCSV1Flags)
	assert.Nil(t, cfg.ANCSV1ReferenceDate)
	assert.Equal(t, "table", cfg.OutputFormat)
}

func TestConfigNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		logLevel logrus.Level
	}{
		{name: "debug level", logLevel: logrus.DebugLevel},
		{name: "info level", logLevel: logrus.InfoLevel},
		{name: "warn level", logLevel: logrus.WarnLevel},
		{name: "error level", logLevel: logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			logger := cfg.NewLogger()

			assert.NotNil(t, logger)
			assert.Equal(t, tt.logLevel, logger.GetLevel())

			formatter, ok := logger.Formatter.(*logrus.TextFormatter)
			assert.True(t, ok)
			assert.True(t, formatter.FullTimestamp)
			assert.Equal(t, time.RFC3339, formatter.TimestampFormat)
		})
	}
}

func TestConfigANCSV1ReferenceDatePinning(t *testing.T) {
	ref := time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC)
	cfg := &Config{ANCSV1ReferenceDate: &ref}
	assert.Equal(t, 2020, cfg.ANCSV1ReferenceDate.Year())
}

func BenchmarkDefaultConfig(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = DefaultConfig()
	}
}
