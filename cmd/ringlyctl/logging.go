package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// configureLogger builds a logger honoring --log-level, falling back to
// --verbose, matching the teacher's cmd/blim/logging.go precedence.
func configureLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	level := logrus.WarnLevel

	levelStr, _ := cmd.Flags().GetString("log-level")
	if levelStr != "" {
		parsed, err := logrus.ParseLevel(levelStr)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelStr, err)
		}
		level = parsed
	} else if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logrus.DebugLevel
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return logger, nil
}
