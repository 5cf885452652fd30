// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/prn-tf/hbnb/internal/config"
)

// New creates a logger writing to w. When w is nil the output is chosen from
// cfg.Output ("stdout" or "stderr").
func New(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	if w == nil {
		w = output(cfg.Output)
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("app", "hbnb").
		Logger(), nil
}

// Setup builds the logger and installs it as the global zerolog logger.
func Setup(cfg config.LoggingConfig) (zerolog.Logger, error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	logger, err := New(cfg, nil)
	if err != nil {
		return logger, err
	}
	log.Logger = logger
	return logger, nil
}

func output(name string) io.Writer {
	if strings.EqualFold(name, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}
