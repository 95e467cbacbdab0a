package utils

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a console zerolog logger. Debug mode lowers the level
// and keeps caller-friendly formatting.
func NewLogger(debug bool) (*zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return &logger, nil
}
