package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New возвращает логгер: человекочитаемый в development, JSON в остальных средах.
func New(environment string) zerolog.Logger {
	if environment == "development" {
		writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(writer).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
