package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger. format "json" writes one
// JSON object per line; anything else uses the human-readable console writer.
func InitLogger(level, format string) {
	initLogger(os.Stdout, level, format)
}

func initLogger(out io.Writer, level, format string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var writer io.Writer = out
	if strings.ToLower(format) != "json" {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
