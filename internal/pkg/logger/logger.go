package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. In dev mode output goes through
// the console writer; in production it stays as JSON on stdout.
func Init(level string, isProduction bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if !isProduction {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
		log.Warn().Str("level", level).Msg("unknown log level, falling back to info")
	}
	zerolog.SetGlobalLevel(lvl)
}
