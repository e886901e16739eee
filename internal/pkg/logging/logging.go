package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New constructs the process-wide zerolog logger.
// Level falls back to info when unparsable; format "console" switches from
// JSON to the human-readable writer for local development.
func New(level, format string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err == nil {
		lvl = parsed
	}

	var out = zerolog.New(os.Stdout)
	if strings.EqualFold(strings.TrimSpace(format), "console") {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	return out.Level(lvl).With().Timestamp().Str("app", "shareit").Logger()
}
