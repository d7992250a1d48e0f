package logger

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// New builds a structured logger at the given level. Unknown levels
// fall back to info.
func New(level string) *charmlog.Logger {
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           parseLevel(level),
	})
}

// Discard returns a logger that drops everything, for tests.
func Discard() *charmlog.Logger {
	l := charmlog.New(os.Stderr)
	l.SetLevel(charmlog.FatalLevel + 1)
	return l
}

func parseLevel(level string) charmlog.Level {
	switch level {
	case "debug":
		return charmlog.DebugLevel
	case "info":
		return charmlog.InfoLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}
