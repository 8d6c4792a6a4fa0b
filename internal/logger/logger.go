package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger. format is "json" or "console" (default).
// An unknown level falls back to info.
func New(level, format string) zerolog.Logger {
	return NewWithWriter(os.Stdout, level, format)
}

// NewWithWriter is New writing to w.
func NewWithWriter(w io.Writer, level, format string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldInteger = true

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = w
	if format != "json" {
		out = consoleWriter(w)
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05 MST",
	}

	output.FormatLevel = func(i interface{}) string {
		var color string
		level, _ := i.(string)
		level = strings.ToUpper(level)
		switch level {
		case "TRACE":
			color = "\x1b[36m"
		case "DEBUG":
			color = "\x1b[32m"
		case "INFO":
			color = "\x1b[34m"
		case "WARN":
			color = "\x1b[33m"
		case "ERROR":
			color = "\x1b[31m"
		case "FATAL":
			color = "\x1b[31;1m"
		case "PANIC":
			color = "\x1b[35m"
		default:
			color = "\x1b[0m"
		}
		return fmt.Sprintf("%s| %-6s|\x1b[0m", color, level)
	}

	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("\x1b[36m%s:\x1b[0m", i)
	}

	return output
}
