// Package logging builds the slog loggers used by the calcx command.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"

	"github.com/comalice/calcx/internal/config"
)

const timeFormat = "2006-01-02 15:04:05.000Z07:00"

// New returns a logger writing to w. Text output goes through tint and is
// colored only when w is a terminal-backed *os.File.
func New(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  timeFormat,
		NoColor:     !isTerminal(w),
		ReplaceAttr: highlightErrors,
	})
	return slog.New(handler)
}

func highlightErrors(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindAny {
		if _, ok := a.Value.Any().(error); ok {
			return tint.Attr(9, a)
		}
	}
	return a
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
