package dlog

import (
	"log/slog"
	"os"

	"github.com/golang-cz/devslog"
)

// Dlog is the console logger of the cli commands.
type Dlog struct {
	*slog.Logger
}

func Init(debug bool) Dlog {
	slogOpts := &slog.HandlerOptions{
		AddSource: debug,
		Level:     slog.LevelInfo,
	}
	if debug {
		slogOpts.Level = slog.LevelDebug
	}

	opts := &devslog.Options{
		HandlerOptions:    slogOpts,
		MaxSlicePrintSize: 4,
		SortKeys:          true,
		NewLineAfterLog:   false,
	}

	return Dlog{slog.New(devslog.NewHandler(os.Stdout, opts))}
}

// debug log
func (d Dlog) Log(msg string, args ...any) {
	d.Debug(msg, args...)
}
