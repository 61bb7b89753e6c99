package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Services receive it via options and log
// with the *Context variants so request ids flow through.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
