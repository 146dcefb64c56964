package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var log *slog.Logger

func Init() {
	log = New(NewJSONHandler(os.Stdout, nil))
}

// New wraps a handler into the package logger type. Exposed for tests that
// capture output in a buffer.
func New(h slog.Handler) *slog.Logger {
	return slog.New(h)
}

func NewJSONHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	return slog.NewJSONHandler(w, opts)
}

func Info(msg string, args ...any) {
	logger().Info(msg, args...)
}

func Infof(format string, v ...any) {
	logger().Info(fmt.Sprintf(format, v...))
}

func Error(msg string, args ...any) {
	logger().Error(msg, args...)
}

func Errorf(format string, v ...any) {
	logger().Error(fmt.Sprintf(format, v...))
}

func Debug(msg string, args ...any) {
	logger().Debug(msg, args...)
}

func Debugf(format string, v ...any) {
	logger().Debug(fmt.Sprintf(format, v...))
}

func Fatal(msg string, args ...any) {
	logger().Error(msg, args...)
	os.Exit(1)
}

func Fatalf(format string, v ...any) {
	logger().Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}

func logger() *slog.Logger {
	if log == nil {
		Init()
	}
	return log
}
