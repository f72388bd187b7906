package logging

import (
	"context"
	"io"
	"log"
	"os"
)

var (
	disabled = false
	logger   = log.New(os.Stdout, "", log.LstdFlags)
)

// Disable turns off all logging (tests, quiet CLI mode)
func Disable() {
	disabled = true
}

// Enable turns logging back on
func Enable() {
	disabled = false
}

// SetOutput redirects log output
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Info logs an info message
func Info(v ...any) {
	if !disabled {
		logger.Println(append([]any{"INFO"}, v...)...)
	}
}

// Infof logs a formatted info message
func Infof(format string, v ...any) {
	if !disabled {
		logger.Printf("INFO "+format, v...)
	}
}

// Warn logs a warning message
func Warn(v ...any) {
	if !disabled {
		logger.Println(append([]any{"WARN"}, v...)...)
	}
}

// Warnf logs a formatted warning message
func Warnf(format string, v ...any) {
	if !disabled {
		logger.Printf("WARN "+format, v...)
	}
}

// Error logs an error message
func Error(v ...any) {
	if !disabled {
		logger.Println(append([]any{"ERROR"}, v...)...)
	}
}

// Errorf logs a formatted error message
func Errorf(format string, v ...any) {
	if !disabled {
		logger.Printf("ERROR "+format, v...)
	}
}

// Logger is a simple logger that can be embedded in logic structs
type Logger struct{}

// WithContext creates a new Logger (context is ignored, for API compatibility)
func WithContext(ctx context.Context) Logger {
	return Logger{}
}

// Info logs an info message
func (l Logger) Info(v ...any) {
	Info(v...)
}

// Infof logs a formatted info message
func (l Logger) Infof(format string, v ...any) {
	Infof(format, v...)
}

// Warnf logs a formatted warning message
func (l Logger) Warnf(format string, v ...any) {
	Warnf(format, v...)
}

// Error logs an error message
func (l Logger) Error(v ...any) {
	Error(v...)
}

// Errorf logs a formatted error message
func (l Logger) Errorf(format string, v ...any) {
	Errorf(format, v...)
}
