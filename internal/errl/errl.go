// Package errl wraps errors with the source location of the wrap site,
// so log lines point to the code that detected the problem instead of
// the place where the error was finally logged.
package errl

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Errorf works like fmt.Errorf but prefixes the message with the
// file:line of the caller.
func Errorf(format string, args ...any) error {
	return fmt.Errorf(location(2)+" "+format, args...)
}

// Error wraps an existing error with the caller location, preserving
// the original error for errors.Is/As.
func Error(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %w", location(2), err)
}

func location(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "???:0"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
