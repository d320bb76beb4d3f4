// Package logging builds the diagnostic logger shared by all components.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// VerbosityForLevel maps a configured log level to a logr verbosity
func VerbosityForLevel(level string) int {
	if level == "debug" {
		return 1
	}
	return 0
}

// New returns a logger writing to stderr at the given verbosity
func New(verbosity int) logr.Logger {
	return NewWithWriter(os.Stderr, verbosity)
}

// NewWithWriter returns a logger writing one line per entry to w
func NewWithWriter(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{
		Verbosity:       verbosity,
		LogTimestamp:    true,
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	}).WithName("rightsizer")
}
