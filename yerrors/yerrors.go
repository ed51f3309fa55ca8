// Package yerrors classifies the errors described in the error-handling
// design: fatal conditions that should abort the run, and warnings that
// should be logged and then ignored, depending on verbosity.
package yerrors

import (
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// Kind distinguishes a fatal condition from a recoverable warning.
type Kind int

const (
	// Fatal conditions (malformed input, resource limits) abort the run.
	Fatal Kind = iota
	// Warning conditions (row-sum drift, trimmed BED ranges) are reported
	// and the run continues.
	Warning
)

// Classified pairs an error with its Kind.
type Classified struct {
	error
	Kind Kind
}

// Wrap attaches Fatal classification and call-site context to err.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Classified{error: errors.Wrap(err, msg), Kind: Fatal}
}

// Wrapf is like Wrap with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Classified{error: errors.Wrapf(err, format, args...), Kind: Fatal}
}

// IsFatal reports whether err (if classified) is Fatal. An unclassified
// error is treated as Fatal, matching the default "abort on error"
// behavior of the teacher's cmd/* binaries.
func IsFatal(err error) bool {
	if c, ok := err.(Classified); ok {
		return c.Kind == Fatal
	}
	return err != nil
}

// Warn logs msg as a warning when verbose is set, matching the
// verbosity-gated reporting the ambient logging design calls for.
func Warn(verbose bool, format string, args ...interface{}) {
	if verbose {
		log.Error.Printf(format, args...)
	}
}

// Fatalf logs a formatted fatal error and exits the process, mirroring
// every cmd/* binary's top-level error handling.
func Fatalf(format string, args ...interface{}) {
	log.Fatalf(format, args...)
}
