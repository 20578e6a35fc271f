package diskspace

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/sirupsen/logrus"
)

// ErrInvalidInterval is returned by New when the refresh interval is not positive.
var ErrInvalidInterval = errors.New("min interval must be greater than zero")

// ErrorKind classifies a failed probe.
type ErrorKind string

const (
	PathNotFound     ErrorKind = "path_not_found"
	PermissionDenied ErrorKind = "permission_denied"
	IoError          ErrorKind = "io_error"
)

// ProbeError is the typed result of a failed capacity query.
type ProbeError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("%s: probe %q: %v", e.Kind, e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// classify maps an OS error onto the probe error taxonomy.
func classify(path string, err error) *ProbeError {
	var pe *ProbeError
	if errors.As(err, &pe) {
		return pe
	}

	kind := IoError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = PathNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = PermissionDenied
	}
	return &ProbeError{Kind: kind, Path: path, Err: err}
}

// ErrorSink receives probe failures. Implementations must be safe for
// concurrent use when a sampler is shared between goroutines.
type ErrorSink interface {
	Report(err *ProbeError)
}

// ErrorSinkFunc adapts a plain function to ErrorSink.
type ErrorSinkFunc func(err *ProbeError)

// Report calls f(err).
func (f ErrorSinkFunc) Report(err *ProbeError) {
	f(err)
}

// LogSink reports probe failures as warnings on a logrus logger.
type LogSink struct {
	Logger *logrus.Logger
}

// NewLogSink creates a sink writing to logger, or to a warn-level
// logger when nil.
func NewLogSink(logger *logrus.Logger) *LogSink {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &LogSink{Logger: logger}
}

// Report logs the failure with its classification.
func (s *LogSink) Report(err *ProbeError) {
	s.Logger.WithFields(logrus.Fields{
		"path":  err.Path,
		"kind":  err.Kind,
		"error": err.Err,
	}).Warn("Disk usage probe failed")
}
