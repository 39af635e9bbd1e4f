package iostat

import (
	"errors"
	"fmt"
)

// ErrIO is matched by every sampling failure: errors.Is(err, ErrIO).
var ErrIO = errors.New("iostat: i/o error")

// EnumerationError means the block device registry could not be listed.
type EnumerationError struct {
	Path string
	Err  error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("iostat: failed to list block devices in %s: %v", e.Path, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

func (e *EnumerationError) Is(target error) bool { return target == ErrIO }

// DeviceReadError means a device statistics record could not be read.
type DeviceReadError struct {
	Device string
	Path   string
	Err    error
}

func (e *DeviceReadError) Error() string {
	return fmt.Sprintf("iostat: failed to read stats for %s (%s): %v", e.Device, e.Path, e.Err)
}

func (e *DeviceReadError) Unwrap() error { return e.Err }

func (e *DeviceReadError) Is(target error) bool { return target == ErrIO }

// ParseError means a statistics record had an unexpected shape.
type ParseError struct {
	Device string
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("iostat: failed to parse %s for %s: %v", e.Field, e.Device, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrIO }

// ErrorKind names the failure class of a sampling error for logs and
// metric labels.
func ErrorKind(err error) string {
	var (
		enumErr  *EnumerationError
		readErr  *DeviceReadError
		parseErr *ParseError
	)
	switch {
	case errors.As(err, &enumErr):
		return "enumeration"
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &readErr):
		return "device_read"
	default:
		return "unknown"
	}
}
