package fsio

import "errors"

// Sentinel errors for file I/O operations.
var (
	// ErrUnsupported is returned when a requested combination is not
	// supported, such as appending with a format that cannot append.
	ErrUnsupported = errors.New("fsio: unsupported operation")

	// ErrReadPermissions is returned when a path cannot be read.
	ErrReadPermissions = errors.New("fsio: read permission denied")

	// ErrWritePermissions is returned when a path cannot be written.
	ErrWritePermissions = errors.New("fsio: write permission denied")
)
