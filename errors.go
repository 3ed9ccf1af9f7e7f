package gradleprops

import "errors"

var (
	// ErrInvalidKey indicates an empty or blank property key.
	ErrInvalidKey = errors.New("invalid key")
	// ErrCreateDir indicates the directory for the properties file could not be created.
	ErrCreateDir = errors.New("failed to create directory")
	// ErrWriteFile indicates the properties file could not be written.
	ErrWriteFile = errors.New("failed to write properties file")
)
