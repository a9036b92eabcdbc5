package convert

import "errors"

var (
	// ErrConverterNotFound means the converter binary could not be located.
	ErrConverterNotFound = errors.New("converter binary not found")
	// ErrConversionFailed means the converter exited unsuccessfully.
	ErrConversionFailed = errors.New("converter exited with error")
)
