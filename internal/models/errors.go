package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrConfigRead ErrorType = iota
	ErrConfigParse
	ErrFileOp
	ErrMetadataGen
	ErrArchive
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrConfigRead:
		return "ConfigRead"
	case ErrConfigParse:
		return "ConfigParse"
	case ErrFileOp:
		return "FileOp"
	case ErrMetadataGen:
		return "MetadataGen"
	case ErrArchive:
		return "Archive"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// BundlerError represents an error during archive generation
type BundlerError struct {
	Type ErrorType
	Path string
	Err  error
}

// Error implements the error interface
func (e *BundlerError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *BundlerError) Unwrap() error {
	return e.Err
}

// NewError wraps err in a BundlerError of the given type
func NewError(t ErrorType, path string, err error) *BundlerError {
	return &BundlerError{Type: t, Path: path, Err: err}
}
