// internal/config/errors.go
//
// Error taxonomy for configuration resolution.
//
// Every failure names the file or key involved so the operator can fix
// the artifact without reading code.  Callers match with errors.Is against
// the sentinels or errors.As against the concrete types.
package config

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrParse        = errors.New("configuration file malformed")
	ErrMissingKey   = errors.New("configuration key missing")
)

// FileNotFoundError reports a required artifact absent at Path.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

func (e *FileNotFoundError) Is(target error) bool { return target == ErrFileNotFound }
func (e *FileNotFoundError) Unwrap() error        { return e.Err }

// ParseError reports an artifact at Path whose contents could not be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }
func (e *ParseError) Unwrap() error        { return e.Err }

// MissingKeyError reports a dotted key absent from the merged configuration.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("configuration key missing: %s", e.Key)
}

func (e *MissingKeyError) Is(target error) bool { return target == ErrMissingKey }
