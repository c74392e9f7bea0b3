// Package model defines the domain types for the devserve CLI.
//
// The server keeps no persistent state. The types here are the transient
// values passed between the CLI, the port scanner, and the HTTP layer.
package model

import (
	"fmt"
	"time"
)

// DefaultCandidatePorts is the ordered list of ports tried at startup when
// neither a flag nor a config file supplies one. The first port that binds
// is used for the lifetime of the process.
var DefaultCandidatePorts = []int{8000, 8080, 3000, 5000, 9000}

// ISOEntry describes a single disk image in the document root, as returned
// by the ISO catalogue API (GET /api/isos).
type ISOEntry struct {
	// ID is the file name with every non-alphanumeric character replaced
	// by an underscore. It is safe to use as an HTML element id.
	ID string `json:"id"`

	// Name is the human-readable distribution name (e.g., "Arch Linux").
	Name string `json:"name"`

	// FileName is the image's file name relative to the document root.
	FileName string `json:"fileName"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// Modified is the file's last modification time.
	Modified time.Time `json:"modified"`
}

// String returns a human-readable representation of the entry.
// Format: "name (fileName, size bytes)"
func (e ISOEntry) String() string {
	return fmt.Sprintf("%s (%s, %d bytes)", e.Name, e.FileName, e.Size)
}

// ExitCode defines the process exit codes of the devserve CLI.
type ExitCode int

const (
	// ExitSuccess indicates a clean, interrupt-triggered shutdown.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred
	// (invalid flags, unreadable config file, etc.).
	ExitGeneralError ExitCode = 1

	// ExitPortsExhausted indicates that no candidate port could be bound.
	// It shares the value 1 with ExitGeneralError; scripts that only
	// distinguish success from failure see the same status either way.
	ExitPortsExhausted ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
