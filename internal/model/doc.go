// Package model defines the domain types and error values for the
// devserve CLI.
//
// This package contains pure data structures with no external dependencies.
// It defines the default candidate port list, the ISO catalogue entry,
// exit codes (ExitCode), a custom error type (CLIError) that carries exit
// codes for proper OS process exit handling, and the two port-scan errors
// (PortUnavailableError, AllPortsExhaustedError).
package model
