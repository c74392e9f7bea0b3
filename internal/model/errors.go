package model

import (
	"fmt"
	"strconv"
	"strings"
)

// PortUnavailableError reports that a single candidate port could not be
// bound (address already in use, permission denied, ...). The port scanner
// recovers from it by moving on to the next candidate.
type PortUnavailableError struct {
	// Port is the candidate that failed.
	Port int

	// Err is the error returned by the bind attempt.
	Err error
}

// Error satisfies the error interface.
func (e *PortUnavailableError) Error() string {
	return fmt.Sprintf("port %d unavailable: %v", e.Port, e.Err)
}

// Unwrap exposes the underlying net error.
func (e *PortUnavailableError) Unwrap() error {
	return e.Err
}

// AllPortsExhaustedError reports that every candidate port failed to bind.
// This is fatal: the CLI maps it to ExitPortsExhausted.
type AllPortsExhaustedError struct {
	// Ports is the candidate list, in the order it was tried.
	Ports []int

	// Errs holds one *PortUnavailableError per candidate.
	Errs []error
}

// Error satisfies the error interface.
func (e *AllPortsExhaustedError) Error() string {
	ports := make([]string, 0, len(e.Ports))
	for _, p := range e.Ports {
		ports = append(ports, strconv.Itoa(p))
	}
	return fmt.Sprintf("no available port among candidates [%s]", strings.Join(ports, ", "))
}

// Unwrap returns the per-port errors so errors.As can reach any of them.
func (e *AllPortsExhaustedError) Unwrap() []error {
	return e.Errs
}
