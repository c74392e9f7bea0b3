package model

import (
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultCandidatePorts pins the startup order of the candidate list.
func TestDefaultCandidatePorts(t *testing.T) {
	assert.Equal(t, []int{8000, 8080, 3000, 5000, 9000}, DefaultCandidatePorts)
}

func TestISOEntry_String(t *testing.T) {
	e := ISOEntry{
		ID:       "alpine_3_19_iso",
		Name:     "Alpine Linux",
		FileName: "alpine-3.19.iso",
		Size:     1024,
		Modified: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	assert.Equal(t, "Alpine Linux (alpine-3.19.iso, 1024 bytes)", e.String())
}

// TestExitCodes verifies the exit code values the CLI contract relies on.
func TestExitCodes(t *testing.T) {
	assert.Equal(t, ExitCode(0), ExitSuccess)
	assert.Equal(t, ExitCode(1), ExitGeneralError)
	assert.Equal(t, ExitCode(1), ExitPortsExhausted)
}

// TestCLIError verifies error message formatting with and without
// an underlying error.
func TestCLIError(t *testing.T) {
	t.Run("without underlying error", func(t *testing.T) {
		err := &CLIError{Code: ExitGeneralError, Message: "bad flag"}
		assert.Equal(t, "bad flag", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with underlying error", func(t *testing.T) {
		cause := errors.New("boom")
		err := WrapCLIError(ExitPortsExhausted, "cannot start", cause)
		assert.Equal(t, "cannot start: boom", err.Error())
		assert.ErrorIs(t, err, cause)
	})
}

func TestPortUnavailableError(t *testing.T) {
	err := &PortUnavailableError{Port: 8000, Err: syscall.EADDRINUSE}
	assert.Contains(t, err.Error(), "port 8000 unavailable")
	assert.ErrorIs(t, err, syscall.EADDRINUSE)
}

// TestAllPortsExhaustedError verifies that the exhaustion error lists every
// candidate and that errors.As can reach the per-port failures.
func TestAllPortsExhaustedError(t *testing.T) {
	err := &AllPortsExhaustedError{
		Ports: []int{8000, 8080},
		Errs: []error{
			&PortUnavailableError{Port: 8000, Err: syscall.EADDRINUSE},
			&PortUnavailableError{Port: 8080, Err: syscall.EACCES},
		},
	}
	assert.Equal(t, "no available port among candidates [8000, 8080]", err.Error())

	var wrapped error = WrapCLIError(ExitPortsExhausted, "failed to start server", err)

	var exhausted *AllPortsExhaustedError
	require.True(t, errors.As(wrapped, &exhausted))
	assert.Equal(t, []int{8000, 8080}, exhausted.Ports)

	var unavailable *PortUnavailableError
	require.True(t, errors.As(wrapped, &unavailable))
	assert.Equal(t, 8000, unavailable.Port)
	assert.ErrorIs(t, wrapped, syscall.EACCES)
}
