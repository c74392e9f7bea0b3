package port

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/shinji-kodama/devserve/internal/model"
)

// ListenFunc opens a listening socket. It has the signature of
// (*net.ListenConfig).Listen so the real implementation can be swapped for
// a recording double in tests.
type ListenFunc func(ctx context.Context, network, address string) (net.Listener, error)

// FailureFunc is called once per candidate that could not be bound,
// before the scan moves on to the next one.
type FailureFunc func(err *model.PortUnavailableError)

// Scanner binds and probes ports on the host machine.
//
// It uses the operating system's network stack (net.Listen) to determine
// if a port is free. This is the most
// reliable method because it asks the OS directly, rather than parsing
// /proc/net/* or shelling out to lsof.
type Scanner struct {
	// listen opens the TCP listener for Bind. Defaults to
	// (&net.ListenConfig{}).Listen.
	listen ListenFunc
}

// NewScanner creates a Scanner that binds with the standard library's
// net.ListenConfig.
func NewScanner() *Scanner {
	lc := &net.ListenConfig{}
	return &Scanner{listen: lc.Listen}
}

// NewScannerWithListener creates a Scanner that opens sockets through fn.
func NewScannerWithListener(fn ListenFunc) *Scanner {
	return &Scanner{listen: fn}
}

// Bind walks the candidate list in order and returns the first listener that
// binds successfully, together with its port. No candidate after the winning
// one is attempted.
//
// host may be empty to bind on all interfaces. For every candidate that
// fails, onFail (if non-nil) receives a *model.PortUnavailableError. When
// every candidate fails, the returned error is *model.AllPortsExhaustedError.
// A cancelled ctx stops the scan between attempts and returns ctx.Err().
func (s *Scanner) Bind(ctx context.Context, host string, candidates []int, onFail FailureFunc) (net.Listener, int, error) {
	errs := make([]error, 0, len(candidates))

	for _, p := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		ln, err := s.listen(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(p)))
		if err == nil {
			return ln, p, nil
		}

		unavailable := &model.PortUnavailableError{Port: p, Err: err}
		if onFail != nil {
			onFail(unavailable)
		}
		errs = append(errs, unavailable)
	}

	return nil, 0, &model.AllPortsExhaustedError{
		Ports: append([]int(nil), candidates...),
		Errs:  errs,
	}
}

// IsPortAvailable reports whether host:port can be bound over TCP right
// now. The probe socket is closed before returning.
func (s *Scanner) IsPortAvailable(host string, port int) bool {
	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}

// Availability is one row of a Check report.
type Availability struct {
	Port      int
	Available bool
}

// String returns "port: free" or "port: in use".
func (a Availability) String() string {
	if a.Available {
		return fmt.Sprintf("%d: free", a.Port)
	}
	return fmt.Sprintf("%d: in use", a.Port)
}

// Check probes every candidate over TCP without keeping any socket open and
// reports which ones are currently free. Unlike Bind it does not stop at the
// first free port.
func (s *Scanner) Check(host string, candidates []int) []Availability {
	out := make([]Availability, 0, len(candidates))
	for _, p := range candidates {
		out = append(out, Availability{Port: p, Available: s.IsPortAvailable(host, p)})
	}
	return out
}
