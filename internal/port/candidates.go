package port

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// minPort is the lowest valid TCP port number. Port 0 asks the OS for an
	// ephemeral port, which defeats the purpose of a fixed candidate list.
	minPort = 1

	// maxPort is the highest valid TCP port number (2^16 - 1).
	maxPort = 65535
)

// ParseCandidates converts a comma-separated list such as
// "8000,8080,3000" into an ordered candidate slice. Whitespace around
// entries is ignored. The result is validated with ValidateCandidates.
func ParseCandidates(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	ports := make([]int, 0, len(fields))

	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		p, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid candidate port %q: %w", f, err)
		}
		ports = append(ports, p)
	}

	if err := ValidateCandidates(ports); err != nil {
		return nil, err
	}
	return ports, nil
}

// ValidateCandidates checks that the list is non-empty, every entry is in
// range, and no port appears twice. Order is significant and preserved.
func ValidateCandidates(ports []int) error {
	if len(ports) == 0 {
		return fmt.Errorf("candidate port list must not be empty")
	}

	seen := make(map[int]bool, len(ports))
	for _, p := range ports {
		if p < minPort || p > maxPort {
			return fmt.Errorf("candidate port %d out of range (%d-%d)", p, minPort, maxPort)
		}
		if seen[p] {
			return fmt.Errorf("candidate port %d listed more than once", p)
		}
		seen[p] = true
	}
	return nil
}

// FormatCandidates renders a candidate list the way ParseCandidates reads it.
func FormatCandidates(ports []int) string {
	parts := make([]string, 0, len(ports))
	for _, p := range ports {
		parts = append(parts, strconv.Itoa(p))
	}
	return strings.Join(parts, ",")
}
