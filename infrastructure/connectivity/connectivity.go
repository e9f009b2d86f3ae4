// Package connectivity answers the single question the repositories ask
// before attempting a remote call: is a network path currently available.
package connectivity

import (
	"net"
	"time"
)

// Inspector reports whether a network path is currently available.
type Inspector interface {
	Online() bool
}

// Probe checks connectivity by dialing a well-known host with a short
// timeout. A failed dial means offline.
type Probe struct {
	addr    string
	timeout time.Duration
}

// NewProbe creates a Probe against addr (host:port).
func NewProbe(addr string, timeout time.Duration) *Probe {
	return &Probe{addr: addr, timeout: timeout}
}

// Online dials the probe address and reports whether it succeeded.
func (p *Probe) Online() bool {
	conn, err := net.DialTimeout("tcp", p.addr, p.timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// Static is a fixed-answer Inspector, used in tests and when probing is
// disabled by configuration.
type Static bool

// Online returns the fixed answer.
func (s Static) Online() bool { return bool(s) }
