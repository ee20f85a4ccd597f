package remote

import (
	"net"
	"strings"
	"time"
)

// DefaultPort is appended to addresses that carry no port.
const DefaultPort = "22"

// Config describes one host/credential pair.
type Config struct {
	// Address is host or host:port.
	Address  string
	User     string
	Password string
	// KeyPath optionally points at a PEM/OpenSSH private key.
	KeyPath    string
	Passphrase string
	// KnownHostsPath is consulted only when StrictHostKey is set.
	KnownHostsPath string
	StrictHostKey  bool
	// Timeout bounds TCP connect and handshake; 0 waits forever.
	Timeout time.Duration
}

// normalizeAddress appends DefaultPort when addr has none.
func normalizeAddress(addr string) string {
	addr = strings.TrimSpace(addr)
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(strings.Trim(addr, "[]"), DefaultPort)
}
