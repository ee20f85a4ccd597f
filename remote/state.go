package remote

// State tracks where a Session is in its lifecycle.
type State int

const (
	StateUnconnected State = iota
	// StateConnected means the key exchange finished and the host key was accepted.
	StateConnected
	StateAuthenticated
	// StateActive sessions accept Upload and Execute.
	StateActive
	// StateFailed is terminal.
	StateFailed
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUnconnected:
		return "unconnected"
	case StateConnected:
		return "connected"
	case StateAuthenticated:
		return "authenticated"
	case StateActive:
		return "active"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}
