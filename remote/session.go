package remote

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Session is one authenticated connection. It is not safe for concurrent use.
type Session struct {
	tr    transport
	state State
	log   *zap.Logger
	// agent is the ssh-agent connection used for auth, if any.
	agent io.Closer

	// Progress, when set, is called once per upload with the file size and
	// receives every chunk written to the remote stream.
	Progress func(size int64) io.Writer
}

// State reports the current lifecycle state.
func (s *Session) State() State { return s.state }

// Close releases the connection. It is safe to call more than once.
func (s *Session) Close() error {
	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed
	if s.agent != nil {
		_ = s.agent.Close()
	}
	if s.tr == nil {
		return nil
	}
	return s.tr.Close()
}

// usable fails fast once the session is no longer active.
func (s *Session) usable() error {
	if s.state != StateActive || s.tr == nil {
		return fmt.Errorf("%w (state %s)", ErrSessionClosed, s.state)
	}
	return nil
}

// open returns a new channel, marking the session failed if the transport
// can no longer provide one.
func (s *Session) open() (channel, error) {
	ch, err := s.tr.newChannel()
	if err != nil {
		s.state = StateFailed
		s.logger().Warn("open channel failed", zap.Error(err))
		return nil, fmt.Errorf("%w: open channel: %w", ErrConnection, err)
	}
	return ch, nil
}

func (s *Session) logger() *zap.Logger {
	if s.log == nil {
		return zap.NewNop()
	}
	return s.log
}
