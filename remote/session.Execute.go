package remote

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
)

// Execute runs command on a fresh exec channel and returns everything it
// wrote to stdout and stderr. A non-zero exit status is not an error; the
// output is the result. There is no timeout.
func (s *Session) Execute(command string) (string, error) {
	if err := s.usable(); err != nil {
		return "", err
	}
	log := s.logger().With(zap.String("command", command))
	log.Info("executing")

	ch, err := s.open()
	if err != nil {
		return "", err
	}
	defer func() { _ = ch.Close() }()

	out, err := ch.CombinedOutput(command)
	if err != nil {
		var ee *ssh.ExitError
		var em *ssh.ExitMissingError
		switch {
		case errors.As(err, &ee):
			log.Warn("remote command exited non-zero", zap.Int("status", ee.ExitStatus()))
		case errors.As(err, &em):
			log.Warn("remote command exited without status")
		default:
			return string(out), fmt.Errorf("%w: exec: %w", ErrIO, err)
		}
	}
	log.Debug("command finished", zap.Int("bytes", len(out)))
	return string(out), nil
}
