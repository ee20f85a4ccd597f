package remote

import (
	"io"

	"golang.org/x/crypto/ssh"
)

// channel is the part of *ssh.Session a Session drives.
type channel interface {
	StdinPipe() (io.WriteCloser, error)
	StdoutPipe() (io.Reader, error)
	Start(cmd string) error
	Wait() error
	CombinedOutput(cmd string) ([]byte, error)
	Close() error
}

// transport hands out fresh channels over one connection.
type transport interface {
	newChannel() (channel, error)
	Close() error
}

// sshTransport adapts *ssh.Client to transport
type sshTransport struct {
	c *ssh.Client
}

func (t sshTransport) newChannel() (channel, error) {
	s, err := t.c.NewSession()
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (t sshTransport) Close() error {
	return t.c.Close()
}
