package remote

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// scpWriter streams one file into a remote `scp -t` sink.
type scpWriter struct {
	ch    channel
	stdin io.WriteCloser
	acks  *bufio.Reader
}

// openSCP starts the remote sink and announces a single file of the given
// mode and size. Data written afterwards goes straight to the remote file.
func openSCP(ch channel, remotePath string, mode os.FileMode, size int64) (*scpWriter, error) {
	stdin, err := ch.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := ch.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := ch.Start("scp -qt " + shellQuote(remotePath)); err != nil {
		return nil, err
	}
	w := &scpWriter{ch: ch, stdin: stdin, acks: bufio.NewReader(stdout)}
	if err := w.ack(); err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintf(stdin, "C%04o %d %s\n", mode.Perm(), size, path.Base(remotePath)); err != nil {
		return nil, err
	}
	if err := w.ack(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *scpWriter) Write(p []byte) (int, error) {
	return w.stdin.Write(p)
}

// Close terminates the file data and waits for the sink to confirm it.
func (w *scpWriter) Close() error {
	if _, err := w.stdin.Write([]byte{0}); err != nil {
		return err
	}
	if err := w.ack(); err != nil {
		return err
	}
	_ = w.stdin.Close()
	return w.ch.Wait()
}

// abort drops the transfer without confirming it.
func (w *scpWriter) abort() {
	_ = w.stdin.Close()
	_ = w.ch.Close()
}

// ack reads one scp status byte: 0 is ok, 1 and 2 carry a message line.
func (w *scpWriter) ack() error {
	b, err := w.acks.ReadByte()
	if err != nil {
		return fmt.Errorf("scp: read ack: %w", err)
	}
	if b == 0 {
		return nil
	}
	msg, _ := w.acks.ReadString('\n')
	return fmt.Errorf("scp: remote error: %s", strings.TrimSpace(msg))
}
