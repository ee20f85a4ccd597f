package sshserv

import (
	"bufio"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/crypto/ssh"
)

// Options configures the emulated host.
type Options struct {
	// User and Password are required from clients when Password is set;
	// otherwise any client is let in.
	User     string
	Password string
	// Responses maps an exact exec command line to the text it prints.
	// Unknown commands print a shell-style "not found" line and exit 127.
	Responses map[string]string
}

// Server is an in-process SSH endpoint that understands two kinds of exec
// requests: `scp -t <path>` sinks, whose files are kept in memory, and
// canned commands from Options.Responses.
type Server struct {
	opts Options
	ln   net.Listener
	done chan struct{}

	mu       sync.Mutex
	files    map[string][]byte
	modes    map[string]string
	commands []string
}

// Start listens on listenAddr (e.g. 127.0.0.1:0) and serves until Stop.
func Start(listenAddr string, opts Options) (*Server, error) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		return nil, err
	}
	cfg := &ssh.ServerConfig{}
	if opts.Password == "" {
		cfg.NoClientAuth = true
	} else {
		cfg.PasswordCallback = func(c ssh.ConnMetadata, pass []byte) (*ssh.Permissions, error) {
			if c.User() == opts.User && string(pass) == opts.Password {
				return nil, nil
			}
			return nil, fmt.Errorf("password rejected for %q", c.User())
		}
	}
	cfg.AddHostKey(signer)

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		opts:  opts,
		ln:    ln,
		done:  make(chan struct{}),
		files: map[string][]byte{},
		modes: map[string]string{},
	}
	go func() {
		defer close(s.done)
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go s.handleConn(conn, cfg)
		}
	}()
	return s, nil
}

// Addr is the address the server listens on.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Stop closes the listener and waits for the accept loop to exit.
func (s *Server) Stop() {
	_ = s.ln.Close()
	<-s.done
}

// File returns the content and mode received for a remote path.
func (s *Server) File(remotePath string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[remotePath]
	return b, s.modes[remotePath], ok
}

// Commands lists every exec command line received, in order.
func (s *Server) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func (s *Server) handleConn(raw net.Conn, cfg *ssh.ServerConfig) {
	sc, chans, reqs, err := ssh.NewServerConn(raw, cfg)
	if err != nil {
		_ = raw.Close()
		return
	}
	defer func() { _ = sc.Close() }()
	go ssh.DiscardRequests(reqs)
	for ch := range chans {
		if ch.ChannelType() != "session" {
			_ = ch.Reject(ssh.UnknownChannelType, "")
			continue
		}
		c, in, err := ch.Accept()
		if err != nil {
			continue
		}
		go s.handleSession(c, in)
	}
}

func (s *Server) handleSession(ch ssh.Channel, in <-chan *ssh.Request) {
	defer func() { _ = ch.Close() }()
	for req := range in {
		if req.Type != "exec" {
			_ = req.Reply(false, nil)
			continue
		}
		var payload struct{ Command string }
		if err := ssh.Unmarshal(req.Payload, &payload); err != nil {
			_ = req.Reply(false, nil)
			return
		}
		_ = req.Reply(true, nil)
		s.mu.Lock()
		s.commands = append(s.commands, payload.Command)
		s.mu.Unlock()

		var status uint32
		if target, ok := scpTarget(payload.Command); ok {
			status = s.scpSink(ch, target)
		} else {
			status = s.respond(ch, payload.Command)
		}
		_, _ = ch.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{status}))
		return
	}
}

func (s *Server) respond(ch ssh.Channel, cmd string) uint32 {
	out, ok := s.opts.Responses[cmd]
	if !ok {
		_, _ = fmt.Fprintf(ch.Stderr(), "sh: %s: command not found\n", cmd)
		return 127
	}
	_, _ = io.WriteString(ch, out)
	return 0
}

// scpTarget extracts the destination of an `scp ... -t <path>` command.
func scpTarget(cmd string) (string, bool) {
	fields := strings.Fields(cmd)
	if len(fields) < 3 || fields[0] != "scp" {
		return "", false
	}
	sink := false
	for _, f := range fields[1 : len(fields)-1] {
		if strings.HasPrefix(f, "-") && strings.Contains(f, "t") {
			sink = true
		}
	}
	if !sink {
		return "", false
	}
	target := fields[len(fields)-1]
	if strings.HasPrefix(target, "'") && strings.HasSuffix(target, "'") && len(target) >= 2 {
		target = target[1 : len(target)-1]
	}
	return target, true
}

// scpSink plays the receiving side of the scp protocol for a single file.
func (s *Server) scpSink(ch ssh.Channel, target string) uint32 {
	br := bufio.NewReader(ch)
	_, _ = ch.Write([]byte{0})

	header, err := br.ReadString('\n')
	if err != nil {
		return 1
	}
	mode, size, err := parseCopyHeader(header)
	if err != nil {
		_, _ = fmt.Fprintf(ch, "\x01scp: %v\n", err)
		return 1
	}
	_, _ = ch.Write([]byte{0})

	data := make([]byte, size)
	if _, err := io.ReadFull(br, data); err != nil {
		return 1
	}
	if b, err := br.ReadByte(); err != nil || b != 0 {
		return 1
	}
	s.mu.Lock()
	s.files[target] = data
	s.modes[target] = mode
	s.mu.Unlock()
	_, _ = ch.Write([]byte{0})
	return 0
}

// parseCopyHeader parses "C<mode> <size> <name>\n".
func parseCopyHeader(h string) (string, int64, error) {
	h = strings.TrimRight(h, "\n")
	if !strings.HasPrefix(h, "C") {
		return "", 0, errors.New("expected C record")
	}
	parts := strings.SplitN(h[1:], " ", 3)
	if len(parts) != 3 {
		return "", 0, fmt.Errorf("malformed header %q", h)
	}
	size, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || size < 0 {
		return "", 0, fmt.Errorf("bad size %q", parts[1])
	}
	return parts[0], size, nil
}
