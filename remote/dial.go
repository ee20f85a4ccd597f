package remote

import (
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Dial connects to cfg.Address and authenticates. A TCP or key-exchange
// failure is ErrConnection; a rejection after the host key was accepted is
// ErrAuthentication.
func Dial(cfg Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	addr := normalizeAddress(cfg.Address)
	log = log.With(zap.String("host", addr), zap.String("user", cfg.User))

	auths, agentConn, err := authMethods(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	// The agent connection lives as long as the session; every failed dial
	// releases it here.
	established := false
	defer func() {
		if !established && agentConn != nil {
			_ = agentConn.Close()
		}
	}()
	verify, err := hostKeyCallback(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	// The host key callback runs once the key exchange is done, which is the
	// only point where the handshake can be told apart from authentication.
	var handshaken atomic.Bool
	sshCfg := &ssh.ClientConfig{
		User: cfg.User,
		Auth: auths,
		HostKeyCallback: func(hostname string, remote net.Addr, key ssh.PublicKey) error {
			if err := verify(hostname, remote, key); err != nil {
				return err
			}
			handshaken.Store(true)
			return nil
		},
		Timeout: cfg.Timeout,
	}

	log.Info("connecting")
	d := net.Dialer{Timeout: cfg.Timeout}
	conn, err := d.Dial("tcp", addr)
	if err != nil {
		log.Warn("connect failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrConnection, addr, err)
	}
	s := &Session{state: StateUnconnected, log: log, agent: agentConn}
	if cfg.Timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(cfg.Timeout))
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, sshCfg)
	if handshaken.Load() {
		s.state = StateConnected
	}
	if err != nil {
		_ = conn.Close()
		if s.state == StateConnected || isAuthFailure(err) {
			s.state = StateFailed
			log.Warn("authentication rejected", zap.Error(err))
			return nil, fmt.Errorf("%w: %s@%s: %w", ErrAuthentication, cfg.User, addr, err)
		}
		log.Warn("handshake failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrConnection, addr, err)
	}
	_ = conn.SetDeadline(time.Time{})
	s.state = StateAuthenticated
	s.tr = sshTransport{c: ssh.NewClient(c, chans, reqs)}
	s.state = StateActive
	established = true
	log.Info("authenticated")
	return s, nil
}

func isAuthFailure(err error) bool {
	return strings.Contains(err.Error(), "unable to authenticate")
}

// authMethods assembles key, password and agent auth in that order. The
// returned closer is the agent connection, nil when no agent is reachable.
func authMethods(cfg Config) ([]ssh.AuthMethod, io.Closer, error) {
	var auths []ssh.AuthMethod
	if cfg.KeyPath != "" {
		signer, err := loadSigner(cfg.KeyPath, cfg.Passphrase)
		if err != nil {
			return nil, nil, fmt.Errorf("load key: %w", err)
		}
		auths = append(auths, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		auths = append(auths, ssh.Password(cfg.Password))
	}
	if a := os.Getenv("SSH_AUTH_SOCK"); a != "" {
		if conn, err := net.Dial("unix", a); err == nil {
			ag := agent.NewClient(conn)
			auths = append(auths, ssh.PublicKeysCallback(ag.Signers))
			return auths, conn, nil
		}
	}
	return auths, nil, nil
}

func hostKeyCallback(cfg Config) (ssh.HostKeyCallback, error) {
	if !cfg.StrictHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	if _, err := os.Stat(cfg.KnownHostsPath); err != nil {
		return nil, fmt.Errorf("known_hosts file not found at %s and strict-host-key is enabled", cfg.KnownHostsPath)
	}
	cb, err := knownhosts.New(cfg.KnownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("known_hosts: %w", err)
	}
	return cb, nil
}
