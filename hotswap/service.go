package hotswap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"poodle/archive"
)

// Remote is what the service needs from a remote session.
type Remote interface {
	Upload(localPath, remotePath string) error
	Execute(command string) (string, error)
	Close() error
}

// DialFunc opens a fresh session; one is dialled per operation.
type DialFunc func() (Remote, error)

// Options configures a Service. Empty RemoteDir and ToolInvocation fall back
// to the package defaults.
type Options struct {
	ProjectRoot    string
	DataDir        string
	RemoteDir      string
	ToolInvocation string
	Dial           DialFunc
	Log            *zap.Logger
}

// Request asks for the class compiled from SourceIdentifier to be redefined
// in ProcessID.
type Request struct {
	SourceIdentifier string
	ProcessID        string
}

// Service runs hot-swap operations. Calls are expected to be serialised by
// the caller; the data directory is shared between them.
type Service struct {
	opts Options
	log  *zap.Logger
}

// New returns a Service with defaults applied.
func New(opts Options) *Service {
	if opts.RemoteDir == "" {
		opts.RemoteDir = DefaultRemoteDir
	}
	if opts.ToolInvocation == "" {
		opts.ToolInvocation = DefaultToolInvocation
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Service{opts: opts, log: opts.Log}
}

// Match extracts every class matching sourceID from the project's jars into
// the data directory and returns the manifest, partial on failure.
func (s *Service) Match(sourceID string) ([]archive.Match, error) {
	fragment := Fragment(sourceID)
	if fragment == "" {
		return nil, fmt.Errorf("%w: empty source identifier %q", ErrInvalidRequest, sourceID)
	}
	s.log.Info("matching", zap.String("source", sourceID), zap.String("fragment", fragment),
		zap.String("root", s.opts.ProjectRoot))
	matches, err := archive.Extract(s.opts.ProjectRoot, fragment, s.opts.DataDir, s.log)
	for _, m := range matches {
		s.log.Info("match",
			zap.String("parent_jar", m.OuterContainer),
			zap.String("jar", m.ContainingPath),
			zap.String("class", m.BaseName),
			zap.String("path", m.RelativePath))
	}
	if err != nil {
		return matches, fmt.Errorf("extract %s: %w", fragment, err)
	}
	return matches, nil
}

// Deploy matches the request's source and redefines the result in the target
// process. Only records whose base name equals the fragment are candidates;
// substring hits such as FooBar.class for Bar.java are never deployed. With
// several candidates the last one discovered is used, since that is the file
// left in the data directory.
func (s *Service) Deploy(req Request) (string, error) {
	matches, err := s.Match(req.SourceIdentifier)
	if err != nil {
		return "", err
	}
	fragment := Fragment(req.SourceIdentifier)
	chosen, candidates := lastExact(matches, fragment)
	if candidates == 0 {
		return "", fmt.Errorf("%w: no class named %q under %s (%d partial matches)", ErrArtifactNotFound,
			fragment, s.opts.ProjectRoot, len(matches))
	}
	if candidates > 1 {
		s.log.Warn("several classes share the name; using the last one extracted",
			zap.Int("candidates", candidates), zap.String("path", chosen.RelativePath))
	}
	return s.Redefine(chosen.BaseName, req.ProcessID)
}

// lastExact returns the last record named baseName and how many there were.
func lastExact(matches []archive.Match, baseName string) (archive.Match, int) {
	var (
		chosen archive.Match
		n      int
	)
	for _, m := range matches {
		if m.BaseName == baseName {
			chosen = m
			n++
		}
	}
	return chosen, n
}

// Redefine uploads DataDir/className to RemoteDir/className and runs the
// live-patch command against pid, returning the tool's output verbatim.
func (s *Service) Redefine(className, pid string) (string, error) {
	if className == "" || strings.ContainsAny(className, `/\`) {
		return "", fmt.Errorf("%w: class name %q", ErrInvalidRequest, className)
	}
	local := s.LocalPath(className)
	if _, err := os.Stat(local); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrArtifactNotFound, local)
		}
		return "", fmt.Errorf("stat %s: %w", local, err)
	}
	remotePath := s.RemotePath(className)
	s.log.Info("redefining", zap.String("class", className), zap.String("local", local),
		zap.String("remote", remotePath), zap.String("pid", pid))

	sess, err := s.opts.Dial()
	if err != nil {
		return "", fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = sess.Close() }()

	if err := sess.Upload(local, remotePath); err != nil {
		return "", fmt.Errorf("upload %s: %w", className, err)
	}
	out, err := sess.Execute(s.Command(remotePath, pid))
	if err != nil {
		return out, fmt.Errorf("redefine %s: %w", className, err)
	}
	s.log.Debug("live-patch output", zap.String("output", out))
	return out, nil
}

// Processes lists the JVMs running on the remote host.
func (s *Service) Processes() ([]Process, error) {
	sess, err := s.opts.Dial()
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = sess.Close() }()
	out, err := sess.Execute(ProcessListCommand)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	s.log.Debug("jps output", zap.String("output", out))
	return ParseProcesses(out), nil
}

// LocalPath is where an extracted class with the given base name lives.
func (s *Service) LocalPath(className string) string {
	return filepath.Join(s.opts.DataDir, className)
}

// RemotePath is where a class with the given base name is uploaded to.
func (s *Service) RemotePath(className string) string {
	return path.Join(s.opts.RemoteDir, className)
}
