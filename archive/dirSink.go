package archive

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DirSink copies every match to Dir/<base name>. Matches sharing a base name
// overwrite one another, so the last one discovered is what stays on disk.
type DirSink struct {
	Dir string
	Log *zap.Logger

	manifest []Match
}

// NewDirSink returns a sink writing into dir.
func NewDirSink(dir string, log *zap.Logger) *DirSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &DirSink{Dir: dir, Log: log}
}

// Put writes r to the output directory and records m. Records already made
// are kept when a later write fails.
func (s *DirSink) Put(m Match, r io.Reader) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return ioError("mkdir", s.Dir, err)
	}
	out := filepath.Join(s.Dir, m.BaseName)
	f, err := os.Create(out)
	if err != nil {
		return ioError("create", out, err)
	}
	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		return ioError("write", out, err)
	}
	if err := f.Close(); err != nil {
		return ioError("close", out, err)
	}
	m.JavaProcessList = ""
	s.manifest = append(s.manifest, m)
	if s.Log != nil {
		s.Log.Debug("extracted", zap.String("output", out), zap.Int64("bytes", n))
	}
	return nil
}

// Manifest returns the recorded matches in discovery order.
func (s *DirSink) Manifest() []Match {
	return s.manifest
}

// Path returns where a match with the given base name lands.
func (s *DirSink) Path(baseName string) string {
	return filepath.Join(s.Dir, baseName)
}
