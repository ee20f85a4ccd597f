package archive

import (
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"
)

// Locator searches containers for members whose base name contains Fragment.
// A Locator is not safe for concurrent use; it is cheap to build one per search.
type Locator struct {
	Fragment string
	Sink     Sink
	Log      *zap.Logger
}

func (l *Locator) logger() *zap.Logger {
	if l.Log == nil {
		return zap.NewNop()
	}
	return l.Log
}

// Archive walks the container readable through r. outer is recorded as
// OuterContainer on every match and current is the logical path of the
// container itself.
func (l *Locator) Archive(r io.ReaderAt, size int64, outer, current string) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return &ContainerFormatError{Path: current, Err: err}
	}
	return l.walk(zr, outer, current)
}

// walk visits members in central-directory order, descending into nested
// containers before moving to the next sibling.
func (l *Locator) walk(zr *zip.Reader, outer, current string) error {
	l.logger().Debug("scanning container", zap.String("path", current), zap.Int("members", len(zr.File)))
	for _, f := range zr.File {
		name := f.Name
		if strings.HasSuffix(name, ContainerSuffix) {
			if err := l.nested(f, outer, path.Join(current, name)); err != nil {
				return err
			}
			continue
		}
		if f.FileInfo().IsDir() {
			continue
		}
		base := path.Base(name)
		if !strings.Contains(base, l.Fragment) {
			continue
		}
		m := Match{
			OuterContainer: outer,
			ContainingPath: current,
			BaseName:       base,
			RelativePath:   path.Join(current, name),
		}
		if err := l.put(f, m); err != nil {
			return err
		}
	}
	return nil
}

// nested buffers a container member in memory and walks it as a fresh
// container. Only one such buffer per nesting level is alive at a time.
func (l *Locator) nested(f *zip.File, outer, logical string) error {
	rc, err := f.Open()
	if err != nil {
		return &ContainerFormatError{Path: logical, Err: err}
	}
	b, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		return ioError("read", logical, err)
	}
	return l.Archive(bytes.NewReader(b), int64(len(b)), outer, logical)
}

func (l *Locator) put(f *zip.File, m Match) error {
	rc, err := f.Open()
	if err != nil {
		return ioError("open", m.RelativePath, err)
	}
	defer func() { _ = rc.Close() }()
	l.logger().Debug("member matched", zap.String("fragment", l.Fragment), zap.String("path", m.RelativePath))
	return l.Sink.Put(m, rc)
}
