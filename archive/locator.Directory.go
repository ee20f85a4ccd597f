package archive

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Directory walks the tree under root in lexical order and runs Archive over
// every regular file with a ".jar" extension, symlinks to files included. The file's slash-separated path
// relative to root is the initial logical path and its base name becomes
// OuterContainer.
func (l *Locator) Directory(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return ioError("stat", root, err)
	}
	if !info.IsDir() {
		return ioError("walk", root, fs.ErrInvalid)
	}
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return ioError("walk", p, err)
		}
		if d.IsDir() || filepath.Ext(p) != ContainerSuffix || !isRegularFile(p, d) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		return l.file(p, filepath.ToSlash(rel))
	})
}

func (l *Locator) file(p, rel string) error {
	f, err := os.Open(p)
	if err != nil {
		return ioError("open", p, err)
	}
	defer func() { _ = f.Close() }()
	st, err := f.Stat()
	if err != nil {
		return ioError("stat", p, err)
	}
	l.logger().Debug("opening jar", zap.String("file", p), zap.Int64("size", st.Size()))
	return l.Archive(f, st.Size(), filepath.Base(p), rel)
}

// isRegularFile reports whether d is a regular file, following a symlink
// to its target. Dangling links and links to directories are skipped.
func isRegularFile(p string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}
	st, err := os.Stat(p)
	return err == nil && st.Mode().IsRegular()
}
