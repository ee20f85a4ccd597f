package remote

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const (
	chunkSize  = 32 * 1024
	uploadMode = os.FileMode(0o644)
)

// Upload copies localPath to remotePath over SCP in fixed-size chunks. The
// number of bytes accepted by the remote stream must equal the local file
// length, otherwise a *TransferIncompleteError is returned.
func (s *Session) Upload(localPath, remotePath string) error {
	if err := s.usable(); err != nil {
		return err
	}
	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrIO, localPath, err)
	}
	defer func() { _ = f.Close() }()
	st, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", ErrIO, localPath, err)
	}
	size := st.Size()
	log := s.logger().With(zap.String("local", localPath), zap.String("remote", remotePath))
	log.Info("uploading", zap.String("size", humanize.Bytes(uint64(size))))

	ch, err := s.open()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	w, err := openSCP(ch, remotePath, uploadMode, size)
	if err != nil {
		return fmt.Errorf("%w: scp %s: %w", ErrIO, remotePath, err)
	}
	var progress io.Writer
	if s.Progress != nil {
		progress = s.Progress(size)
	}
	written, err := copyChunks(w, io.LimitReader(f, size), size, progress)
	if err != nil {
		w.abort()
		log.Warn("upload failed", zap.Int64("written", written), zap.Int64("expected", size), zap.Error(err))
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: scp %s: %w", ErrIO, remotePath, err)
	}
	log.Info("upload complete", zap.Int64("bytes", written))
	return nil
}

// copyChunks streams src into dst chunkSize bytes at a time and checks the
// total against size. Write failures, short writes and a short source all
// surface as *TransferIncompleteError; read failures are ErrIO.
func copyChunks(dst io.Writer, src io.Reader, size int64, progress io.Writer) (int64, error) {
	buf := make([]byte, chunkSize)
	var written int64
	for {
		nr, rerr := src.Read(buf)
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			if nw < 0 || nw > nr {
				nw = 0
			}
			written += int64(nw)
			if werr == nil && nw != nr {
				werr = io.ErrShortWrite
			}
			if werr != nil {
				return written, &TransferIncompleteError{Written: written, Expected: size, Err: werr}
			}
			if progress != nil {
				_, _ = progress.Write(buf[:nw])
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return written, fmt.Errorf("%w: read: %w", ErrIO, rerr)
		}
	}
	if written != size {
		return written, &TransferIncompleteError{Written: written, Expected: size}
	}
	return written, nil
}
