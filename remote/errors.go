package remote

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection means the transport could not be established or broke.
	ErrConnection = errors.New("remote: connection failed")
	// ErrAuthentication means the server rejected the supplied credentials.
	ErrAuthentication = errors.New("remote: authentication failed")
	// ErrSessionClosed is returned, without any I/O, by operations on a
	// session that has failed or been closed.
	ErrSessionClosed = errors.New("remote: session closed")
	// ErrIO marks local file failures and remote stream errors.
	ErrIO = errors.New("remote: i/o failure")
	// ErrTransferIncomplete is matched by every TransferIncompleteError.
	ErrTransferIncomplete = errors.New("remote: transfer incomplete")
)

// TransferIncompleteError reports an upload whose remote byte count differs
// from the local file length.
type TransferIncompleteError struct {
	Written  int64
	Expected int64
	Err      error
}

func (e *TransferIncompleteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote: transfer incomplete: wrote %d of %d bytes: %v", e.Written, e.Expected, e.Err)
	}
	return fmt.Sprintf("remote: transfer incomplete: wrote %d of %d bytes", e.Written, e.Expected)
}

func (e *TransferIncompleteError) Unwrap() error { return e.Err }

func (e *TransferIncompleteError) Is(target error) bool { return target == ErrTransferIncomplete }
