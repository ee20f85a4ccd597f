package archive

import (
	"errors"
	"fmt"
)

var (
	// ErrContainerFormat is matched by every ContainerFormatError.
	ErrContainerFormat = errors.New("archive: malformed container")
	// ErrIO marks local filesystem and stream read/write failures.
	ErrIO = errors.New("archive: i/o failure")
)

// ContainerFormatError reports a member or file carrying the container suffix
// that could not be opened as a container. Path is the logical path of the
// offending container.
type ContainerFormatError struct {
	Path string
	Err  error
}

func (e *ContainerFormatError) Error() string {
	return fmt.Sprintf("archive: %s is not a readable container: %v", e.Path, e.Err)
}

func (e *ContainerFormatError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrContainerFormat) match.
func (e *ContainerFormatError) Is(target error) bool { return target == ErrContainerFormat }

func ioError(op, name string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, name, err)
}
