package hotswap

import "errors"

var (
	// ErrArtifactNotFound means no class file matched, so nothing was uploaded.
	ErrArtifactNotFound = errors.New("hotswap: artifact not found")
	// ErrInvalidRequest rejects empty source identifiers and class names
	// carrying path separators.
	ErrInvalidRequest = errors.New("hotswap: invalid request")
)
