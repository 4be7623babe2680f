package app

import "errors"

var (
	// ErrArtifactNotFound indicates an unknown artifact identifier.
	ErrArtifactNotFound = errors.New("artifact not found")
)
