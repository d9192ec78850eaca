package fs

import "os"

// ArtifactFiles implements ports.ArtifactSource on the local file system.
type ArtifactFiles struct{}

// NewArtifactFiles creates an ArtifactFiles reader.
func NewArtifactFiles() ArtifactFiles {
	return ArtifactFiles{}
}

// ReadFile returns the full content of path.
func (ArtifactFiles) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
