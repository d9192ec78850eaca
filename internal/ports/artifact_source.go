package ports

// ArtifactSource reads artifact files from local storage.
type ArtifactSource interface {
	// ReadFile returns the full content of path.
	ReadFile(path string) ([]byte, error)
}
