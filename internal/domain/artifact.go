package domain

import (
	"fmt"
	"strings"
)

// ManifestSuffix is appended to an artifact path to locate its manifest.
const ManifestSuffix = ".joker"

// Artifact is a container binary and its manifest, shipped as a unit.
// It only lives for the duration of a send.
type Artifact struct {
	// Name is the final path segment of the source path
	Name string

	// Payload is the raw content of the artifact file
	Payload []byte

	// Manifest is the raw content of <path>.joker
	Manifest []byte
}

// ArtifactName derives the display name from path: the substring after
// the last '/'. A path with no final segment is rejected.
func ArtifactName(path string) (string, error) {
	name := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		name = path[i+1:]
	}
	if name == "" {
		return "", New(MalformedPath, fmt.Sprintf("no file name in path %q", path))
	}
	return name, nil
}

// ManifestPath returns the manifest location for an artifact path.
func ManifestPath(path string) string {
	return path + ManifestSuffix
}
