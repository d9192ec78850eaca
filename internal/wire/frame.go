// Package wire implements the artifact transfer protocol.
//
// Each artifact is sent as three frames in a fixed order: name, payload,
// manifest. A frame is an 8-byte little-endian unsigned length followed by
// that many raw bytes. There is no preamble, trailer, checksum or
// acknowledgment; closing the connection ends the batch.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Joker-containers/joker/internal/domain"
)

// LengthPrefixSize is the size of a frame's length prefix in bytes.
const LengthPrefixSize = 8

// FramesPerArtifact is the number of frames written for each artifact.
const FramesPerArtifact = 3

var (
	ErrFrameTooLarge = errors.New("wire: frame exceeds limit")
	ErrShortFrame    = errors.New("wire: short frame")
)

// Limits constrains decode memory use on the receiving side.
type Limits struct {
	MaxNameBytes     uint64
	MaxPayloadBytes  uint64
	MaxManifestBytes uint64
}

// DefaultLimits returns limits suitable for tests and small receivers.
func DefaultLimits() Limits {
	return Limits{
		MaxNameBytes:     4 * 1024,
		MaxPayloadBytes:  1 << 30,
		MaxManifestBytes: 16 * 1024 * 1024,
	}
}

// WriteFrame writes one length-prefixed frame to w.
func WriteFrame(w io.Writer, b []byte) error {
	var prefix [LengthPrefixSize]byte
	binary.LittleEndian.PutUint64(prefix[:], uint64(len(b)))
	if _, err := w.Write(prefix[:]); err != nil {
		return fmt.Errorf("write frame length: %w", err)
	}
	if len(b) > 0 {
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("write frame data: %w", err)
		}
	}
	return nil
}

// ReadFrame reads one length-prefixed frame from r. A clean EOF before
// the length prefix is returned as io.EOF.
func ReadFrame(r io.Reader, limit uint64) ([]byte, error) {
	var prefix [LengthPrefixSize]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortFrame
		}
		return nil, err
	}
	n := binary.LittleEndian.Uint64(prefix[:])
	if n > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, n, limit)
	}
	b := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, b); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, ErrShortFrame
			}
			return nil, err
		}
	}
	return b, nil
}

// WriteArtifact writes the name, payload and manifest frames of a.
func WriteArtifact(w io.Writer, a domain.Artifact) error {
	if err := WriteFrame(w, []byte(a.Name)); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if err := WriteFrame(w, a.Payload); err != nil {
		return fmt.Errorf("payload: %w", err)
	}
	if err := WriteFrame(w, a.Manifest); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	return nil
}

// ReadArtifact reads one artifact from r. It returns io.EOF when the
// sender closed the connection between artifacts.
func ReadArtifact(r io.Reader, limits Limits) (domain.Artifact, error) {
	name, err := ReadFrame(r, limits.MaxNameBytes)
	if err != nil {
		return domain.Artifact{}, err
	}
	payload, err := ReadFrame(r, limits.MaxPayloadBytes)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("payload of %q: %w", name, unexpected(err))
	}
	manifest, err := ReadFrame(r, limits.MaxManifestBytes)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("manifest of %q: %w", name, unexpected(err))
	}
	return domain.Artifact{Name: string(name), Payload: payload, Manifest: manifest}, nil
}

// EncodedSize returns the number of bytes WriteArtifact produces for a.
func EncodedSize(a domain.Artifact) int64 {
	return FramesPerArtifact*LengthPrefixSize +
		int64(len(a.Name)) + int64(len(a.Payload)) + int64(len(a.Manifest))
}

// unexpected turns an EOF inside an artifact into ErrShortFrame.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrShortFrame
	}
	return err
}
