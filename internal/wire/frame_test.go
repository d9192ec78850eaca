package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joker-containers/joker/internal/domain"
)

func TestWriteArtifact_Layout(t *testing.T) {
	a := domain.Artifact{
		Name:     "a.bin",
		Payload:  bytes.Repeat([]byte{0xAB}, 1000),
		Manifest: bytes.Repeat([]byte{'m'}, 20),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteArtifact(&buf, a))

	out := buf.Bytes()
	require.Len(t, out, 8+5+8+1000+8+20)
	assert.EqualValues(t, len(out), EncodedSize(a))

	assert.Equal(t, uint64(5), binary.LittleEndian.Uint64(out[0:8]))
	assert.Equal(t, []byte("a.bin"), out[8:13])
	assert.Equal(t, uint64(1000), binary.LittleEndian.Uint64(out[13:21]))
	assert.Equal(t, a.Payload, out[21:1021])
	assert.Equal(t, uint64(20), binary.LittleEndian.Uint64(out[1021:1029]))
	assert.Equal(t, a.Manifest, out[1029:])
}

func TestWriteFrame_LittleEndianPrefix(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte{1, 2, 3}))
	assert.Equal(t, []byte{3, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3}, buf.Bytes())
}

func TestWriteFrame_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, nil))
	assert.Equal(t, make([]byte, 8), buf.Bytes())

	got, err := ReadFrame(&buf, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadArtifact_Sequence(t *testing.T) {
	batch := []domain.Artifact{
		{Name: "one", Payload: []byte("first"), Manifest: []byte("cfg1")},
		{Name: "two", Payload: nil, Manifest: []byte("cfg2")},
	}

	var buf bytes.Buffer
	for _, a := range batch {
		require.NoError(t, WriteArtifact(&buf, a))
	}

	for i, want := range batch {
		got, err := ReadArtifact(&buf, DefaultLimits())
		require.NoError(t, err, "artifact %d", i)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, string(want.Payload), string(got.Payload))
		assert.Equal(t, want.Manifest, got.Manifest)
	}

	_, err := ReadArtifact(&buf, DefaultLimits())
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadFrame_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		limit uint64
		want  error
	}{
		{"truncated prefix", []byte{1, 0, 0}, 10, ErrShortFrame},
		{"truncated body", []byte{4, 0, 0, 0, 0, 0, 0, 0, 'a'}, 10, ErrShortFrame},
		{"over limit", []byte{11, 0, 0, 0, 0, 0, 0, 0}, 10, ErrFrameTooLarge},
		{"empty stream", nil, 10, io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFrame(bytes.NewReader(tt.input), tt.limit)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestReadArtifact_TruncatedAfterName(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("a.bin")))

	_, err := ReadArtifact(&buf, DefaultLimits())
	assert.ErrorIs(t, err, ErrShortFrame)
}

type failAfter struct {
	n       int
	written int
}

func (f *failAfter) Write(p []byte) (int, error) {
	if f.written+len(p) > f.n {
		return 0, io.ErrClosedPipe
	}
	f.written += len(p)
	return len(p), nil
}

func TestWriteArtifact_PropagatesWriteError(t *testing.T) {
	w := &failAfter{n: 8 + 3}
	err := WriteArtifact(w, domain.Artifact{Name: "abc", Payload: []byte("xyz")})
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.Contains(t, err.Error(), "payload")
}
