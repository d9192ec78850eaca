package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/netip"
	"os"

	"github.com/Joker-containers/joker/internal/domain"
	"github.com/Joker-containers/joker/pkg/log"
)

// memStore implements ports.RegistryStore in memory.
type memStore struct {
	reg     domain.Registry
	loadErr error
	saveErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{reg: domain.NewRegistry()}
}

func (m *memStore) Init(ctx context.Context) error { return nil }

func (m *memStore) Load(ctx context.Context) (domain.Registry, error) {
	if m.loadErr != nil {
		return domain.Registry{}, m.loadErr
	}
	return m.reg.Clone(), nil
}

func (m *memStore) Save(ctx context.Context, reg domain.Registry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.reg = reg.Clone()
	return nil
}

// recordingMessenger implements ports.Messenger and keeps every line.
type recordingMessenger struct {
	success []string
	info    []string
	errors  []string
}

func (r *recordingMessenger) Success(msg string) { r.success = append(r.success, msg) }
func (r *recordingMessenger) Info(msg string)    { r.info = append(r.info, msg) }
func (r *recordingMessenger) Error(msg string)   { r.errors = append(r.errors, msg) }

// memFiles implements ports.ArtifactSource from a map.
type memFiles map[string][]byte

func (m memFiles) ReadFile(path string) ([]byte, error) {
	b, ok := m[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return b, nil
}

// fakeConn records writes and can fail after a byte budget.
type fakeConn struct {
	buf      bytes.Buffer
	failAt   int
	closed   bool
	writeErr error
}

func (c *fakeConn) Write(p []byte) (int, error) {
	if c.closed {
		return 0, io.ErrClosedPipe
	}
	if c.failAt > 0 && c.buf.Len()+len(p) > c.failAt {
		room := c.failAt - c.buf.Len()
		c.buf.Write(p[:room])
		return room, c.writeErr
	}
	return c.buf.Write(p)
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

// fakeDialer implements ports.Dialer.
type fakeDialer struct {
	conn  *fakeConn
	err   error
	dials []netip.AddrPort
}

func (d *fakeDialer) Dial(ctx context.Context, addr netip.AddrPort) (io.WriteCloser, error) {
	d.dials = append(d.dials, addr)
	if d.err != nil {
		return nil, d.err
	}
	return d.conn, nil
}

var errBrokenPipe = errors.New("broken pipe")

// recordingLogger implements ports.Logger and keeps warn and error messages.
type recordingLogger struct {
	warns  []string
	errors []string
}

func (l *recordingLogger) Debug(msg string, fields ...log.Field) {}
func (l *recordingLogger) Info(msg string, fields ...log.Field)  {}
func (l *recordingLogger) Warn(msg string, fields ...log.Field)  { l.warns = append(l.warns, msg) }
func (l *recordingLogger) Error(msg string, fields ...log.Field) { l.errors = append(l.errors, msg) }
