package tcp

import (
	"context"
	"io"
	"net"
	"net/netip"
	"time"
)

// Dialer implements ports.Dialer over plain TCP.
type Dialer struct {
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

// NewDialer creates a Dialer. A zero timeout disables that limit.
func NewDialer(dialTimeout, writeTimeout time.Duration) *Dialer {
	return &Dialer{
		dialTimeout:  dialTimeout,
		writeTimeout: writeTimeout,
	}
}

// Dial makes a single connection attempt to addr.
func (d *Dialer) Dial(ctx context.Context, addr netip.AddrPort) (io.WriteCloser, error) {
	nd := net.Dialer{Timeout: d.dialTimeout}
	conn, err := nd.DialContext(ctx, "tcp", addr.String())
	if err != nil {
		return nil, err
	}
	return &Conn{conn: conn, writeTimeout: d.writeTimeout}, nil
}

// Conn is a write-only view of a TCP connection that refreshes the write
// deadline before every write.
type Conn struct {
	conn         net.Conn
	writeTimeout time.Duration
}

// Write writes p to the connection.
func (c *Conn) Write(p []byte) (int, error) {
	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return 0, err
		}
	}
	return c.conn.Write(p)
}

// Close closes the connection, which tells the daemon the batch ended.
func (c *Conn) Close() error {
	return c.conn.Close()
}
