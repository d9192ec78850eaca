package ports

import (
	"context"
	"io"
	"net/netip"
)

// Dialer opens the single connection used for a run batch.
// Implementations apply their own connect and write timeouts.
type Dialer interface {
	Dial(ctx context.Context, addr netip.AddrPort) (io.WriteCloser, error)
}
