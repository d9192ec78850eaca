// Package joker ships container artifacts to joker daemons and manages the
// local registry of known daemons.
//
// Example usage:
//
//	addr := netip.MustParseAddrPort("10.0.0.7:9000")
//	rep, err := joker.Ship(ctx, addr, []string{"./build/api.bin"},
//	    joker.WithDialTimeout(5*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(rep.Sent)
package joker

import (
	"context"
	"net/netip"
	"time"

	"github.com/Joker-containers/joker/internal/adapters/fs"
	"github.com/Joker-containers/joker/internal/adapters/tcp"
	"github.com/Joker-containers/joker/internal/app"
	"github.com/Joker-containers/joker/internal/domain"
	"github.com/Joker-containers/joker/internal/ports"
	"github.com/Joker-containers/joker/pkg/log"
)

type (
	// Daemon is a named daemon address.
	Daemon = domain.Daemon

	// Report describes how far a shipment got.
	Report = app.Report

	// Registry manages the daemon registry file.
	Registry = app.Registry

	// Messenger receives the one-line user messages the services produce.
	Messenger = ports.Messenger

	// Kind classifies joker errors.
	Kind = domain.Kind
)

// Sentinel errors for errors.Is checks.
var (
	ErrConfigUnavailable   = domain.ErrConfigUnavailable
	ErrConfigCorrupt       = domain.ErrConfigCorrupt
	ErrConfigUnwritable    = domain.ErrConfigUnwritable
	ErrInvalidAddress      = domain.ErrInvalidAddress
	ErrInvalidName         = domain.ErrInvalidName
	ErrUnknownDaemon       = domain.ErrUnknownDaemon
	ErrConnectionFailed    = domain.ErrConnectionFailed
	ErrMalformedPath       = domain.ErrMalformedPath
	ErrArtifactUnreadable  = domain.ErrArtifactUnreadable
	ErrManifestUnreadable  = domain.ErrManifestUnreadable
	ErrTransferInterrupted = domain.ErrTransferInterrupted
	ErrNotImplemented      = domain.ErrNotImplemented
)

// KindOf reports the kind of a joker error, or the unknown kind.
func KindOf(err error) Kind { return domain.KindOf(err) }

// Option configures optional behavior of Ship and OpenRegistry.
type Option func(*options)

type options struct {
	logger       log.Logger
	messenger    ports.Messenger
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

func defaultOptions() options {
	return options{
		logger:       log.NewNoopLogger(),
		messenger:    quiet{},
		dialTimeout:  10 * time.Second,
		writeTimeout: 30 * time.Second,
	}
}

// WithLogger sets a logger for diagnostics. The default discards them.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMessenger sets where user-facing lines go. The default discards them.
func WithMessenger(m Messenger) Option {
	return func(o *options) {
		o.messenger = m
	}
}

// WithDialTimeout bounds the connection attempt. Zero disables the limit.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = d
	}
}

// WithWriteTimeout bounds each write to the daemon. Zero disables the limit.
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) {
		o.writeTimeout = d
	}
}

// Ship sends the artifacts at paths to addr over one TCP connection.
func Ship(ctx context.Context, addr netip.AddrPort, paths []string, opts ...Option) (Report, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := app.NewShipper(tcp.NewDialer(o.dialTimeout, o.writeTimeout), fs.NewArtifactFiles(), o.messenger, o.logger)
	return s.Run(ctx, Daemon{Name: addr.String(), Addr: addr}, paths)
}

// OpenRegistry returns a Registry backed by the TOML file at path, creating
// an empty file if none exists.
func OpenRegistry(ctx context.Context, path string, opts ...Option) (*Registry, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	store := fs.NewRegistryFile(path)
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return app.NewRegistry(store, o.messenger, o.logger), nil
}

type quiet struct{}

func (quiet) Success(string) {}
func (quiet) Info(string)    {}
func (quiet) Error(string)   {}
