package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Joker-containers/joker/internal/domain"
	"github.com/Joker-containers/joker/internal/ports"
	"github.com/Joker-containers/joker/pkg/log"
)

// Registry runs the daemon registry commands. Every call loads the
// registry from the store, mutates a copy in memory, and saves it back
// only when the whole operation succeeded.
type Registry struct {
	store  ports.RegistryStore
	msg    ports.Messenger
	logger ports.Logger
}

// NewRegistry creates a Registry service. A nil logger discards output.
func NewRegistry(store ports.RegistryStore, msg ports.Messenger, logger ports.Logger) *Registry {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Registry{store: store, msg: msg, logger: logger}
}

// Add registers name at ipText:portText. Adding a name that already
// exists keeps the existing address and is not an error.
func (r *Registry) Add(ctx context.Context, name, ipText, portText string) (domain.Daemon, error) {
	d, err := r.add(ctx, name, ipText, portText)
	if err != nil {
		r.msg.Error(fmt.Sprintf("Error while adding daemon: %v", err))
		return domain.Daemon{}, err
	}
	return d, nil
}

func (r *Registry) add(ctx context.Context, name, ipText, portText string) (domain.Daemon, error) {
	reg, err := r.store.Load(ctx)
	if err != nil {
		return domain.Daemon{}, err
	}

	addr, err := domain.ParseAddress(ipText, portText)
	if err != nil {
		return domain.Daemon{}, err
	}

	next := reg.Clone()
	added, err := next.Add(name, addr)
	if err != nil {
		return domain.Daemon{}, err
	}

	if err := r.store.Save(ctx, next); err != nil {
		return domain.Daemon{}, err
	}

	d, _ := next.Lookup(name)
	if added {
		r.logger.Info("daemon added", log.String("daemon", name), log.String("addr", addr.String()))
		r.msg.Success(fmt.Sprintf("Added daemon %s at ip %s and port %s.", name, ipText, portText))
	} else {
		r.logger.Warn("daemon already registered, keeping existing address",
			log.String("daemon", name),
			log.String("existing", d.Addr.String()),
			log.String("ignored", addr.String()),
		)
		r.msg.Info(fmt.Sprintf("Daemon %s is already registered at %s; keeping the existing address.", name, d.Addr))
	}
	return d, nil
}

// Checkout makes name the active daemon.
func (r *Registry) Checkout(ctx context.Context, name string) (domain.Daemon, error) {
	reg, err := r.store.Load(ctx)
	if err != nil {
		r.msg.Error(fmt.Sprintf("Error while switching to daemon %s: %v", name, err))
		return domain.Daemon{}, err
	}

	next := reg.Clone()
	d, err := next.Checkout(name)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownDaemon) {
			r.msg.Error(fmt.Sprintf("Error while switching to daemon %s: no such daemon.", name))
		} else {
			r.msg.Error(fmt.Sprintf("Error while switching to daemon %s: %v", name, err))
		}
		return domain.Daemon{}, err
	}

	if err := r.store.Save(ctx, next); err != nil {
		r.msg.Error(fmt.Sprintf("Error while switching to daemon %s: %v", name, err))
		return domain.Daemon{}, err
	}

	r.logger.Info("active daemon changed",
		log.String("from", reg.Active.Name),
		log.String("to", d.Name),
	)
	r.msg.Success(fmt.Sprintf("Switching to daemon %s.", name))
	return d, nil
}

// Current returns the active daemon exactly as stored. It does not check
// that the daemon is still registered.
func (r *Registry) Current(ctx context.Context) (domain.Daemon, error) {
	reg, err := r.store.Load(ctx)
	if err != nil {
		r.msg.Error(fmt.Sprintf("Error while reading the active daemon: %v", err))
		return domain.Daemon{}, err
	}
	d, err := reg.Current()
	if err != nil {
		r.msg.Error("No daemon checked out. Use `joker checkout <name>` first.")
		return domain.Daemon{}, err
	}
	return d, nil
}

// List returns every registered daemon ordered by name and the active one.
func (r *Registry) List(ctx context.Context) ([]domain.Daemon, domain.Daemon, error) {
	reg, err := r.store.Load(ctx)
	if err != nil {
		r.msg.Error(fmt.Sprintf("Error while listing daemons: %v", err))
		return nil, domain.Daemon{}, err
	}
	return reg.Sorted(), reg.Active, nil
}
