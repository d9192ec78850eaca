package ports

import (
	"context"

	"github.com/Joker-containers/joker/internal/domain"
)

// RegistryStore persists the daemon registry between invocations.
type RegistryStore interface {
	// Init creates an empty registry if none exists yet.
	// It never overwrites an existing one.
	Init(ctx context.Context) error

	// Load reads the registry.
	// Fails with domain.ConfigUnavailable if storage is missing or
	// unreadable, domain.ConfigCorrupt if it cannot be decoded.
	Load(ctx context.Context) (domain.Registry, error)

	// Save overwrites the registry in full. Readers never observe a
	// partial write. Fails with domain.ConfigUnwritable.
	Save(ctx context.Context, reg domain.Registry) error
}
