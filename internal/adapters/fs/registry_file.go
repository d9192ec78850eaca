package fs

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/Joker-containers/joker/internal/domain"
)

// registryDoc is the on-disk TOML shape of the registry.
type registryDoc struct {
	Daemons      map[string]addressDoc `toml:"daemons"`
	ActiveDaemon *activeDoc            `toml:"active_daemon,omitempty"`
}

type addressDoc struct {
	IP   string `toml:"ip"`
	Port uint16 `toml:"port"`
}

type activeDoc struct {
	Name string `toml:"name"`
	IP   string `toml:"ip"`
	Port uint16 `toml:"port"`
}

// RegistryFile implements ports.RegistryStore using a TOML file.
type RegistryFile struct {
	path string
}

// NewRegistryFile creates a RegistryFile stored at path.
func NewRegistryFile(path string) *RegistryFile {
	return &RegistryFile{path: path}
}

// Path returns the full path to the registry file.
func (r *RegistryFile) Path() string {
	return r.path
}

// Init writes an empty registry if the file does not exist yet.
func (r *RegistryFile) Init(ctx context.Context) error {
	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return domain.Wrap(domain.ConfigUnavailable, r.path, err)
	}
	return r.Save(ctx, domain.NewRegistry())
}

// Load reads and decodes the registry file.
func (r *RegistryFile) Load(ctx context.Context) (domain.Registry, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return domain.Registry{}, domain.Wrap(domain.ConfigUnavailable, r.path, err)
	}

	var doc registryDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return domain.Registry{}, domain.Wrap(domain.ConfigCorrupt, r.path, err)
	}

	reg := domain.NewRegistry()
	for name, a := range doc.Daemons {
		addr, err := decodeAddr(a.IP, a.Port)
		if err != nil {
			return domain.Registry{}, domain.Wrap(domain.ConfigCorrupt, fmt.Sprintf("%s: daemon %q", r.path, name), err)
		}
		reg.Daemons[name] = addr
	}
	if doc.ActiveDaemon != nil {
		addr, err := decodeAddr(doc.ActiveDaemon.IP, doc.ActiveDaemon.Port)
		if err != nil {
			return domain.Registry{}, domain.Wrap(domain.ConfigCorrupt, r.path+": active daemon", err)
		}
		reg.Active = domain.Daemon{Name: doc.ActiveDaemon.Name, Addr: addr}
	}
	return reg, nil
}

// Save encodes reg and replaces the registry file atomically.
// The data goes to a temp file in the same directory which is then renamed
// over the target.
func (r *RegistryFile) Save(ctx context.Context, reg domain.Registry) error {
	data, err := toml.Marshal(encodeRegistry(reg))
	if err != nil {
		return domain.Wrap(domain.ConfigUnwritable, "encode registry", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return domain.Wrap(domain.ConfigUnwritable, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return domain.Wrap(domain.ConfigUnwritable, dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return domain.Wrap(domain.ConfigUnwritable, tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return domain.Wrap(domain.ConfigUnwritable, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return domain.Wrap(domain.ConfigUnwritable, tmpPath, err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		return domain.Wrap(domain.ConfigUnwritable, r.path, err)
	}
	return nil
}

func encodeRegistry(reg domain.Registry) registryDoc {
	doc := registryDoc{Daemons: make(map[string]addressDoc, len(reg.Daemons))}
	for name, addr := range reg.Daemons {
		doc.Daemons[name] = addressDoc{IP: addr.Addr().String(), Port: addr.Port()}
	}
	if !reg.Active.IsZero() {
		doc.ActiveDaemon = &activeDoc{
			Name: reg.Active.Name,
			IP:   reg.Active.Addr.Addr().String(),
			Port: reg.Active.Addr.Port(),
		}
	}
	return doc
}

func decodeAddr(ip string, port uint16) (netip.AddrPort, error) {
	a, err := netip.ParseAddr(ip)
	if err != nil {
		return netip.AddrPort{}, err
	}
	return netip.AddrPortFrom(a, port), nil
}
