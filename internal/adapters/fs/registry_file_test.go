package fs

import (
	"context"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joker-containers/joker/internal/domain"
)

func TestRegistryFile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistryFile(filepath.Join(t.TempDir(), "nested", "daemons.toml"))

	reg := domain.NewRegistry()
	reg.Daemons["west"] = netip.MustParseAddrPort("127.0.0.1:9000")
	reg.Daemons["v6"] = netip.MustParseAddrPort("[2001:db8::1]:65535")
	reg.Active = domain.Daemon{Name: "west", Addr: reg.Daemons["west"]}

	require.NoError(t, repo.Save(ctx, reg))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, reg, got)
}

func TestRegistryFile_ActiveNotInDaemons(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistryFile(filepath.Join(t.TempDir(), "daemons.toml"))

	reg := domain.NewRegistry()
	reg.Active = domain.Daemon{Name: "gone", Addr: netip.MustParseAddrPort("10.1.1.1:80")}
	require.NoError(t, repo.Save(ctx, reg))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, reg.Active, got.Active)
	assert.Empty(t, got.Daemons)
}

func TestRegistryFile_FileFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "daemons.toml")
	repo := NewRegistryFile(path)

	reg := domain.NewRegistry()
	reg.Daemons["west"] = netip.MustParseAddrPort("127.0.0.1:9000")
	reg.Active = domain.Daemon{Name: "west", Addr: reg.Daemons["west"]}
	require.NoError(t, repo.Save(ctx, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, want := range []string{"[daemons.west]", "[active_daemon]", "127.0.0.1", "port = 9000", "west"} {
		assert.Contains(t, string(data), want)
	}
}

func TestRegistryFile_LoadHandwritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemons.toml")
	content := `
[daemons.east]
ip = "192.168.1.10"
port = 7000

[active_daemon]
name = "east"
ip = "192.168.1.10"
port = 7000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, err := NewRegistryFile(path).Load(context.Background())
	require.NoError(t, err)

	want := netip.MustParseAddrPort("192.168.1.10:7000")
	assert.Equal(t, want, got.Daemons["east"])
	assert.Equal(t, domain.Daemon{Name: "east", Addr: want}, got.Active)
}

func TestRegistryFile_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    error
	}{
		{"missing file", nil, domain.ErrConfigUnavailable},
		{"invalid toml", strPtr("this is not toml ["), domain.ErrConfigCorrupt},
		{"wrong shape", strPtr("daemons = 3\n"), domain.ErrConfigCorrupt},
		{"bad daemon ip", strPtr("[daemons.x]\nip = \"nope\"\nport = 1\n"), domain.ErrConfigCorrupt},
		{"port out of range", strPtr("[daemons.x]\nip = \"127.0.0.1\"\nport = 70000\n"), domain.ErrConfigCorrupt},
		{"bad active ip", strPtr("[active_daemon]\nname = \"x\"\nip = \"\"\nport = 1\n"), domain.ErrConfigCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "daemons.toml")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o600))
			}
			_, err := NewRegistryFile(path).Load(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegistryFile_InitDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	repo := NewRegistryFile(filepath.Join(t.TempDir(), "daemons.toml"))

	require.NoError(t, repo.Init(ctx))
	reg, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, reg.Daemons)
	assert.True(t, reg.Active.IsZero())

	reg.Daemons["west"] = netip.MustParseAddrPort("127.0.0.1:9000")
	require.NoError(t, repo.Save(ctx, reg))
	require.NoError(t, repo.Init(ctx))

	reg, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, reg.Daemons, "west", "Init overwrote an existing registry")
}

func TestRegistryFile_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	repo := NewRegistryFile(filepath.Join(dir, "daemons.toml"))
	require.NoError(t, repo.Save(context.Background(), domain.NewRegistry()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"daemons.toml"}, names)
}

func TestRegistryFile_SaveUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	repo := NewRegistryFile(filepath.Join(blocker, "daemons.toml"))
	err := repo.Save(context.Background(), domain.NewRegistry())
	assert.ErrorIs(t, err, domain.ErrConfigUnwritable)
}

func strPtr(s string) *string { return &s }
