package domain

import (
	"fmt"
	"net/netip"
	"sort"
	"strconv"
)

// Daemon is a named remote daemon and its resolved address.
type Daemon struct {
	Name string
	Addr netip.AddrPort
}

// IsZero reports whether d is the zero Daemon, which stands for
// "no daemon checked out".
func (d Daemon) IsZero() bool {
	return d.Name == "" && !d.Addr.IsValid()
}

// String renders the daemon as name@ip:port.
func (d Daemon) String() string {
	return fmt.Sprintf("%s@%s", d.Name, d.Addr)
}

// ParseAddress parses an IP address and a base-10 16-bit port.
func ParseAddress(ipText, portText string) (netip.AddrPort, error) {
	ip, err := netip.ParseAddr(ipText)
	if err != nil {
		return netip.AddrPort{}, Wrap(InvalidAddress, fmt.Sprintf("ip %q", ipText), err)
	}
	port, err := strconv.ParseUint(portText, 10, 16)
	if err != nil {
		return netip.AddrPort{}, Wrap(InvalidAddress, fmt.Sprintf("port %q", portText), err)
	}
	return netip.AddrPortFrom(ip, uint16(port)), nil
}

// Registry holds every known daemon and the active one.
//
// Active need not be present in Daemons: Checkout requires membership, but
// nothing re-validates it afterwards.
type Registry struct {
	Daemons map[string]netip.AddrPort
	Active  Daemon
}

// NewRegistry returns an empty registry with no active daemon.
func NewRegistry() Registry {
	return Registry{Daemons: make(map[string]netip.AddrPort)}
}

// Add inserts name if it is not already registered. An existing entry is
// kept untouched (first write wins). It reports whether name was inserted.
func (r *Registry) Add(name string, addr netip.AddrPort) (bool, error) {
	if name == "" {
		return false, New(InvalidName, "daemon name must not be empty")
	}
	if !addr.IsValid() {
		return false, New(InvalidAddress, fmt.Sprintf("daemon %s has no address", name))
	}
	if r.Daemons == nil {
		r.Daemons = make(map[string]netip.AddrPort)
	}
	if _, ok := r.Daemons[name]; ok {
		return false, nil
	}
	r.Daemons[name] = addr
	return true, nil
}

// Lookup returns the daemon registered under name.
func (r Registry) Lookup(name string) (Daemon, bool) {
	addr, ok := r.Daemons[name]
	if !ok {
		return Daemon{}, false
	}
	return Daemon{Name: name, Addr: addr}, true
}

// Checkout makes name the active daemon. Active is left unchanged when
// name is not registered.
func (r *Registry) Checkout(name string) (Daemon, error) {
	d, ok := r.Lookup(name)
	if !ok {
		return Daemon{}, New(UnknownDaemon, fmt.Sprintf("no such daemon %q", name))
	}
	r.Active = d
	return d, nil
}

// Current returns the active daemon as stored.
func (r Registry) Current() (Daemon, error) {
	if r.Active.IsZero() {
		return Daemon{}, New(UnknownDaemon, "no daemon checked out")
	}
	return r.Active, nil
}

// Sorted returns all registered daemons ordered by name.
func (r Registry) Sorted() []Daemon {
	out := make([]Daemon, 0, len(r.Daemons))
	for name, addr := range r.Daemons {
		out = append(out, Daemon{Name: name, Addr: addr})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Clone returns a deep copy so callers can mutate without touching r.
func (r Registry) Clone() Registry {
	c := Registry{Daemons: make(map[string]netip.AddrPort, len(r.Daemons)), Active: r.Active}
	for k, v := range r.Daemons {
		c.Daemons[k] = v
	}
	return c
}
