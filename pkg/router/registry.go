package router

import (
	"net/netip"
	"sync"
)

// Registry is the set of client addresses currently subscribed to the
// relay. Safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	clients map[netip.AddrPort]struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[netip.AddrPort]struct{})}
}

// Register adds addr and reports whether it was new. Re-registering an
// existing client is the keepalive path and reports false.
func (r *Registry) Register(addr netip.AddrPort) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[addr]; ok {
		return false
	}
	r.clients[addr] = struct{}{}
	return true
}

// Unregister removes addr and reports whether it was present.
func (r *Registry) Unregister(addr netip.AddrPort) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[addr]; !ok {
		return false
	}
	delete(r.clients, addr)
	return true
}

// Len reports the number of registered clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Snapshot returns the current client addresses.
func (r *Registry) Snapshot() []netip.AddrPort {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]netip.AddrPort, 0, len(r.clients))
	for addr := range r.clients {
		out = append(out, addr)
	}
	return out
}
