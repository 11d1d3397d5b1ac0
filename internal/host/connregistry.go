package host

import (
	"net"
	"sync"

	"github.com/google/uuid"
)

// Conn is one live client connection: the socket plus the identity the
// server tracks it under. The receive loop owns all reads and writes;
// other goroutines may only Close.
type Conn struct {
	ID     string
	Remote string
	raw    net.Conn
}

func newConn(raw net.Conn) *Conn {
	remote := ""
	if addr := raw.RemoteAddr(); addr != nil {
		remote = addr.String()
	}
	return &Conn{
		ID:     uuid.NewString(),
		Remote: remote,
		raw:    raw,
	}
}

// Close force-closes the underlying socket.
func (c *Conn) Close() error {
	return c.raw.Close()
}

// ConnRegistry tracks the live connection set under a single mutex. It
// is owned by the server instance that accepts the connections.
type ConnRegistry struct {
	mu    sync.Mutex
	conns map[string]*Conn
}

// NewConnRegistry creates an empty connection registry.
func NewConnRegistry() *ConnRegistry {
	return &ConnRegistry{conns: make(map[string]*Conn)}
}

// Add inserts a connection into the live set.
func (r *ConnRegistry) Add(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[c.ID] = c
}

// Remove drops a connection from the live set. Removing an absent
// connection is a no-op.
func (r *ConnRegistry) Remove(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, c.ID)
}

// Count returns the number of live connections.
func (r *ConnRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// Snapshot returns the live connections at the moment of the call.
func (r *ConnRegistry) Snapshot() []*Conn {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Conn, 0, len(r.conns))
	for _, c := range r.conns {
		out = append(out, c)
	}
	return out
}

// CloseAll force-closes and removes every live connection.
func (r *ConnRegistry) CloseAll() {
	r.mu.Lock()
	conns := r.conns
	r.conns = make(map[string]*Conn)
	r.mu.Unlock()

	for _, c := range conns {
		c.Close() //nolint: errcheck
	}
}
