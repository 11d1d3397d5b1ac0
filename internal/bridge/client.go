// Package bridge implements the gateway-side client of the framed
// socket protocol: one lazily-opened TCP connection to the editor host,
// synchronous request/response round trips under deadlines, and an
// explicit reconnect procedure on failure.
package bridge

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/lydakis/unity-mcp/internal/logx"
	"github.com/lydakis/unity-mcp/internal/wire"
)

const (
	// DefaultTimeout bounds connect, write and read individually.
	DefaultTimeout = 10 * time.Second
	// DefaultBackoff is the pause before a reconnect attempt.
	DefaultBackoff = time.Second
)

// Client holds the single socket to the editor host. A mutex serializes
// concurrent Send calls: the host processes one request per connection
// at a time, so interleaving writes would only corrupt correlation.
type Client struct {
	addr    string
	timeout time.Duration
	backoff time.Duration

	mu   sync.Mutex
	conn net.Conn
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the connect/read/write deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithBackoff overrides the pause before reconnecting.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// NewClient creates a client for the host at addr. No connection is
// opened until the first Send or an explicit Connect.
func NewClient(addr string, opts ...Option) *Client {
	c := &Client{
		addr:    addr,
		timeout: DefaultTimeout,
		backoff: DefaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect dials the host under the configured timeout.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked()
}

func (c *Client) connectLocked() error {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return &TransportError{Op: "connect", Err: fmt.Errorf("connecting to host %s: %w", c.addr, err)}
	}
	c.conn = conn
	logx.Infof("connected to editor host %s", c.addr)
	return nil
}

// Send performs one framed round trip. A write or read failure triggers
// the reconnect procedure and returns a TransportError; the caller owns
// any retry of the whole call. The response's correlation ID is not
// checked here — with one request in flight per connection it is the
// caller's concern.
func (c *Client) Send(req *wire.Request) (*wire.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		if err := c.connectLocked(); err != nil {
			return nil, err
		}
	}

	frame, err := wire.EncodeRequest(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		c.reconnectLocked()
		return nil, &TransportError{Op: "write", Err: fmt.Errorf("setting write deadline: %w", err)}
	}
	if _, err := c.conn.Write(frame); err != nil {
		c.reconnectLocked()
		return nil, &TransportError{Op: "write", Err: fmt.Errorf("sending request: %w", err)}
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		c.reconnectLocked()
		return nil, &TransportError{Op: "read", Err: fmt.Errorf("setting read deadline: %w", err)}
	}
	payload, err := wire.ReadFrame(c.conn)
	if err != nil {
		c.reconnectLocked()
		return nil, &TransportError{Op: "read", Err: fmt.Errorf("receiving response: %w", err)}
	}

	var resp wire.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		c.reconnectLocked()
		return nil, &TransportError{Op: "read", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return &resp, nil
}

// reconnectLocked closes the broken socket, waits the fixed backoff and
// tries one fresh dial. Success or failure is logged; the caller decides
// whether to retry the call itself.
func (c *Client) reconnectLocked() {
	logx.Infof("connection to %s lost, reconnecting", c.addr)
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	time.Sleep(c.backoff)
	if err := c.connectLocked(); err != nil {
		logx.Errorf("reconnect to %s failed: %v", c.addr, err)
		return
	}
	logx.Infof("reconnected to editor host %s", c.addr)
}

// IsConnected probes connection liveness with a zero-length write. The
// answer is advisory: a race near the probe boundary can mislead it.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return false
	}
	c.conn.SetWriteDeadline(time.Now().Add(time.Second)) //nolint: errcheck
	_, err := c.conn.Write(nil)
	return err == nil
}

// Close releases the socket. Safe to call when already closed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
