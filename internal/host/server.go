package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/lydakis/unity-mcp/internal/logx"
	"github.com/lydakis/unity-mcp/internal/wire"
)

// ConnEvent notifies a subscriber of connection lifecycle changes. Used
// by status displays; the core protocol does not depend on it.
type ConnEvent struct {
	Conn      *Conn
	Connected bool
}

// Server accepts bridge connections and runs one receive loop per
// connection. Each loop processes one request fully — decode, dispatch,
// write response — before reading the next frame, so a connection never
// has two requests in flight.
type Server struct {
	addr     string
	registry *Registry
	conns    *ConnRegistry
	notify   func(ConnEvent)

	mu       sync.Mutex
	running  bool
	listener net.Listener
	wg       sync.WaitGroup
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithConnNotify subscribes fn to connect/disconnect events.
func WithConnNotify(fn func(ConnEvent)) ServerOption {
	return func(s *Server) { s.notify = fn }
}

// NewServer creates a server that will listen on addr and dispatch
// through registry.
func NewServer(addr string, registry *Registry, opts ...ServerOption) *Server {
	s := &Server{
		addr:     addr,
		registry: registry,
		conns:    NewConnRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins listening and accepting connections. It returns once the
// listener is bound; accepting runs in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("server already running")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	s.listener = ln
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.acceptLoop(ln)
	}()

	logx.Infof("bridge server listening on %s", ln.Addr())
	return nil
}

// Stop closes the listener, force-closes every live connection and
// waits for the per-connection loops to exit. Idempotent.
func (s *Server) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	ln := s.listener
	s.listener = nil
	s.mu.Unlock()

	if ln != nil {
		ln.Close()
	}
	s.conns.CloseAll()
	s.wg.Wait()
}

// Addr returns the bound listen address, or the configured one before
// Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// ConnectionCount reports the size of the live connection set.
func (s *Server) ConnectionCount() int {
	return s.conns.Count()
}

func (s *Server) acceptLoop(ln net.Listener) {
	for {
		raw, err := ln.Accept()
		if err != nil {
			return // listener closed
		}
		conn := newConn(raw)
		s.conns.Add(conn)
		s.emit(ConnEvent{Conn: conn, Connected: true})
		logx.Infof("client connected: %s (%d live)", conn.Remote, s.conns.Count())

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(conn)
		}()
	}
}

func (s *Server) serveConn(conn *Conn) {
	defer func() {
		conn.Close()
		s.conns.Remove(conn)
		s.emit(ConnEvent{Conn: conn, Connected: false})
		logx.Infof("client disconnected: %s (%d live)", conn.Remote, s.conns.Count())
	}()

	for {
		payload, err := wire.ReadFrame(conn.raw)
		if err != nil {
			var fe *wire.FramingError
			if errors.As(err, &fe) {
				// Protocol violation: answer before tearing the
				// connection down so the peer sees a reason.
				s.writeResponse(conn, wire.ErrorResponse("", fe.Error()))
				logx.Errorf("closing %s after framing error: %v", conn.Remote, fe)
			} else {
				logx.Debugf("read on %s ended: %v", conn.Remote, err)
			}
			return
		}

		var req wire.Request
		if err := json.Unmarshal(payload, &req); err != nil {
			// Malformed envelope: recover the correlation ID if the
			// payload parses far enough, answer, keep the connection.
			id := recoverRequestID(payload)
			if !s.writeResponse(conn, wire.ErrorResponse(id, fmt.Sprintf("invalid request: %v", err))) {
				return
			}
			continue
		}

		resp := s.registry.Dispatch(context.Background(), &req, conn)
		if !s.writeResponse(conn, resp) {
			return
		}
	}
}

// writeResponse frames and writes resp on the connection. Returns false
// when the connection is no longer usable.
func (s *Server) writeResponse(conn *Conn, resp *wire.Response) bool {
	payload, err := json.Marshal(resp)
	if err != nil {
		logx.Errorf("marshaling response for %s: %v", conn.Remote, err)
		return false
	}
	if err := wire.WriteFrame(conn.raw, payload); err != nil {
		logx.Debugf("write on %s failed: %v", conn.Remote, err)
		return false
	}
	return true
}

func (s *Server) emit(ev ConnEvent) {
	if s.notify != nil {
		s.notify(ev)
	}
}

// recoverRequestID extracts the id field from an envelope that failed
// full decoding, so the error response can still correlate.
func recoverRequestID(payload []byte) string {
	var partial struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &partial); err != nil {
		return ""
	}
	return partial.ID
}
