package host

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/lydakis/unity-mcp/internal/wire"
)

func startTestServer(t *testing.T, registry *Registry, opts ...ServerOption) *Server {
	t.Helper()
	s := NewServer("127.0.0.1:0", registry, opts...)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(s.Stop)
	return s
}

func dialTest(t *testing.T, s *Server) net.Conn {
	t.Helper()
	conn, err := net.DialTimeout("tcp", s.Addr(), time.Second)
	if err != nil {
		t.Fatalf("dialing server: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn net.Conn, req *wire.Request) *wire.Response {
	t.Helper()
	frame, err := wire.EncodeRequest(req)
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	if _, err := conn.Write(frame); err != nil {
		t.Fatalf("writing request: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	payload, err := wire.ReadFrame(conn)
	if err != nil {
		t.Fatalf("reading response: %v", err)
	}
	var resp wire.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return &resp
}

func pingRegistry() *Registry {
	r := NewRegistry()
	r.Register(Tool{
		Name: "ping",
		Execute: func(ctx context.Context, params wire.Params, conn *Conn) (any, error) {
			return map[string]any{"message": "pong"}, nil
		},
	})
	return r
}

func TestServerHappyPath(t *testing.T) {
	s := startTestServer(t, pingRegistry())
	conn := dialTest(t, s)

	resp := roundTrip(t, conn, &wire.Request{Action: "ping", Params: map[string]any{}, ID: "t1"})
	if !resp.Success {
		t.Fatalf("response error = %q", resp.Error)
	}
	if resp.ID != "t1" {
		t.Errorf("id = %q, want t1", resp.ID)
	}
}

func TestServerMissingActionKeepsConnection(t *testing.T) {
	s := startTestServer(t, pingRegistry())
	conn := dialTest(t, s)

	resp := roundTrip(t, conn, &wire.Request{Params: map[string]any{}, ID: "t2"})
	if resp.Success {
		t.Fatal("response succeeded without action")
	}
	if resp.Error != "message missing action field" {
		t.Errorf("error = %q", resp.Error)
	}
	if resp.ID != "t2" {
		t.Errorf("id = %q, want t2", resp.ID)
	}

	// The same connection still serves the next request.
	resp = roundTrip(t, conn, &wire.Request{Action: "ping", ID: "t3"})
	if !resp.Success {
		t.Fatalf("follow-up error = %q", resp.Error)
	}
}

func TestServerMalformedJSONAnswersWithoutClosing(t *testing.T) {
	s := startTestServer(t, pingRegistry())
	conn := dialTest(t, s)

	if err := wire.WriteFrame(conn, []byte("{not json")); err != nil {
		t.Fatalf("writing malformed frame: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	payload, err := wire.ReadFrame(conn)
	if err != nil {
		t.Fatalf("reading error response: %v", err)
	}
	var resp wire.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if resp.Success {
		t.Fatal("malformed JSON reported success")
	}

	resp2 := roundTrip(t, conn, &wire.Request{Action: "ping", ID: "after"})
	if !resp2.Success {
		t.Fatalf("connection unusable after decode error: %q", resp2.Error)
	}
}

func TestServerFramingErrorAnswersThenCloses(t *testing.T) {
	s := startTestServer(t, pingRegistry())
	conn := dialTest(t, s)

	// Zero length prefix is a protocol error.
	if _, err := conn.Write([]byte{0, 0, 0, 0}); err != nil {
		t.Fatalf("writing bad frame: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	payload, err := wire.ReadFrame(conn)
	if err != nil {
		t.Fatalf("reading framing error response: %v", err)
	}
	var resp wire.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.Success {
		t.Fatal("framing error reported success")
	}

	// The server closes the connection after answering.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := wire.ReadFrame(conn); err == nil {
		t.Fatal("connection still open after framing error")
	}
}

func TestServerConcurrentConnectionsIsolated(t *testing.T) {
	r := NewRegistry()
	r.Register(Tool{
		Name: "echo",
		Execute: func(ctx context.Context, params wire.Params, conn *Conn) (any, error) {
			return map[string]any{"tag": params.String("tag", "")}, nil
		},
	})
	s := startTestServer(t, r)

	var wg sync.WaitGroup
	for _, tag := range []string{"a", "b"} {
		tag := tag
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn, err := net.DialTimeout("tcp", s.Addr(), time.Second)
			if err != nil {
				t.Errorf("dialing: %v", err)
				return
			}
			defer conn.Close()
			for i := 0; i < 20; i++ {
				req := wire.NewRequest("echo", map[string]any{"tag": tag})
				resp := roundTrip(t, conn, req)
				if resp.ID != req.ID {
					t.Errorf("conn %s: response id %q for request %q", tag, resp.ID, req.ID)
					return
				}
				data, _ := resp.Data.(map[string]any)
				if data["tag"] != tag {
					t.Errorf("conn %s received %v", tag, resp.Data)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestServerTracksConnectionSet(t *testing.T) {
	var mu sync.Mutex
	var events []bool
	s := startTestServer(t, pingRegistry(), WithConnNotify(func(ev ConnEvent) {
		mu.Lock()
		events = append(events, ev.Connected)
		mu.Unlock()
	}))

	conn := dialTest(t, s)
	roundTrip(t, conn, &wire.Request{Action: "ping", ID: "c1"})
	if got := s.ConnectionCount(); got != 1 {
		t.Errorf("ConnectionCount = %d, want 1", got)
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for s.ConnectionCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("connection not removed after close")
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 2 || !events[0] || events[1] {
		t.Errorf("events = %v, want [connect, disconnect]", events)
	}
}

func TestServerStopIdempotent(t *testing.T) {
	s := NewServer("127.0.0.1:0", pingRegistry())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	addr := s.Addr()
	s.Stop()
	s.Stop()

	if _, err := net.DialTimeout("tcp", addr, 200*time.Millisecond); err == nil {
		t.Error("listener still accepting after Stop")
	}
}
