// Package host implements the Unity-side half of the bridge: a TCP
// server speaking the framed wire protocol, a tool registry with
// validate-then-execute dispatch, and the main-loop task queue that
// serializes every mutation of the editor object model.
package host

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lydakis/unity-mcp/internal/logx"
	"github.com/lydakis/unity-mcp/internal/wire"
)

// DefaultExecTimeout bounds a single tool execution. A handler that
// outlives it answers with an error envelope instead of stalling its
// connection forever.
const DefaultExecTimeout = 30 * time.Second

// ValidateFunc checks tool parameters before execution. A non-nil error
// rejects the request without invoking the handler.
type ValidateFunc func(params wire.Params) error

// ExecuteFunc runs a tool and returns its result payload. Handlers for
// tools that mutate editor state are run on the main loop, never on the
// connection goroutine.
type ExecuteFunc func(ctx context.Context, params wire.Params, conn *Conn) (any, error)

// Tool is one registry entry.
type Tool struct {
	Name        string
	Description string
	// MainThread routes execution through the registry's main loop.
	MainThread bool
	Validate   ValidateFunc
	Execute    ExecuteFunc
}

// Registry owns the action-name to handler map and executes the
// validate-then-run protocol for every inbound envelope. Tools are
// registered before the server starts; dispatch treats the map as
// read-mostly thereafter.
type Registry struct {
	mu          sync.RWMutex
	tools       map[string]Tool
	loop        *MainLoop
	execTimeout time.Duration
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMainLoop routes MainThread tools through loop.
func WithMainLoop(loop *MainLoop) RegistryOption {
	return func(r *Registry) { r.loop = loop }
}

// WithExecTimeout overrides the per-call execution deadline.
func WithExecTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.execTimeout = d }
}

// NewRegistry creates an empty tool registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		tools:       make(map[string]Tool),
		execTimeout: DefaultExecTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register inserts or overwrites a tool entry. Overwriting an existing
// name logs a warning but never fails.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[tool.Name]; exists {
		logx.Infof("registry: overwriting existing tool %q", tool.Name)
	}
	r.tools[tool.Name] = tool
}

// Unregister removes a tool entry. Removing an unknown name is a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, name)
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Snapshot returns a copy of the registered tools, for introspection.
func (r *Registry) Snapshot() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	return out
}

// Dispatch resolves and runs the tool named by req. The returned
// envelope always carries req's correlation ID; handler panics and
// deadline expiries are converted to error envelopes, never propagated
// to the caller's loop.
func (r *Registry) Dispatch(ctx context.Context, req *wire.Request, conn *Conn) *wire.Response {
	if req.Action == "" {
		return wire.ErrorResponse(req.ID, "message missing action field")
	}

	r.mu.RLock()
	tool, ok := r.tools[req.Action]
	r.mu.RUnlock()
	if !ok {
		return wire.ErrorResponse(req.ID, fmt.Sprintf("tool not found: %s", req.Action))
	}

	params := wire.Params(req.Params)
	if tool.Validate != nil {
		if err := tool.Validate(params); err != nil {
			return wire.ErrorResponse(req.ID, err.Error())
		}
	}

	data, err := r.execute(ctx, tool, params, conn)
	if err != nil {
		return wire.ErrorResponse(req.ID, err.Error())
	}
	return wire.SuccessResponse(req.ID, data)
}

type execResult struct {
	data any
	err  error
}

func (r *Registry) execute(ctx context.Context, tool Tool, params wire.Params, conn *Conn) (any, error) {
	execCtx, cancel := context.WithTimeout(ctx, r.execTimeout)
	defer cancel()

	run := func() execResult {
		var res execResult
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					logx.Errorf("tool %s panicked: %v", tool.Name, rec)
					res = execResult{err: fmt.Errorf("tool %s panicked: %v", tool.Name, rec)}
				}
			}()
			res.data, res.err = tool.Execute(execCtx, params, conn)
		}()
		return res
	}

	results := make(chan execResult, 1)
	if tool.MainThread && r.loop != nil {
		if lerr := r.loop.Do(execCtx, func() { results <- run() }); lerr != nil {
			return nil, fmt.Errorf("tool %s: %w", tool.Name, lerr)
		}
	} else {
		go func() { results <- run() }()
	}

	select {
	case res := <-results:
		return res.data, res.err
	case <-execCtx.Done():
		// The handler is abandoned; the buffered channel absorbs its
		// eventual result.
		return nil, fmt.Errorf("tool %s: execution deadline exceeded", tool.Name)
	}
}
