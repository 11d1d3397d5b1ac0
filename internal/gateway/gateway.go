// Package gateway adapts the MCP streaming tool-invocation protocol to
// the editor bridge: every MCP tool call becomes one framed round trip
// to the host, with bounded retries for transport failures. A small
// management HTTP API (health, tool list) runs alongside the MCP
// endpoint.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lydakis/unity-mcp/internal/bridge"
	"github.com/lydakis/unity-mcp/internal/catalog"
	"github.com/lydakis/unity-mcp/internal/config"
	"github.com/lydakis/unity-mcp/internal/logx"
	"github.com/lydakis/unity-mcp/internal/wire"
)

// Version is reported by the health endpoint and the MCP handshake.
const Version = "1.0.0"

// hostCaller is the slice of the bridge client the gateway depends on.
type hostCaller interface {
	Send(req *wire.Request) (*wire.Response, error)
	IsConnected() bool
	Close() error
}

// Gateway wires the MCP server, the management API and the bridge
// client together.
type Gateway struct {
	cfg    *config.Config
	client hostCaller
}

// New creates a gateway around a fresh bridge client for cfg.HostAddr.
func New(cfg *config.Config) *Gateway {
	return &Gateway{
		cfg: cfg,
		client: bridge.NewClient(cfg.HostAddr,
			bridge.WithTimeout(cfg.RequestTimeoutDuration())),
	}
}

// Run serves the MCP SSE endpoint on the configured port and the
// management API on port+1 until ctx is cancelled.
func (g *Gateway) Run(ctx context.Context) error {
	defer g.client.Close()

	mcpServer := server.NewMCPServer("unity-mcp-server", Version)
	for _, spec := range catalog.Tools() {
		spec := spec
		mcpServer.AddTool(spec.MCPTool(), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return g.callHostTool(spec.Name, req.GetArguments()), nil
		})
	}

	baseURL := fmt.Sprintf("http://localhost:%d", g.cfg.GatewayPort)
	sse := server.NewSSEServer(mcpServer, server.WithBaseURL(baseURL))

	mgmt := &http.Server{
		Addr:    fmt.Sprintf(":%d", g.cfg.GatewayPort+1),
		Handler: g.managementMux(),
	}

	logx.Infof("unity-mcp gateway starting")
	logx.Infof("editor host target: %s", g.cfg.HostAddr)
	logx.Infof("MCP SSE endpoint on port %d, management API on port %d",
		g.cfg.GatewayPort, g.cfg.GatewayPort+1)

	errCh := make(chan error, 2)
	go func() {
		if err := mgmt.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("management server: %w", err)
		}
	}()
	go func() {
		if err := sse.Start(fmt.Sprintf(":%d", g.cfg.GatewayPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("SSE server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logx.Infof("shutting down gateway")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mgmt.Shutdown(shutdownCtx) //nolint: errcheck
		sse.Shutdown(shutdownCtx)  //nolint: errcheck
		return nil
	case err := <-errCh:
		return err
	}
}
