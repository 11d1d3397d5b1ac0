package gateway

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/lydakis/unity-mcp/internal/catalog"
	"github.com/lydakis/unity-mcp/internal/logx"
)

// managementMux serves the two read-only endpoints next to the MCP
// port: a health probe and the static tool list.
func (g *Gateway) managementMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", withLogging(g.handleHealth, "/health"))
	mux.HandleFunc("GET /tools", withLogging(handleListTools, "/tools"))
	return mux
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	host, port, _ := net.SplitHostPort(g.cfg.HostAddr)

	status := map[string]any{
		"status":        "healthy",
		"timestamp":     time.Now().Unix(),
		"hostAddr":      g.cfg.HostAddr,
		"unityHost":     host,
		"unityPort":     port,
		"hostConnected": g.client.IsConnected(),
		"toolCount":     len(catalog.Tools()),
		"debugMode":     logx.DebugEnabled(),
		"version":       Version,
	}

	writeJSON(w, status)
}

func handleListTools(w http.ResponseWriter, r *http.Request) {
	specs := catalog.Tools()
	tools := make([]map[string]any, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, map[string]any{
			"name":        spec.Name,
			"description": spec.Description,
			"category":    spec.Category,
		})
	}
	writeJSON(w, tools)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Errorf("encoding management response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// withLogging logs one line per management request with status and
// duration.
func withLogging(handler http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		handler(wrapped, r)
		logx.Infof("HTTP %s %s - status %d in %v", r.Method, endpoint, wrapped.status, time.Since(start))
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
