package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lydakis/unity-mcp/internal/bridge"
	"github.com/lydakis/unity-mcp/internal/logx"
	"github.com/lydakis/unity-mcp/internal/wire"
)

// sleep is a seam for retry tests.
var sleep = time.Sleep

// callHostTool performs one logical tool call against the editor host.
// Transport failures are retried up to the configured bound with a
// fixed pause between attempts; errors the host itself reports are
// final — retrying a validation or handler failure cannot change the
// outcome, so those fail fast.
func (g *Gateway) callHostTool(action string, args map[string]any) *mcp.CallToolResult {
	req := wire.NewRequest(action, args)
	start := time.Now()
	logx.Infof("tool call %s (id=%s)", action, req.ID)
	logx.Debugf("tool call %s arguments: %s", action, formatJSON(args))

	attempts := g.cfg.RetryAttempts
	interval := g.cfg.RetryIntervalDuration()

	var resp *wire.Response
	var err error
	made := 0
	for attempt := 1; attempt <= attempts; attempt++ {
		resp, err = g.client.Send(req)
		made = attempt
		if err == nil {
			break
		}
		logx.Errorf("tool call %s attempt %d/%d failed: %v", action, attempt, attempts, err)
		if !bridge.IsTransport(err) {
			break
		}
		if attempt < attempts {
			sleep(interval)
		}
	}

	if err != nil {
		logx.Errorf("tool call %s gave up after %v: %v", action, time.Since(start), err)
		return mcp.NewToolResultError(
			fmt.Sprintf("unity communication failed after %d attempts: %v", made, err))
	}

	if !resp.Success {
		message := resp.Error
		if message == "" {
			message = "unknown error"
		}
		logx.Errorf("tool call %s failed on host: %s", action, message)
		return mcp.NewToolResultError(fmt.Sprintf("unity tool execution failed: %s", message))
	}

	data := resp.Data
	if data == nil {
		data = map[string]any{}
	}
	logx.Infof("tool call %s succeeded in %v", action, time.Since(start))
	return mcp.NewToolResultText(
		fmt.Sprintf("Tool %s executed successfully:\n%s", action, formatJSON(data)))
}

func formatJSON(v any) string {
	if v == nil {
		return "{}"
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
