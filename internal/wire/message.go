package wire

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Request is the envelope carried inside a frame from the gateway to the
// bridge server. Action names a registered tool; ID correlates the
// response; Timestamp is advisory (unix milliseconds).
type Request struct {
	Action    string         `json:"action"`
	Params    map[string]any `json:"params"`
	ID        string         `json:"id"`
	Timestamp int64          `json:"timestamp"`
}

// Response is the envelope carried back. Exactly one of Data and Error is
// populated depending on Success; ID echoes the originating request.
type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	ID        string `json:"id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// NewRequest builds a request envelope with a fresh correlation ID and
// the current timestamp. A nil params map is normalized to empty so the
// wire form always carries an object.
func NewRequest(action string, params map[string]any) *Request {
	if params == nil {
		params = map[string]any{}
	}
	return &Request{
		Action:    action,
		Params:    params,
		ID:        uuid.NewString(),
		Timestamp: time.Now().UnixMilli(),
	}
}

// SuccessResponse builds a success envelope correlated to id.
func SuccessResponse(id string, data any) *Response {
	return &Response{
		Success:   true,
		Data:      data,
		ID:        id,
		Timestamp: time.Now().UnixMilli(),
	}
}

// ErrorResponse builds a failure envelope correlated to id. The id may be
// empty when the request could not be parsed far enough to recover one.
func ErrorResponse(id, message string) *Response {
	return &Response{
		Success:   false,
		Error:     message,
		ID:        id,
		Timestamp: time.Now().UnixMilli(),
	}
}

// EncodeRequest marshals req and wraps it in a frame.
func EncodeRequest(req *Request) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return EncodeFrame(payload)
}

// Params wraps a decoded parameter map with typed accessors so tool
// handlers never type-assert raw JSON values themselves. JSON numbers
// arrive as float64; the integer accessors truncate.
type Params map[string]any

// String returns the named string parameter, or def when absent or not a
// string.
func (p Params) String(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Int returns the named numeric parameter truncated to int, or def.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// Float returns the named numeric parameter, or def.
func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return def
}

// Bool returns the named boolean parameter, or def.
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

// Map returns the named object parameter, or nil.
func (p Params) Map(key string) map[string]any {
	if v, ok := p[key].(map[string]any); ok {
		return v
	}
	return nil
}

// Has reports whether the parameter is present at all.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}
