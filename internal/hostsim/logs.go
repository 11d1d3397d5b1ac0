package hostsim

import "time"

// LogEntry is one line of simulated console output.
type LogEntry struct {
	Message    string `json:"message"`
	StackTrace string `json:"stackTrace,omitempty"`
	Type       string `json:"type"`
	Timestamp  string `json:"timestamp"`
}

const logCapacity = 1000

// LogBuffer keeps the most recent console entries in a bounded ring.
type LogBuffer struct {
	entries []LogEntry
	start   int
	count   int
}

// NewLogBuffer creates an empty buffer.
func NewLogBuffer() *LogBuffer {
	return &LogBuffer{entries: make([]LogEntry, logCapacity)}
}

// Append records an entry, evicting the oldest once full.
func (b *LogBuffer) Append(logType, message, stack string) {
	e := LogEntry{
		Message:    message,
		StackTrace: stack,
		Type:       logType,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	idx := (b.start + b.count) % logCapacity
	b.entries[idx] = e
	if b.count < logCapacity {
		b.count++
	} else {
		b.start = (b.start + 1) % logCapacity
	}
}

// Tail returns up to max entries, newest last, restricted to logType
// when it is not "All". Stack traces are stripped unless requested.
func (b *LogBuffer) Tail(max int, logType string, includeStack bool) []LogEntry {
	var out []LogEntry
	for i := 0; i < b.count; i++ {
		e := b.entries[(b.start+i)%logCapacity]
		if logType != "" && logType != "All" && e.Type != logType {
			continue
		}
		if !includeStack {
			e.StackTrace = ""
		}
		out = append(out, e)
	}
	if max > 0 && len(out) > max {
		out = out[len(out)-max:]
	}
	return out
}

// Len reports how many entries are buffered.
func (b *LogBuffer) Len() int { return b.count }

// Clear drops all buffered entries.
func (b *LogBuffer) Clear() {
	b.start = 0
	b.count = 0
}
