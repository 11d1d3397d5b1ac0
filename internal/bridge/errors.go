package bridge

import (
	"errors"
	"fmt"
)

// TransportError marks a connection-level failure: dial, deadline, reset
// or an unreadable frame. The gateway retries these; logical tool errors
// reported by the host never wear this type, so they fail fast.
type TransportError struct {
	Op  string // "connect", "write" or "read"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is connection-level and therefore
// worth retrying.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
