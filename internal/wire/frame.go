// Package wire implements the private protocol spoken between the MCP
// gateway and the Unity-side bridge server: length-prefixed frames
// carrying JSON request/response envelopes.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxFrameSize caps the payload of a single frame. Unity scene dumps fit
// comfortably; anything larger indicates a corrupt or hostile stream.
const MaxFrameSize = 1024 * 1024

// headerSize is the fixed length prefix: payload byte count as a
// big-endian uint32, not counting the prefix itself.
const headerSize = 4

// FramingError reports an illegal or truncated frame. It is fatal to the
// connection that produced it; logical tool errors never surface as one.
type FramingError struct {
	Length uint32
	Reason string
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("framing: %s (length=%d)", e.Reason, e.Length)
}

// EncodeFrame prepends the 4-byte big-endian length header to payload.
// Payloads larger than MaxFrameSize or empty payloads are rejected so a
// bad frame is never put on the wire in the first place.
func EncodeFrame(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, &FramingError{Length: 0, Reason: "empty payload"}
	}
	if len(payload) > MaxFrameSize {
		return nil, &FramingError{Length: uint32(len(payload)), Reason: "payload exceeds maximum frame size"}
	}
	frame := make([]byte, headerSize+len(payload))
	binary.BigEndian.PutUint32(frame[:headerSize], uint32(len(payload)))
	copy(frame[headerSize:], payload)
	return frame, nil
}

// WriteFrame encodes payload and writes the complete frame to w.
func WriteFrame(w io.Writer, payload []byte) error {
	frame, err := EncodeFrame(payload)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// ReadFrame reads one framed payload from r. A zero or oversized length
// prefix fails before any payload byte is read; a stream that closes
// mid-payload is reported as a truncated frame.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("reading frame header: %w", err)
	}

	length := binary.BigEndian.Uint32(header[:])
	if length == 0 {
		return nil, &FramingError{Length: 0, Reason: "zero-length frame"}
	}
	if length > MaxFrameSize {
		return nil, &FramingError{Length: length, Reason: "frame exceeds maximum size"}
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, &FramingError{Length: length, Reason: fmt.Sprintf("truncated payload: %v", err)}
	}
	return payload, nil
}
