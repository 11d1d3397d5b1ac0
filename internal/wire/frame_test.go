package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte("x"),
		[]byte(`{"action":"ping","params":{},"id":"t1"}`),
		bytes.Repeat([]byte("a"), MaxFrameSize),
	}
	for _, payload := range payloads {
		frame, err := EncodeFrame(payload)
		if err != nil {
			t.Fatalf("EncodeFrame(%d bytes) error = %v", len(payload), err)
		}
		got, err := ReadFrame(bytes.NewReader(frame))
		if err != nil {
			t.Fatalf("ReadFrame error = %v", err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(payload))
		}
	}
}

func TestEncodeFrameRejectsEmptyPayload(t *testing.T) {
	if _, err := EncodeFrame(nil); err == nil {
		t.Fatal("EncodeFrame(nil) expected error")
	}
}

func TestEncodeFrameRejectsOversizedPayload(t *testing.T) {
	_, err := EncodeFrame(make([]byte, MaxFrameSize+1))
	var fe *FramingError
	if !errors.As(err, &fe) {
		t.Fatalf("EncodeFrame oversized error = %v, want FramingError", err)
	}
}

// countingReader tracks how many bytes were consumed so tests can assert
// the decoder stops before reading an oversized payload.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

func TestReadFrameOversizedLengthFailsBeforePayload(t *testing.T) {
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], MaxFrameSize+1)
	cr := &countingReader{r: bytes.NewReader(append(header[:], make([]byte, 64)...))}

	_, err := ReadFrame(cr)
	var fe *FramingError
	if !errors.As(err, &fe) {
		t.Fatalf("ReadFrame error = %v, want FramingError", err)
	}
	if fe.Length != MaxFrameSize+1 {
		t.Errorf("FramingError.Length = %d, want %d", fe.Length, MaxFrameSize+1)
	}
	if cr.n != 4 {
		t.Errorf("decoder consumed %d bytes, want only the 4-byte header", cr.n)
	}
}

func TestReadFrameZeroLengthFails(t *testing.T) {
	_, err := ReadFrame(bytes.NewReader([]byte{0, 0, 0, 0}))
	var fe *FramingError
	if !errors.As(err, &fe) {
		t.Fatalf("ReadFrame error = %v, want FramingError", err)
	}
	if fe.Length != 0 {
		t.Errorf("FramingError.Length = %d, want 0", fe.Length)
	}
}

func TestReadFrameTruncatedPayload(t *testing.T) {
	frame, err := EncodeFrame([]byte("hello world"))
	if err != nil {
		t.Fatalf("EncodeFrame error = %v", err)
	}
	_, err = ReadFrame(bytes.NewReader(frame[:len(frame)-3]))
	var fe *FramingError
	if !errors.As(err, &fe) {
		t.Fatalf("ReadFrame truncated error = %v, want FramingError", err)
	}
	if !strings.Contains(fe.Reason, "truncated") {
		t.Errorf("FramingError.Reason = %q, want truncated payload", fe.Reason)
	}
}

func TestWriteFrameThenReadFrame(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, []byte("payload")); err != nil {
		t.Fatalf("WriteFrame error = %v", err)
	}
	got, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame error = %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("ReadFrame = %q, want %q", got, "payload")
	}
}
