package net

import (
	"bytes"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{0x14, 0x01, 0x02, 0x03}

	if err := WriteFrame(&buf, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Header counts itself: 4-byte payload frames as length 6.
	if got := buf.Bytes()[0]; got != 6 {
		t.Fatalf("length header = %d, want 6", got)
	}

	out, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("payload = %v, want %v", out, payload)
	}
}

func TestReadFrameRejectsBadLength(t *testing.T) {
	// Length 2 means an empty payload; length 1 underflows the header.
	for _, header := range [][]byte{{0x02, 0x00}, {0x01, 0x00}, {0x00, 0x00}} {
		if _, err := ReadFrame(bytes.NewReader(header)); err == nil {
			t.Fatalf("header %v accepted", header)
		}
	}
}

func TestReadFrameShortPayload(t *testing.T) {
	// Header promises 8 bytes of payload but the stream ends early.
	data := []byte{0x0A, 0x00, 0x01, 0x02}
	if _, err := ReadFrame(bytes.NewReader(data)); err == nil {
		t.Fatal("truncated frame accepted")
	}
}

func TestReadFrameConsecutive(t *testing.T) {
	var buf bytes.Buffer
	WriteFrame(&buf, []byte{0x01})
	WriteFrame(&buf, []byte{0x02, 0x03})

	first, err := ReadFrame(&buf)
	if err != nil || len(first) != 1 || first[0] != 0x01 {
		t.Fatalf("first = %v, %v", first, err)
	}
	second, err := ReadFrame(&buf)
	if err != nil || len(second) != 2 {
		t.Fatalf("second = %v, %v", second, err)
	}
}
