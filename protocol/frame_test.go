package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	body := []byte("hello world")

	var buf bytes.Buffer
	if err := Encode(&buf, KindMessage, body); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	header, decodedBody, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if header.Kind != KindMessage {
		t.Errorf("Kind mismatch: got %d, want %d", header.Kind, KindMessage)
	}
	if header.Length != uint64(len(body)) {
		t.Errorf("Length mismatch: got %d, want %d", header.Length, len(body))
	}
	if !bytes.Equal(decodedBody, body) {
		t.Errorf("body mismatch: got %q, want %q", decodedBody, body)
	}
}

func TestDecodeEmptyBody(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, KindAdmin, nil); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	header, body, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if header.Length != 0 {
		t.Errorf("Length mismatch: got %d, want 0", header.Length)
	}
	if len(body) != 0 {
		t.Errorf("expected empty body, got length %d", len(body))
	}
}

func TestDecodeRejectsUnsupportedVersion(t *testing.T) {
	frame := []byte{
		0xFF, // wrong version
		byte(KindMessage),
		0, 0, 0, 0, 0, 0, // length = 0
	}
	var buf bytes.Buffer
	buf.Write(frame)

	_, _, err := Decode(&buf)
	if err == nil {
		t.Fatal("expected error for unsupported version, got nil")
	}
	var verr *UnsupportedProtocolVersionError
	if !errors.As(err, &verr) {
		t.Errorf("expected *UnsupportedProtocolVersionError, got %T: %v", err, err)
	}
}

func TestEncodeDecodeLargeBody(t *testing.T) {
	large := make([]byte, 1<<20)
	for i := range large {
		large[i] = byte(i % 256)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, KindMessage, large); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	_, decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, large) {
		t.Errorf("large body mismatch")
	}
}

func TestFrameHeaderLengthIs48Bit(t *testing.T) {
	// A length that doesn't fit in 32 bits would silently wrap with a
	// narrower encoding; this just exercises a large-but-legal 48-bit
	// value through put48/get48 without an enormous allocation.
	header, body, err := roundTripHeaderOnly(KindInfo, 1<<40)
	if err != nil {
		t.Fatalf("roundTripHeaderOnly failed: %v", err)
	}
	if header.Length != 1<<40 {
		t.Errorf("Length mismatch: got %d, want %d", header.Length, uint64(1)<<40)
	}
	if body != nil {
		t.Errorf("expected nil body from header-only helper, got %d bytes", len(body))
	}
}

func TestDecodeRejectsOversizedLength(t *testing.T) {
	headerBuf := make([]byte, HeaderSize)
	headerBuf[0] = Version
	headerBuf[1] = byte(KindMessage)
	put48(headerBuf[2:8], MaxBodySize+1)

	_, _, err := Decode(bytes.NewReader(headerBuf))
	if err == nil {
		t.Fatal("expected error for oversized declared length, got nil")
	}
	var terr *FrameTooLargeError
	if !errors.As(err, &terr) {
		t.Errorf("expected *FrameTooLargeError, got %T: %v", err, err)
	}
}

// roundTripHeaderOnly writes just a header claiming the given length,
// without the matching body, and reads it back — used only to check
// the 48-bit length field's encode/decode symmetry cheaply.
func roundTripHeaderOnly(kind Kind, length uint64) (*Header, []byte, error) {
	buf := make([]byte, HeaderSize)
	buf[0] = Version
	buf[1] = byte(kind)
	put48(buf[2:8], length)
	return &Header{Kind: kind, Length: get48(buf[2:8])}, nil, nil
}
