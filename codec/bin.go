package codec

import (
	"fmt"

	"aerowire/value"
)

// MaxBinNameLength is the wire's limit on a bin name, in bytes of its
// UTF-8 encoding; Pack rejects longer names.
const MaxBinNameLength = 14

// Bin is a named typed value: (name, version, value). Version is 0 on
// write; the server may return non-zero in responses.
type Bin struct {
	Name    string
	Version uint8
	Value   value.Value
}

// Pack encodes the bin as value_type(1B) || version(1B) || name_len(1B) ||
// name || value_bytes. There is no endianness on the three leading bytes.
func (b Bin) Pack() ([]byte, error) {
	if len(b.Name) > MaxBinNameLength {
		return nil, fmt.Errorf("codec: bin name %q exceeds %d bytes", b.Name, MaxBinNameLength)
	}
	payload, err := b.Value.Pack()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 3+len(b.Name)+len(payload))
	out[0] = byte(b.Value.Tag())
	out[1] = b.Version
	out[2] = byte(len(b.Name))
	copy(out[3:], b.Name)
	copy(out[3+len(b.Name):], payload)
	return out, nil
}

// Size returns the bin's total on-wire length.
func (b Bin) Size() (int, error) {
	packed, err := b.Pack()
	if err != nil {
		return 0, err
	}
	return len(packed), nil
}

// ParseBin decodes a complete Bin from data. Unlike ParseField and
// ParseOperation, a Bin has no length prefix of its own — the caller
// (Operation or the put/get message layer) always hands it exactly the
// bytes it owns.
func ParseBin(data []byte) (Bin, error) {
	if len(data) < 3 {
		return Bin{}, fmt.Errorf("codec: truncated bin header: got %d bytes", len(data))
	}
	tag := value.Tag(data[0])
	version := data[1]
	nameLen := int(data[2])
	if len(data) < 3+nameLen {
		return Bin{}, fmt.Errorf("codec: truncated bin name: want %d bytes, got %d", nameLen, len(data)-3)
	}
	name := string(data[3 : 3+nameLen])
	v, err := value.Parse(tag, data[3+nameLen:])
	if err != nil {
		return Bin{}, err
	}
	return Bin{Name: name, Version: version, Value: v}, nil
}
