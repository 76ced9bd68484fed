package value

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Integer is the wire's 8-byte big-endian integer slot. The wire format
// is unsigned; callers choose a signed or unsigned view via Int64/Uint64 —
// the type itself stays agnostic, per the protocol's own ambiguity about
// signedness for values above 2^63.
type Integer uint64

// NewInteger builds an Integer from a signed value, reinterpreting its
// bits rather than clamping or erroring on negative input.
func NewInteger(v int64) Integer { return Integer(uint64(v)) }

// Int64 returns the signed view of the stored 64 bits.
func (i Integer) Int64() int64 { return int64(i) }

// Uint64 returns the unsigned view of the stored 64 bits.
func (i Integer) Uint64() uint64 { return uint64(i) }

func (i Integer) Tag() Tag { return TagInteger }

func (i Integer) Pack() ([]byte, error) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(i))
	return buf, nil
}

func (i Integer) Len() int { return 8 }

func parseInteger(data []byte) (Value, error) {
	if len(data) < 8 {
		return nil, &TruncatedError{Want: 8, Got: len(data)}
	}
	return Integer(binary.BigEndian.Uint64(data[:8])), nil
}

// Double is the wire's 8-byte IEEE-754 binary64 slot.
type Double float64

func (d Double) Tag() Tag { return TagDouble }

func (d Double) Pack() ([]byte, error) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(float64(d)))
	return buf, nil
}

func (d Double) Len() int { return 8 }

func parseDouble(data []byte) (Value, error) {
	if len(data) < 8 {
		return nil, &TruncatedError{Want: 8, Got: len(data)}
	}
	return Double(math.Float64frombits(binary.BigEndian.Uint64(data[:8]))), nil
}

// String is a UTF-8 string whose length is prefixed externally (by the
// enclosing field, bin, or operation — never by the value itself).
type String string

func (s String) Tag() Tag { return TagString }

func (s String) Pack() ([]byte, error) { return []byte(s), nil }

func (s String) Len() int { return len(s) }

func parseString(data []byte) (Value, error) {
	if !utf8.Valid(data) {
		return nil, &InvalidUTF8Error{}
	}
	return String(data), nil
}

// Blob is an opaque byte payload.
type Blob []byte

func (b Blob) Tag() Tag { return TagBlob }

func (b Blob) Pack() ([]byte, error) {
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (b Blob) Len() int { return len(b) }

func parseBlob(data []byte) (Value, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return Blob(out), nil
}

// Undef is the empty value: a bare type tag with no payload. A Bin whose
// value is Undef packs as tag=0 with no payload — legal on read requests,
// where the client is only naming the bin it wants back.
type Undef struct{}

func (u Undef) Tag() Tag { return TagUndef }

func (u Undef) Pack() ([]byte, error) { return nil, nil }

func (u Undef) Len() int { return 0 }

func parseUndef(data []byte) (Value, error) {
	return Undef{}, nil
}
