package value

import (
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // RIPEMD-160 is the protocol's fixed digest algorithm, not a choice.
)

// DigestSize is the fixed length of a record digest in bytes.
const DigestSize = ripemd160.Size // 20

// Digest computes a record's content address: RIPEMD160(setName || tag || packedValue).
// Only the scalar variants (Integer, Double, String, Blob) are digestible;
// any other variant returns DigestNotSupportedError. The namespace never
// enters the digest — only the set name does.
func Digest(setName string, v Value) ([]byte, error) {
	switch v.(type) {
	case Integer, Double, String, Blob:
	default:
		return nil, &DigestNotSupportedError{Tag: v.Tag()}
	}

	payload, err := v.Pack()
	if err != nil {
		return nil, err
	}

	h := ripemd160.New()
	h.Write([]byte(setName))
	h.Write([]byte{byte(v.Tag())})
	h.Write(payload)
	return h.Sum(nil), nil
}
