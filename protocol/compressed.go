package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Decompressor expands a compressed frame body back to its original
// bytes. Compression is never performed by this client — requests are
// always sent uncompressed — but a server is free to reply with a
// Compressed-kind frame, so decode must be supported.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// ZlibDecompressor decodes Compressed-kind frame bodies: an 8-byte
// big-endian uncompressed-size prefix followed by a zlib stream.
type ZlibDecompressor struct{}

// NewZlibDecompressor returns the default decompressor for
// Compressed-kind frames.
func NewZlibDecompressor() *ZlibDecompressor { return &ZlibDecompressor{} }

func (ZlibDecompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("protocol: truncated compressed frame: got %d bytes", len(data))
	}
	uncompressedSize := binary.BigEndian.Uint64(data[0:8])
	if uncompressedSize > MaxBodySize {
		return nil, &FrameTooLargeError{Length: uncompressedSize}
	}

	zr, err := zlib.NewReader(bytes.NewReader(data[8:]))
	if err != nil {
		return nil, fmt.Errorf("protocol: zlib header: %w", err)
	}
	defer zr.Close()

	buf := bytes.NewBuffer(make([]byte, 0, uncompressedSize))
	// LimitReader caps the copy at one byte past MaxBodySize regardless of
	// what uncompressedSize claimed, so a lying prefix can't turn a small
	// zlib stream into an unbounded decompression bomb.
	n, err := io.Copy(buf, io.LimitReader(zr, int64(MaxBodySize)+1))
	if err != nil {
		return nil, fmt.Errorf("protocol: zlib decompress: %w", err)
	}
	if uint64(n) > MaxBodySize {
		return nil, &FrameTooLargeError{Length: uint64(n)}
	}
	return buf.Bytes(), nil
}

// DecodeBody returns the decoded frame body, transparently inflating it
// when the header names KindCompressed. Any other kind is returned as-is.
func DecodeBody(h *Header, body []byte, d Decompressor) ([]byte, error) {
	if h.Kind != KindCompressed {
		return body, nil
	}
	return d.Decompress(body)
}
