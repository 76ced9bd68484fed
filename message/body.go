package message

import (
	"encoding/binary"
	"fmt"

	"aerowire/codec"
)

// PreludeSize is the fixed size, in bytes, of the operation message's
// header: this protocol pins it at 22 bytes across every known server
// revision.
const PreludeSize = 22

// OperationBody is the operation message: a 22-byte prelude followed by
// the packed fields and then the packed operations, in the order supplied.
type OperationBody struct {
	Info1          Info1Flags
	Info2          Info2Flags
	Info3          Info3Flags
	ResultCode     uint8
	Generation     uint32
	RecordTTL      uint32
	TransactionTTL uint32
	Fields         []codec.Field
	Operations     []codec.Operation
}

// Pack emits the prelude with correct counts, then the field packings in
// order, then the operation packings in order.
func (b OperationBody) Pack() ([]byte, error) {
	buf := make([]byte, PreludeSize)
	buf[0] = PreludeSize
	buf[1] = byte(b.Info1)
	buf[2] = byte(b.Info2)
	buf[3] = byte(b.Info3)
	// buf[4] is the reserved pad byte, left zero.
	buf[5] = b.ResultCode
	binary.BigEndian.PutUint32(buf[6:10], b.Generation)
	binary.BigEndian.PutUint32(buf[10:14], b.RecordTTL)
	binary.BigEndian.PutUint32(buf[14:18], b.TransactionTTL)
	binary.BigEndian.PutUint16(buf[18:20], uint16(len(b.Fields)))
	binary.BigEndian.PutUint16(buf[20:22], uint16(len(b.Operations)))

	for _, f := range b.Fields {
		buf = append(buf, f.Pack()...)
	}
	for _, op := range b.Operations {
		packed, err := op.Pack()
		if err != nil {
			return nil, err
		}
		buf = append(buf, packed...)
	}
	return buf, nil
}

// ParseOperationBody reads the prelude, then iterates fields_count times
// parsing fields, then operations_count times parsing operations. Each
// iteration advances a single running cursor (rest) by the element's
// total on-wire length — never re-slicing from the original buffer,
// which is the off-by-one this protocol's own source has shipped with.
func ParseOperationBody(data []byte) (OperationBody, error) {
	if len(data) < PreludeSize {
		return OperationBody{}, fmt.Errorf("message: truncated operation body prelude: got %d bytes", len(data))
	}
	if data[0] != PreludeSize {
		return OperationBody{}, fmt.Errorf("message: unexpected prelude size byte %d, want %d", data[0], PreludeSize)
	}

	b := OperationBody{
		Info1:          Info1Flags(data[1]),
		Info2:          Info2Flags(data[2]),
		Info3:          Info3Flags(data[3]),
		ResultCode:     data[5],
		Generation:     binary.BigEndian.Uint32(data[6:10]),
		RecordTTL:      binary.BigEndian.Uint32(data[10:14]),
		TransactionTTL: binary.BigEndian.Uint32(data[14:18]),
	}
	fieldsCount := binary.BigEndian.Uint16(data[18:20])
	opsCount := binary.BigEndian.Uint16(data[20:22])

	rest := data[PreludeSize:]

	b.Fields = make([]codec.Field, 0, fieldsCount)
	for i := uint16(0); i < fieldsCount; i++ {
		f, n, err := codec.ParseField(rest)
		if err != nil {
			return OperationBody{}, fmt.Errorf("message: field %d: %w", i, err)
		}
		b.Fields = append(b.Fields, f)
		rest = rest[n:]
	}

	b.Operations = make([]codec.Operation, 0, opsCount)
	for i := uint16(0); i < opsCount; i++ {
		op, n, err := codec.ParseOperation(rest)
		if err != nil {
			return OperationBody{}, fmt.Errorf("message: operation %d: %w", i, err)
		}
		b.Operations = append(b.Operations, op)
		rest = rest[n:]
	}

	return b, nil
}
