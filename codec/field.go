// Package codec packs and parses the wire's typed metadata fields,
// named bins, and per-bin operations — the three small framed records
// that every message body and admin body are built out of.
package codec

import (
	"encoding/binary"
	"fmt"
)

// FieldType identifies the kind of metadata a Field carries.
type FieldType uint8

const (
	FieldNamespace         FieldType = 0
	FieldSetName           FieldType = 1
	FieldKey               FieldType = 2
	FieldDigest            FieldType = 4
	FieldTaskID            FieldType = 7
	FieldScanOptions       FieldType = 8
	FieldScanTimeout       FieldType = 9
	FieldScanRPS           FieldType = 10
	FieldIndexRange        FieldType = 22
	FieldIndexFilter       FieldType = 23
	FieldIndexLimit        FieldType = 24
	FieldIndexOrder        FieldType = 25
	FieldIndexType         FieldType = 26
	FieldUDFPackageName    FieldType = 30
	FieldUDFFunction       FieldType = 31
	FieldUDFArglist        FieldType = 32
	FieldUDFOp             FieldType = 33
	FieldQueryBins         FieldType = 40
	FieldBatchIndex        FieldType = 41
	FieldBatchIndexWithSet FieldType = 42
	FieldPredexp           FieldType = 43
)

var fieldTypeNames = map[FieldType]string{
	FieldNamespace:         "namespace",
	FieldSetName:           "set-name",
	FieldKey:               "key",
	FieldDigest:            "digest",
	FieldTaskID:            "task-id",
	FieldScanOptions:       "scan-options",
	FieldScanTimeout:       "scan-timeout",
	FieldScanRPS:           "scan-rps",
	FieldIndexRange:        "index-range",
	FieldIndexFilter:       "index-filter",
	FieldIndexLimit:        "index-limit",
	FieldIndexOrder:        "index-order",
	FieldIndexType:         "index-type",
	FieldUDFPackageName:    "udf-package-name",
	FieldUDFFunction:       "udf-function",
	FieldUDFArglist:        "udf-arglist",
	FieldUDFOp:             "udf-op",
	FieldQueryBins:         "query-bins",
	FieldBatchIndex:        "batch-index",
	FieldBatchIndexWithSet: "batch-index-with-set",
	FieldPredexp:           "predexp",
}

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("field-type(%d)", uint8(t))
}

// Field is a typed metadata item: (field_type, data). This client only
// ever produces Namespace, SetName, and Digest fields, but the wire
// format and the decoder must tolerate the full enumerated set so that
// server responses (and unrelated request kinds this client never
// builds) still parse.
type Field struct {
	Type FieldType
	Data []byte
}

// Pack encodes the field as length(4B BE, inclusive of the type byte) ||
// type(1B) || data.
func (f Field) Pack() []byte {
	buf := make([]byte, 5+len(f.Data))
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(f.Data)+1))
	buf[4] = byte(f.Type)
	copy(buf[5:], f.Data)
	return buf
}

// Size returns the field's total on-wire length (length prefix + type
// byte + payload).
func (f Field) Size() int { return 5 + len(f.Data) }

// ParseField reads a single field from the head of data and returns it
// along with the number of bytes consumed. Callers advance their own
// running cursor by the returned count — re-slicing the original buffer
// by a cumulative count is the classic off-by-one this protocol is
// notorious for.
func ParseField(data []byte) (Field, int, error) {
	if len(data) < 4 {
		return Field{}, 0, fmt.Errorf("codec: truncated field length prefix: got %d bytes", len(data))
	}
	length := binary.BigEndian.Uint32(data[0:4])
	if length < 1 {
		return Field{}, 0, fmt.Errorf("codec: invalid field length %d: must be at least 1", length)
	}
	total := 4 + int(length)
	if len(data) < total {
		return Field{}, 0, fmt.Errorf("codec: truncated field payload: want %d bytes, got %d", total, len(data))
	}
	fieldType := FieldType(data[4])
	if _, ok := fieldTypeNames[fieldType]; !ok {
		return Field{}, 0, &UnknownFieldTypeError{Type: fieldType}
	}
	payload := make([]byte, length-1)
	copy(payload, data[5:total])
	return Field{Type: fieldType, Data: payload}, total, nil
}
