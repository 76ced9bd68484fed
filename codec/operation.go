package codec

import (
	"encoding/binary"
	"fmt"
)

// OperationType identifies the per-bin action an Operation performs.
type OperationType uint8

const (
	OpRead       OperationType = 1
	OpWrite      OperationType = 2
	OpCdtRead    OperationType = 3
	OpCdtModify  OperationType = 4
	OpIncr       OperationType = 5
	OpMapRead    OperationType = 6
	OpMapModify  OperationType = 7
	OpAppend     OperationType = 9
	OpPrepend    OperationType = 10
	OpTouch      OperationType = 11
	OpBitRead    OperationType = 12
	OpBitModify  OperationType = 13
	OpDelete     OperationType = 14
)

var operationTypeNames = map[OperationType]string{
	OpRead:      "read",
	OpWrite:     "write",
	OpCdtRead:   "cdt-read",
	OpCdtModify: "cdt-modify",
	OpIncr:      "incr",
	OpMapRead:   "map-read",
	OpMapModify: "map-modify",
	OpAppend:    "append",
	OpPrepend:   "prepend",
	OpTouch:     "touch",
	OpBitRead:   "bit-read",
	OpBitModify: "bit-modify",
	OpDelete:    "delete",
}

func (t OperationType) String() string {
	if name, ok := operationTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("operation-type(%d)", uint8(t))
}

// Operation is a per-bin action: (operation_type, bin).
type Operation struct {
	Type OperationType
	Bin  Bin
}

// Pack encodes the operation as length(4B BE, inclusive of the op-type
// byte and the entire packed bin) || op_type(1B) || bin.
func (o Operation) Pack() ([]byte, error) {
	binBytes, err := o.Bin.Pack()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 5+len(binBytes))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(binBytes)+1))
	out[4] = byte(o.Type)
	copy(out[5:], binBytes)
	return out, nil
}

// ParseOperation reads a single operation from the head of data and
// returns it along with the number of bytes consumed.
func ParseOperation(data []byte) (Operation, int, error) {
	if len(data) < 4 {
		return Operation{}, 0, fmt.Errorf("codec: truncated operation length prefix: got %d bytes", len(data))
	}
	length := binary.BigEndian.Uint32(data[0:4])
	if length < 1 {
		return Operation{}, 0, fmt.Errorf("codec: invalid operation length %d: must be at least 1", length)
	}
	total := 4 + int(length)
	if len(data) < total {
		return Operation{}, 0, fmt.Errorf("codec: truncated operation payload: want %d bytes, got %d", total, len(data))
	}
	opType := OperationType(data[4])
	if _, ok := operationTypeNames[opType]; !ok {
		return Operation{}, 0, &UnknownOperationTypeError{Type: opType}
	}
	bin, err := ParseBin(data[5:total])
	if err != nil {
		return Operation{}, 0, err
	}
	return Operation{Type: opType, Bin: bin}, total, nil
}
