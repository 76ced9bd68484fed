package codec

import "fmt"

// UnknownFieldTypeError is returned when a field's type byte falls
// outside the enumerated FieldType set.
type UnknownFieldTypeError struct {
	Type FieldType
}

func (e *UnknownFieldTypeError) Error() string {
	return fmt.Sprintf("codec: unknown field type %d", uint8(e.Type))
}

// UnknownOperationTypeError is returned when an operation's type byte
// falls outside the enumerated OperationType set.
type UnknownOperationTypeError struct {
	Type OperationType
}

func (e *UnknownOperationTypeError) Error() string {
	return fmt.Sprintf("codec: unknown operation type %d", uint8(e.Type))
}
