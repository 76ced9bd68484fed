package value

import "fmt"

// UnknownValueTypeError is returned when parsing encounters a tag byte
// outside the enumerated set of variants.
type UnknownValueTypeError struct {
	Tag Tag
}

func (e *UnknownValueTypeError) Error() string {
	return fmt.Sprintf("value: unknown type tag %d", byte(e.Tag))
}

// TruncatedError is returned when a scalar payload ends before its
// declared width is satisfied.
type TruncatedError struct {
	Want int
	Got  int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("value: truncated payload: want %d bytes, got %d", e.Want, e.Got)
}

// InvalidUTF8Error is returned when a String payload is not valid UTF-8.
type InvalidUTF8Error struct{}

func (e *InvalidUTF8Error) Error() string {
	return "value: string payload is not valid UTF-8"
}

// DigestNotSupportedError is returned when a digest is requested for a
// variant other than Integer, Double, String, or Blob.
type DigestNotSupportedError struct {
	Tag Tag
}

func (e *DigestNotSupportedError) Error() string {
	return fmt.Sprintf("value: digest not supported for %s", e.Tag)
}

// ContainerHeaderSizeError is returned when a List or Map header declares
// more elements than the remaining bytes could possibly encode.
type ContainerHeaderSizeError struct {
	Declared int
	Remain   int
}

func (e *ContainerHeaderSizeError) Error() string {
	return fmt.Sprintf("value: container header declares %d elements, only %d bytes remain", e.Declared, e.Remain)
}
