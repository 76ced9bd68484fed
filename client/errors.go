package client

import "fmt"

// NotConnectedError is returned when a verb is invoked on a Connection
// that has no open stream: Connect has not completed, or the stream has
// since been closed (by Close or by a poisoned exchange).
type NotConnectedError struct{}

func (*NotConnectedError) Error() string { return "client: not connected" }

// ConnectionPoisonedError is returned when an exchange was aborted
// mid-flight. The unread response bytes would misalign any later
// exchange on the same stream, so the connection must be reconnected.
type ConnectionPoisonedError struct{}

func (*ConnectionPoisonedError) Error() string {
	return "client: connection poisoned by an aborted exchange, reconnect required"
}

// ServerError wraps a non-zero result code returned by the server. Code
// 2 (key/record not found) is interpreted at the verb layer and never
// surfaces as a ServerError.
type ServerError struct {
	Code uint8
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("client: server returned result code %d", e.Code)
}

// resultCodeNotFound is the server's code for "no such record" — exist
// and get map it to a plain false/empty result instead of an error.
const resultCodeNotFound uint8 = 2

const resultCodeOK uint8 = 0
