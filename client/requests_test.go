package client

import (
	"context"
	"net"
	"testing"
	"time"

	"aerowire/codec"
	"aerowire/message"
	"aerowire/protocol"
	"aerowire/value"
)

// newTestConnection wires a Connection directly to one end of an
// in-memory pipe, bypassing Connect/net.Dial so tests can drive a fake
// server on the other end without opening a real socket.
func newTestConnection(t *testing.T) (*Connection, net.Conn) {
	t.Helper()
	clientSide, serverSide := net.Pipe()
	c := NewConnection(NewConfig("unused", 0))
	c.conn = clientSide
	return c, serverSide
}

// recvOperationRequest reads one framed request off serverSide and
// parses it as an operation body.
func recvOperationRequest(t *testing.T, serverSide net.Conn) message.OperationBody {
	t.Helper()
	_, body, err := protocol.Decode(serverSide)
	if err != nil {
		t.Fatalf("server decode failed: %v", err)
	}
	req, err := message.ParseOperationBody(body)
	if err != nil {
		t.Fatalf("server parse operation body failed: %v", err)
	}
	return req
}

// sendOperationResponse packs body and writes it as a Message-kind frame
// to serverSide.
func sendOperationResponse(t *testing.T, serverSide net.Conn, body message.OperationBody) {
	t.Helper()
	packed, err := body.Pack()
	if err != nil {
		t.Fatalf("server pack response failed: %v", err)
	}
	if err := protocol.Encode(serverSide, protocol.KindMessage, packed); err != nil {
		t.Fatalf("server encode response failed: %v", err)
	}
}

// TestPutAndGetStringBin puts a string bin, then reads it back.
func TestPutAndGetStringBin(t *testing.T) {
	c, serverSide := newTestConnection(t)
	defer serverSide.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		req := recvOperationRequest(t, serverSide)
		if req.Info2&message.Info2Write == 0 {
			t.Errorf("expected Info2Write on put, got %v", req.Info2)
		}
		sendOperationResponse(t, serverSide, message.OperationBody{ResultCode: resultCodeOK, Info3: message.Info3Last})

		req = recvOperationRequest(t, serverSide)
		if req.Info1&message.Info1Read == 0 || req.Info1&message.Info1GetAll == 0 {
			t.Errorf("expected Read|GetAll on get, got %v", req.Info1)
		}
		sendOperationResponse(t, serverSide, message.OperationBody{
			ResultCode: resultCodeOK,
			Info3:      message.Info3Last,
			Operations: []codec.Operation{
				{Type: codec.OpRead, Bin: codec.Bin{Name: "b", Value: value.String("v")}},
			},
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.Put(ctx, "test", "s1", value.String("k1"), map[string]value.Value{"b": value.String("v")}, 0); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := c.Get(ctx, "test", "s1", value.String("k1"))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got["b"] != value.String("v") {
		t.Errorf("got %v, want {b: v}", got)
	}
	<-done
}

// TestDeleteThenGetReturnsEmpty deletes a record, then confirms a
// follow-up Get returns no bins.
func TestDeleteThenGetReturnsEmpty(t *testing.T) {
	c, serverSide := newTestConnection(t)
	defer serverSide.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		recvOperationRequest(t, serverSide)
		sendOperationResponse(t, serverSide, message.OperationBody{ResultCode: resultCodeOK, Info3: message.Info3Last})

		recvOperationRequest(t, serverSide)
		sendOperationResponse(t, serverSide, message.OperationBody{ResultCode: resultCodeNotFound, Info3: message.Info3Last})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.Delete(ctx, "test", "s1", value.String("k1")); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err := c.Get(ctx, "test", "s1", value.String("k1"))
	if err != nil {
		t.Fatalf("Get after delete returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty map after delete, got %v", got)
	}
	<-done
}

// TestExistsMapsNotFoundToFalse checks that a not-found result code
// maps to a plain false rather than an error.
func TestExistsMapsNotFoundToFalse(t *testing.T) {
	c, serverSide := newTestConnection(t)
	defer serverSide.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		recvOperationRequest(t, serverSide)
		sendOperationResponse(t, serverSide, message.OperationBody{ResultCode: resultCodeNotFound, Info3: message.Info3Last})

		recvOperationRequest(t, serverSide)
		sendOperationResponse(t, serverSide, message.OperationBody{ResultCode: resultCodeOK, Info3: message.Info3Last})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	exists, err := c.Exists(ctx, "test", "s1", value.String("k1"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected Exists to be false before put")
	}

	exists, err = c.Exists(ctx, "test", "s1", value.String("k1"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected Exists to be true after put")
	}
	<-done
}

// TestOperateComposesReadAndWrite sends a read and a write operation in
// the same request and checks both results come back correctly.
func TestOperateComposesReadAndWrite(t *testing.T) {
	c, serverSide := newTestConnection(t)
	defer serverSide.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		recvOperationRequest(t, serverSide)
		sendOperationResponse(t, serverSide, message.OperationBody{
			ResultCode: resultCodeOK,
			Info3:      message.Info3Last,
			Operations: []codec.Operation{
				{Type: codec.OpWrite, Bin: codec.Bin{Name: "test_bin", Value: value.NewInteger(9999)}},
				{Type: codec.OpRead, Bin: codec.Bin{Name: "test_bin2", Value: value.String("test_value")}},
				{Type: codec.OpRead, Bin: codec.Bin{Name: "test_bin", Value: value.NewInteger(9999)}},
			},
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ops := []codec.Operation{
		{Type: codec.OpWrite, Bin: codec.Bin{Name: "test_bin", Value: value.NewInteger(9999)}},
		{Type: codec.OpRead, Bin: codec.Bin{Name: "test_bin2", Value: value.Undef{}}},
		{Type: codec.OpRead, Bin: codec.Bin{Name: "test_bin", Value: value.Undef{}}},
	}
	got, err := c.Operate(ctx, "test", "s1", value.String("k1"), message.Info1Read, message.Info2Write, message.Info3Empty, ops, nil, 0, 0)
	if err != nil {
		t.Fatalf("Operate failed: %v", err)
	}
	if intVal, ok := got["test_bin"].(value.Integer); !ok || intVal.Int64() != 9999 {
		t.Errorf("test_bin mismatch: got %v", got["test_bin"])
	}
	if got["test_bin2"] != value.String("test_value") {
		t.Errorf("test_bin2 mismatch: got %v", got["test_bin2"])
	}
	<-done
}

func TestNotConnectedError(t *testing.T) {
	c := NewConnection(NewConfig("unused", 0))
	err := c.Put(context.Background(), "test", "s1", value.String("k1"), map[string]value.Value{"b": value.String("v")}, 0)
	if _, ok := err.(*NotConnectedError); !ok {
		t.Errorf("expected *NotConnectedError, got %T: %v", err, err)
	}
}
