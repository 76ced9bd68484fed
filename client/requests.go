package client

import (
	"context"
	"fmt"

	"aerowire/codec"
	"aerowire/message"
	"aerowire/value"
)

// defaultTransactionTTLMs is the transaction ttl advertised when a verb
// doesn't override it. The server treats this purely as advisory.
const defaultTransactionTTLMs = 1000

// keyFields builds the standard (Namespace, SetName, Digest) triple
// every request leads with. Digest is computed from the set name and
// key, never the namespace, per the digest contract.
func keyFields(namespace, set string, key value.Value) ([]codec.Field, error) {
	digest, err := value.Digest(set, key)
	if err != nil {
		return nil, fmt.Errorf("client: compute digest: %w", err)
	}
	return []codec.Field{
		{Type: codec.FieldNamespace, Data: []byte(namespace)},
		{Type: codec.FieldSetName, Data: []byte(set)},
		{Type: codec.FieldDigest, Data: digest},
	}, nil
}

// Put writes bins, creating or overwriting the record at key. A ttl of
// 0 leaves the record's time-to-live at the server default.
func (c *Connection) Put(ctx context.Context, namespace, set string, key value.Value, bins map[string]value.Value, ttl uint32) error {
	fields, err := keyFields(namespace, set, key)
	if err != nil {
		return err
	}

	ops := make([]codec.Operation, 0, len(bins))
	for name, v := range bins {
		ops = append(ops, codec.Operation{
			Type: codec.OpWrite,
			Bin:  codec.Bin{Name: name, Value: v},
		})
	}

	body := message.OperationBody{
		Info2:          message.Info2Write,
		Info3:          message.Info3Last,
		RecordTTL:      ttl,
		TransactionTTL: defaultTransactionTTLMs,
		Fields:         fields,
		Operations:     ops,
	}
	_, err = c.exchangeOperation(ctx, body)
	return err
}

// Get reads every bin of the record at key. A missing record (result
// code 2) is reported as an empty, non-nil map rather than an error.
func (c *Connection) Get(ctx context.Context, namespace, set string, key value.Value) (map[string]value.Value, error) {
	fields, err := keyFields(namespace, set, key)
	if err != nil {
		return nil, err
	}

	body := message.OperationBody{
		Info1:          message.Info1Read | message.Info1GetAll,
		Info3:          message.Info3Last,
		TransactionTTL: defaultTransactionTTLMs,
		Fields:         fields,
	}
	resp, err := c.exchangeOperation(ctx, body)
	if err != nil {
		return nil, err
	}
	return binsToMap(resp)
}

// Delete removes the record at key. Deleting a record that doesn't
// exist is not an error.
func (c *Connection) Delete(ctx context.Context, namespace, set string, key value.Value) error {
	fields, err := keyFields(namespace, set, key)
	if err != nil {
		return err
	}

	body := message.OperationBody{
		Info2:          message.Info2Delete | message.Info2Write,
		Info3:          message.Info3Last,
		TransactionTTL: defaultTransactionTTLMs,
		Fields:         fields,
	}
	_, err = c.exchangeOperation(ctx, body)
	return err
}

// Exists reports whether a record exists at key without fetching bin
// data. Result code 2 maps to false; any other non-zero code still
// surfaces as a ServerError.
func (c *Connection) Exists(ctx context.Context, namespace, set string, key value.Value) (bool, error) {
	fields, err := keyFields(namespace, set, key)
	if err != nil {
		return false, err
	}

	body := message.OperationBody{
		Info1:          message.Info1Read | message.Info1DontGetBinData,
		Info3:          message.Info3Last,
		TransactionTTL: defaultTransactionTTLMs,
		Fields:         fields,
	}
	resp, err := c.exchangeOperation(ctx, body)
	if err != nil {
		return false, err
	}
	return resp.ResultCode == resultCodeOK, nil
}

// Operate passes flags and operations through unchanged, appending the
// standard (Namespace, SetName, Digest) triple to any caller-supplied
// fields. This is the only verb that lets a caller compose arbitrary
// read and write operations in a single exchange.
func (c *Connection) Operate(
	ctx context.Context,
	namespace, set string,
	key value.Value,
	info1 message.Info1Flags,
	info2 message.Info2Flags,
	info3 message.Info3Flags,
	operations []codec.Operation,
	extraFields []codec.Field,
	ttl uint32,
	generation uint32,
) (map[string]value.Value, error) {
	fields, err := keyFields(namespace, set, key)
	if err != nil {
		return nil, err
	}
	fields = append(fields, extraFields...)

	body := message.OperationBody{
		Info1:          info1,
		Info2:          info2,
		Info3:          info3,
		Generation:     generation,
		RecordTTL:      ttl,
		TransactionTTL: defaultTransactionTTLMs,
		Fields:         fields,
		Operations:     operations,
	}
	resp, err := c.exchangeOperation(ctx, body)
	if err != nil {
		return nil, err
	}
	return binsToMap(resp)
}

// binsToMap collects a response's operations into a name→value map. A
// response carrying result code 2 yields an empty map rather than an
// error, matching the not-found-maps-to-empty contract.
func binsToMap(resp message.OperationBody) (map[string]value.Value, error) {
	out := make(map[string]value.Value, len(resp.Operations))
	if resp.ResultCode == resultCodeNotFound {
		return out, nil
	}
	for _, op := range resp.Operations {
		out[op.Bin.Name] = op.Bin.Value
	}
	return out, nil
}
