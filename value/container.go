package value

import (
	"github.com/tinylib/msgp/msgp"
)

// List is an ordered sequence of typed values. On the wire it is a
// MessagePack array whose elements are each a single type-tag byte
// followed by the element's raw bytes, wrapped as an opaque MessagePack
// binary string — this is what lets a list hold heterogeneous element
// types and still round-trip.
type List []Value

func (l List) Tag() Tag { return TagList }

func (l List) Pack() ([]byte, error) {
	buf := msgp.AppendArrayHeader(nil, uint32(len(l)))
	for _, elem := range l {
		tagged, err := PackTagged(elem)
		if err != nil {
			return nil, err
		}
		buf = msgp.AppendBytes(buf, tagged)
	}
	return buf, nil
}

// Len recomputes the packed size; containers don't cache it since list
// length isn't on this client's hot path (unlike scalar Len, which is
// O(1)).
func (l List) Len() int {
	b, err := l.Pack()
	if err != nil {
		return 0
	}
	return len(b)
}

func parseList(data []byte) (Value, error) {
	sz, rest, err := msgp.ReadArrayHeaderBytes(data)
	if err != nil {
		return nil, err
	}
	// Each element consumes at least one byte of rest, so a declared
	// count larger than what's left can't be genuine — reject it before
	// sizing the slice instead of trusting an attacker-controlled header.
	if int(sz) > len(rest) {
		return nil, &ContainerHeaderSizeError{Declared: int(sz), Remain: len(rest)}
	}
	items := make([]Value, sz)
	for i := range items {
		raw, next, err := msgp.ReadBytesBytes(rest, nil)
		if err != nil {
			return nil, err
		}
		v, err := ParseTagged(raw)
		if err != nil {
			return nil, err
		}
		items[i] = v
		rest = next
	}
	return List(items), nil
}

// MapEntry is a single key/value pair of a Map. Map is represented as a
// slice of pairs rather than a Go map because keys may be non-comparable
// wire values (Blob, List, Map) and because wire order must be
// preserved on encode.
type MapEntry struct {
	Key Value
	Val Value
}

// Map is an unordered collection of (typed value, typed value) pairs,
// serialized as a MessagePack map with the same per-element tagging as List.
type Map []MapEntry

func (m Map) Tag() Tag { return TagMap }

func (m Map) Pack() ([]byte, error) {
	buf := msgp.AppendMapHeader(nil, uint32(len(m)))
	for _, entry := range m {
		key, err := PackTagged(entry.Key)
		if err != nil {
			return nil, err
		}
		buf = msgp.AppendBytes(buf, key)

		val, err := PackTagged(entry.Val)
		if err != nil {
			return nil, err
		}
		buf = msgp.AppendBytes(buf, val)
	}
	return buf, nil
}

func (m Map) Len() int {
	b, err := m.Pack()
	if err != nil {
		return 0
	}
	return len(b)
}

func parseMap(data []byte) (Value, error) {
	sz, rest, err := msgp.ReadMapHeaderBytes(data)
	if err != nil {
		return nil, err
	}
	// Each entry consumes at least two bytes of rest (a key and a value),
	// so reject an over-large declared count before sizing the slice.
	if int(sz) > len(rest)/2 {
		return nil, &ContainerHeaderSizeError{Declared: int(sz), Remain: len(rest)}
	}
	entries := make([]MapEntry, sz)
	for i := range entries {
		rawKey, next, err := msgp.ReadBytesBytes(rest, nil)
		if err != nil {
			return nil, err
		}
		key, err := ParseTagged(rawKey)
		if err != nil {
			return nil, err
		}

		rawVal, next2, err := msgp.ReadBytesBytes(next, nil)
		if err != nil {
			return nil, err
		}
		val, err := ParseTagged(rawVal)
		if err != nil {
			return nil, err
		}

		entries[i] = MapEntry{Key: key, Val: val}
		rest = next2
	}
	return Map(entries), nil
}

// Get returns the value associated with a key whose packed tagged form
// matches, for tests and callers that want map-like lookup without
// requiring Go-comparable keys.
func (m Map) Get(key Value) (Value, bool) {
	keyBytes, err := PackTagged(key)
	if err != nil {
		return nil, false
	}
	for _, entry := range m {
		entryKeyBytes, err := PackTagged(entry.Key)
		if err != nil {
			continue
		}
		if string(entryKeyBytes) == string(keyBytes) {
			return entry.Val, true
		}
	}
	return nil, false
}
