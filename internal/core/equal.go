package core

import (
	"bytes"
	"encoding/json"
)

// Canonical returns the canonical serialization of v. Two values are
// considered equal when their canonical serializations are byte-identical.
// Object keys are emitted in sorted order, so key insertion order never
// affects equality.
func Canonical(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Equal reports whether a and b serialize identically. Values that cannot be
// serialized are never equal.
func Equal(a, b any) bool {
	ca, err := Canonical(a)
	if err != nil {
		return false
	}
	cb, err := Canonical(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ca, cb)
}
