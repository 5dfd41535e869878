package dto

import (
	"bytes"
	"encoding/json"
)

// Optional carries a partial-update field that may be absent, explicitly null, or set.
// The zero value is absent.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present, non-null value
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null returns an explicit null
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// UnmarshalJSON only runs for keys present in the payload, which is what marks Set
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	if e, ok := any(o.Value).(emptier); ok && e.IsEmpty() {
		o.Null = true
	}
	return nil
}

// emptier is implemented by values whose empty form means null, such as Date
type emptier interface {
	IsEmpty() bool
}

// MarshalJSON writes null for absent and null values
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports whether the field carries a value
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}
