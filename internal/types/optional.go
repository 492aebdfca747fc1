package types

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrNullNotAllowed is returned while decoding an Optional field that was
// sent as an explicit JSON null.
var ErrNullNotAllowed = errors.New("null is not allowed for this field")

var jsonNull = []byte("null")

// Optional is a PATCH field that is either absent or carries a value.
// encoding/json only calls UnmarshalJSON for keys present in the body, so
// Set stays false for omitted fields.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return ErrNullNotAllowed
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value, o.Set = v, true
	return nil
}

// ApplyTo overwrites *dst when the field was sent.
func (o Optional[T]) ApplyTo(dst *T) {
	if o.Set {
		*dst = o.Value
	}
}

// Unwrap returns the value for validation, or nil when absent.
func (o Optional[T]) Unwrap() any {
	if !o.Set {
		return nil
	}
	return o.Value
}

// Nullable is a PATCH field with three states: absent, null, or a value.
type Nullable[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Value returns a Nullable holding v.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{Value: v, Set: true}
}

// Null returns a Nullable that was explicitly sent as null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true, Null: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		var zero T
		n.Value, n.Null = zero, true
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value, n.Null = v, false
	return nil
}

// ApplyTo overwrites *dst when the field was sent: nil for null, a fresh
// pointer to the value otherwise.
func (n Nullable[T]) ApplyTo(dst **T) {
	if !n.Set {
		return
	}
	if n.Null {
		*dst = nil
		return
	}
	v := n.Value
	*dst = &v
}

// Ptr converts the field to a pointer: nil when absent or null.
func (n Nullable[T]) Ptr() *T {
	if !n.Set || n.Null {
		return nil
	}
	v := n.Value
	return &v
}

// Unwrap returns the value for validation as a *T, nil when absent or
// null. The typed pointer lets "omitnil" skip the field while an empty
// string still reaches the validators after it.
func (n Nullable[T]) Unwrap() any {
	return n.Ptr()
}
