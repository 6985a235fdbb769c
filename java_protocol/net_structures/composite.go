package net_structures

import (
	"fmt"
)

// ElementEncoder writes a single element of a composite type.
type ElementEncoder[T any] func(buf *PacketBuffer, v T) error

// ElementDecoder reads a single element of a composite type.
type ElementDecoder[T any] func(buf *PacketBuffer) (T, error)

// PrefixedArray is a VarInt-length-prefixed sequence of T.
type PrefixedArray[T any] []T

// DecodeWith reads the array using decode for each element.
func (a *PrefixedArray[T]) DecodeWith(buf *PacketBuffer, decode ElementDecoder[T]) error {
	length, err := buf.ReadVarInt()
	if err != nil {
		return fmt.Errorf("failed to read array length: %w", err)
	}
	if length < 0 {
		return fmt.Errorf("negative array length: %d", length)
	}

	out := make([]T, 0, length)
	for i := 0; i < int(length); i++ {
		v, err := decode(buf)
		if err != nil {
			return fmt.Errorf("failed to read array element %d: %w", i, err)
		}
		out = append(out, v)
	}
	*a = out
	return nil
}

// EncodeWith writes the array using encode for each element.
func (a PrefixedArray[T]) EncodeWith(buf *PacketBuffer, encode ElementEncoder[T]) error {
	if err := buf.WriteVarInt(VarInt(len(a))); err != nil {
		return fmt.Errorf("failed to write array length: %w", err)
	}
	for i, v := range a {
		if err := encode(buf, v); err != nil {
			return fmt.Errorf("failed to write array element %d: %w", i, err)
		}
	}
	return nil
}

// PrefixedOptional is a Boolean-prefixed optional value.
type PrefixedOptional[T any] struct {
	Present bool
	Value   T
}

// Some wraps a present value.
func Some[T any](value T) PrefixedOptional[T] {
	return PrefixedOptional[T]{Present: true, Value: value}
}

// None is the absent value.
func None[T any]() PrefixedOptional[T] {
	return PrefixedOptional[T]{}
}

// DecodeWith reads the presence flag, then the value if present.
func (o *PrefixedOptional[T]) DecodeWith(buf *PacketBuffer, decode ElementDecoder[T]) error {
	present, err := buf.ReadBool()
	if err != nil {
		return fmt.Errorf("failed to read optional flag: %w", err)
	}
	o.Present = bool(present)
	if !o.Present {
		var zero T
		o.Value = zero
		return nil
	}

	o.Value, err = decode(buf)
	if err != nil {
		return fmt.Errorf("failed to read optional value: %w", err)
	}
	return nil
}

// EncodeWith writes the presence flag, then the value if present.
func (o PrefixedOptional[T]) EncodeWith(buf *PacketBuffer, encode ElementEncoder[T]) error {
	if err := buf.WriteBool(Boolean(o.Present)); err != nil {
		return fmt.Errorf("failed to write optional flag: %w", err)
	}
	if !o.Present {
		return nil
	}
	return encode(buf, o.Value)
}

// Get returns the value and whether it is present.
func (o PrefixedOptional[T]) Get() (T, bool) {
	return o.Value, o.Present
}
