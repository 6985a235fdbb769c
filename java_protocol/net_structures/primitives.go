package net_structures

import (
	"encoding/binary"
	"io"
)

// The protocol's fixed-width numbers are all big-endian two's complement,
// differing only in width, so a single generic codec serves every one of
// them. The named types below exist to make packet definitions
// self-describing; EncodeFixed/DecodeFixed derive the wire width from
// the type.

// Int8 is a signed byte.
type Int8 int8

// Uint8 is an unsigned byte.
type Uint8 uint8

// Int16 is a big-endian signed 16-bit integer.
type Int16 int16

// Uint16 is a big-endian unsigned 16-bit integer (the protocol's
// "Unsigned Short", used for the handshake port).
type Uint16 uint16

// Int32 is a big-endian signed 32-bit integer.
type Int32 int32

// Int64 is a big-endian signed 64-bit integer (the protocol's "Long",
// used for ping payloads and keep-alive ids).
type Int64 int64

// integer constrains the fixed-width integer wire types.
type integer interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~int64
}

// EncodeFixed writes v to w as a big-endian integer of T's width.
func EncodeFixed[T integer](w io.Writer, v T) error {
	var buf [8]byte
	size := binary.Size(v)
	binary.BigEndian.PutUint64(buf[:], uint64(int64(v)))
	_, err := w.Write(buf[8-size:])
	return err
}

// DecodeFixed reads a big-endian integer of T's width from r.
func DecodeFixed[T integer](r io.Reader) (T, error) {
	var v T
	var buf [8]byte
	size := binary.Size(v)
	if _, err := io.ReadFull(r, buf[8-size:]); err != nil {
		return 0, err
	}
	// the truncating conversion restores the sign for signed widths
	return T(binary.BigEndian.Uint64(buf[:])), nil
}

// Boolean is a single byte: 0x00 = false, 0x01 = true.
type Boolean bool

// Encode writes the Boolean to w.
func (v Boolean) Encode(w io.Writer) error {
	var b Uint8
	if v {
		b = 0x01
	}
	return EncodeFixed(w, b)
}

// DecodeBoolean reads a Boolean from r.
func DecodeBoolean(r io.Reader) (Boolean, error) {
	b, err := DecodeFixed[Uint8](r)
	return b != 0, err
}
