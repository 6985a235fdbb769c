package net_structures

import (
	"bytes"
	"fmt"
	"io"

	"github.com/Tnze/go-mc/nbt"
)

// NBT is a network-format Named Binary Tag value (nameless root, as used
// by protocol 764+).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Type:NBT
type NBT struct {
	Data any
}

// NewNBT wraps data as an NBT value.
func NewNBT(data any) NBT {
	return NBT{Data: data}
}

// Encode writes the NBT value to the buffer. A nil Data encodes as the
// single TAG_End byte.
func (n NBT) Encode(buf *PacketBuffer) error {
	if n.Data == nil {
		return WriteFixed(buf, Uint8(0x00))
	}

	var out bytes.Buffer
	enc := nbt.NewEncoder(&out)
	enc.NetworkFormat(true)
	if err := enc.Encode(n.Data, ""); err != nil {
		return fmt.Errorf("failed to encode NBT data: %w", err)
	}

	return buf.WriteFixedByteArray(out.Bytes())
}

// Decode reads an NBT value from the buffer into Data. A leading
// TAG_End byte decodes as nil.
func (n *NBT) Decode(buf *PacketBuffer) error {
	first, err := ReadFixed[Uint8](buf)
	if err != nil {
		return fmt.Errorf("failed to read NBT tag: %w", err)
	}
	if first == 0x00 {
		n.Data = nil
		return nil
	}

	r := io.MultiReader(bytes.NewReader([]byte{byte(first)}), buf.Reader())
	dec := nbt.NewDecoder(r)
	dec.NetworkFormat(true)

	var data any
	if _, err := dec.Decode(&data); err != nil {
		return fmt.Errorf("failed to decode NBT data: %w", err)
	}
	n.Data = data
	return nil
}

// DecodeTo re-marshals the decoded NBT value into dest, which must be a
// pointer to an nbt-taggable Go value.
func (n *NBT) DecodeTo(dest any) error {
	var out bytes.Buffer
	enc := nbt.NewEncoder(&out)
	enc.NetworkFormat(true)
	if err := enc.Encode(n.Data, ""); err != nil {
		return fmt.Errorf("failed to re-encode NBT data: %w", err)
	}

	dec := nbt.NewDecoder(bytes.NewReader(out.Bytes()))
	dec.NetworkFormat(true)
	if _, err := dec.Decode(dest); err != nil {
		return fmt.Errorf("failed to decode NBT into destination: %w", err)
	}
	return nil
}

// ReadNBT reads an NBT value from the buffer.
func (pb *PacketBuffer) ReadNBT() (NBT, error) {
	var n NBT
	err := n.Decode(pb)
	return n, err
}

// WriteNBT writes an NBT value to the buffer.
func (pb *PacketBuffer) WriteNBT(n NBT) error {
	return n.Encode(pb)
}
