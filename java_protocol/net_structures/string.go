package net_structures

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// String is a UTF-8 string with a VarInt byte-length prefix.
//
// The prefix counts bytes, not characters. Packet fields bound the
// character count (255 for the handshake host, 16 for usernames, 32767
// otherwise).
type String string

// Encode writes the String to w with its VarInt length prefix.
func (v String) Encode(w io.Writer) error {
	if err := VarInt(len(v)).Encode(w); err != nil {
		return fmt.Errorf("failed to write string length: %w", err)
	}
	if _, err := io.WriteString(w, string(v)); err != nil {
		return fmt.Errorf("failed to write string data: %w", err)
	}
	return nil
}

// DecodeString reads a String from r. maxLen bounds the character count
// (0 = no limit).
func DecodeString(r io.Reader, maxLen int) (String, error) {
	length, err := DecodeVarInt(r)
	if err != nil {
		return "", fmt.Errorf("failed to read string length: %w", err)
	}
	if length < 0 {
		return "", fmt.Errorf("negative string length: %d", length)
	}

	// UTF-8 is at most 4 bytes per character.
	if maxLen > 0 && int(length) > maxLen*4 {
		return "", fmt.Errorf("string byte length %d exceeds maximum %d", length, maxLen*4)
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return "", fmt.Errorf("failed to read string data: %w", err)
	}

	if maxLen > 0 && utf8.RuneCount(data) > maxLen {
		return "", fmt.Errorf("string length exceeds maximum %d characters", maxLen)
	}

	return String(data), nil
}

// Identifier is a namespaced location, "namespace:path". A missing
// namespace defaults to "minecraft".
type Identifier string

// Encode writes the Identifier to w.
func (v Identifier) Encode(w io.Writer) error {
	return String(v).Encode(w)
}

// DecodeIdentifier reads an Identifier from r.
func DecodeIdentifier(r io.Reader) (Identifier, error) {
	s, err := DecodeString(r, 32767)
	return Identifier(s), err
}

// Namespace returns the namespace part, defaulting to "minecraft".
func (id Identifier) Namespace() string {
	for i := 0; i < len(id); i++ {
		if id[i] == ':' {
			return string(id[:i])
		}
	}
	return "minecraft"
}

// Path returns the path part.
func (id Identifier) Path() string {
	for i := 0; i < len(id); i++ {
		if id[i] == ':' {
			return string(id[i+1:])
		}
	}
	return string(id)
}
