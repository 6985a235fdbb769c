package net_structures

import (
	"fmt"
)

// ProfileProperty is one entry of a game profile's property map, usually
// the base64 "textures" blob with an optional Yggdrasil signature.
type ProfileProperty struct {
	Name      String
	Value     String
	Signature PrefixedOptional[String]
}

// Decode reads a ProfileProperty from the buffer.
func (p *ProfileProperty) Decode(buf *PacketBuffer) error {
	var err error
	if p.Name, err = buf.ReadString(64); err != nil {
		return fmt.Errorf("failed to read property name: %w", err)
	}
	if p.Value, err = buf.ReadString(32767); err != nil {
		return fmt.Errorf("failed to read property value: %w", err)
	}
	if err := p.Signature.DecodeWith(buf, func(b *PacketBuffer) (String, error) {
		return b.ReadString(1024)
	}); err != nil {
		return fmt.Errorf("failed to read property signature: %w", err)
	}
	return nil
}

// Encode writes a ProfileProperty to the buffer.
func (p *ProfileProperty) Encode(buf *PacketBuffer) error {
	if err := buf.WriteString(p.Name); err != nil {
		return fmt.Errorf("failed to write property name: %w", err)
	}
	if err := buf.WriteString(p.Value); err != nil {
		return fmt.Errorf("failed to write property value: %w", err)
	}
	if err := p.Signature.EncodeWith(buf, func(b *PacketBuffer, v String) error {
		return b.WriteString(v)
	}); err != nil {
		return fmt.Errorf("failed to write property signature: %w", err)
	}
	return nil
}

// GameProfile is the resolved player identity a server assigns at the end
// of login: UUID, username, and the property map.
type GameProfile struct {
	UUID       UUID
	Username   String
	Properties PrefixedArray[ProfileProperty]
}

// Decode reads a GameProfile from the buffer.
func (p *GameProfile) Decode(buf *PacketBuffer) error {
	var err error
	if p.UUID, err = buf.ReadUUID(); err != nil {
		return fmt.Errorf("failed to read profile uuid: %w", err)
	}
	if p.Username, err = buf.ReadString(16); err != nil {
		return fmt.Errorf("failed to read profile username: %w", err)
	}
	if err := p.Properties.DecodeWith(buf, func(b *PacketBuffer) (ProfileProperty, error) {
		var prop ProfileProperty
		err := prop.Decode(b)
		return prop, err
	}); err != nil {
		return fmt.Errorf("failed to read profile properties: %w", err)
	}
	return nil
}

// Encode writes a GameProfile to the buffer.
func (p *GameProfile) Encode(buf *PacketBuffer) error {
	if err := buf.WriteUUID(p.UUID); err != nil {
		return fmt.Errorf("failed to write profile uuid: %w", err)
	}
	if err := buf.WriteString(p.Username); err != nil {
		return fmt.Errorf("failed to write profile username: %w", err)
	}
	if err := p.Properties.EncodeWith(buf, func(b *PacketBuffer, prop ProfileProperty) error {
		return prop.Encode(b)
	}); err != nil {
		return fmt.Errorf("failed to write profile properties: %w", err)
	}
	return nil
}
