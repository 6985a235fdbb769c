package net_structures

import (
	"encoding/json"
	"fmt"
)

// TextComponent is a Minecraft chat component. Since 1.20.3 it is
// encoded as network NBT on the wire; login-phase disconnects still carry
// it as a JSON string.
type TextComponent struct {
	Text      string          `nbt:"text,omitempty" json:"text,omitempty"`
	Translate string          `nbt:"translate,omitempty" json:"translate,omitempty"`
	With      []TextComponent `nbt:"with,omitempty" json:"with,omitempty"`

	Color         string `nbt:"color,omitempty" json:"color,omitempty"`
	Bold          *bool  `nbt:"bold,omitempty" json:"bold,omitempty"`
	Italic        *bool  `nbt:"italic,omitempty" json:"italic,omitempty"`
	Underlined    *bool  `nbt:"underlined,omitempty" json:"underlined,omitempty"`
	Strikethrough *bool  `nbt:"strikethrough,omitempty" json:"strikethrough,omitempty"`
	Obfuscated    *bool  `nbt:"obfuscated,omitempty" json:"obfuscated,omitempty"`

	Extra []TextComponent `nbt:"extra,omitempty" json:"extra,omitempty"`
}

// NewTextComponent builds a plain text component.
func NewTextComponent(text string) TextComponent {
	return TextComponent{Text: text}
}

// Encode writes the component as network NBT.
func (tc *TextComponent) Encode(buf *PacketBuffer) error {
	return NBT{Data: tc}.Encode(buf)
}

// Decode reads the component from network NBT. Servers may send either a
// bare string tag or a compound.
func (tc *TextComponent) Decode(buf *PacketBuffer) error {
	n, err := buf.ReadNBT()
	if err != nil {
		return err
	}

	switch data := n.Data.(type) {
	case nil:
		*tc = TextComponent{}
		return nil
	case string:
		*tc = TextComponent{Text: data}
		return nil
	default:
		var out TextComponent
		if err := n.DecodeTo(&out); err != nil {
			return fmt.Errorf("failed to decode text component: %w", err)
		}
		*tc = out
		return nil
	}
}

// TextComponentFromJSON parses the JSON form used by login-phase
// disconnect reasons. A bare JSON string becomes a plain component.
func TextComponentFromJSON(data []byte) (TextComponent, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return TextComponent{Text: s}, nil
	}

	var tc TextComponent
	if err := json.Unmarshal(data, &tc); err != nil {
		return TextComponent{}, fmt.Errorf("failed to parse text component JSON: %w", err)
	}
	return tc, nil
}

// PlainText flattens the component and its children to plain text.
// Translation keys render as the key itself.
func (tc TextComponent) PlainText() string {
	out := tc.Text
	if out == "" && tc.Translate != "" {
		out = tc.Translate
	}
	for _, child := range tc.Extra {
		out += child.PlainText()
	}
	return out
}

// ReadTextComponent reads an NBT text component from the buffer.
func (pb *PacketBuffer) ReadTextComponent() (TextComponent, error) {
	var tc TextComponent
	err := tc.Decode(pb)
	return tc, err
}

// WriteTextComponent writes an NBT text component to the buffer.
func (pb *PacketBuffer) WriteTextComponent(tc TextComponent) error {
	return tc.Encode(pb)
}
