package net_structures_test

import (
	"testing"

	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

func TestPrefixedArrayRoundTrip(t *testing.T) {
	original := ns.PrefixedArray[ns.VarInt]{1, 128, -1, 25565}

	buf := ns.NewWriter()
	err := original.EncodeWith(buf, func(b *ns.PacketBuffer, v ns.VarInt) error {
		return b.WriteVarInt(v)
	})
	if err != nil {
		t.Fatalf("EncodeWith() error = %v", err)
	}

	var decoded ns.PrefixedArray[ns.VarInt]
	reader := ns.NewReader(buf.Bytes())
	err = decoded.DecodeWith(reader, func(b *ns.PacketBuffer) (ns.VarInt, error) {
		return b.ReadVarInt()
	})
	if err != nil {
		t.Fatalf("DecodeWith() error = %v", err)
	}

	if len(decoded) != len(original) {
		t.Fatalf("decoded %d elements, want %d", len(decoded), len(original))
	}
	for i := range original {
		if decoded[i] != original[i] {
			t.Errorf("element %d = %v, want %v", i, decoded[i], original[i])
		}
	}
}

func TestPrefixedArrayEmpty(t *testing.T) {
	buf := ns.NewWriter()
	var empty ns.PrefixedArray[ns.String]
	err := empty.EncodeWith(buf, func(b *ns.PacketBuffer, v ns.String) error {
		return b.WriteString(v)
	})
	if err != nil {
		t.Fatalf("EncodeWith() error = %v", err)
	}
	if buf.Len() != 1 || buf.Bytes()[0] != 0x00 {
		t.Errorf("empty array encoded as %v, want [00]", buf.Bytes())
	}
}

func TestPrefixedOptionalRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value ns.PrefixedOptional[ns.String]
	}{
		{"present", ns.Some[ns.String]("hello")},
		{"absent", ns.None[ns.String]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := ns.NewWriter()
			err := tt.value.EncodeWith(buf, func(b *ns.PacketBuffer, v ns.String) error {
				return b.WriteString(v)
			})
			if err != nil {
				t.Fatalf("EncodeWith() error = %v", err)
			}

			var decoded ns.PrefixedOptional[ns.String]
			reader := ns.NewReader(buf.Bytes())
			err = decoded.DecodeWith(reader, func(b *ns.PacketBuffer) (ns.String, error) {
				return b.ReadString(0)
			})
			if err != nil {
				t.Fatalf("DecodeWith() error = %v", err)
			}

			if decoded.Present != tt.value.Present || decoded.Value != tt.value.Value {
				t.Errorf("round trip gave %+v, want %+v", decoded, tt.value)
			}
		})
	}
}
