package net_structures_test

import (
	"bytes"
	"testing"

	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

func TestUUIDEncoding(t *testing.T) {
	u, err := ns.UUIDFromString("069a79f4-44e9-4726-a5be-fca90e38aaf5")
	if err != nil {
		t.Fatalf("UUIDFromString() error = %v", err)
	}

	var buf bytes.Buffer
	if err := u.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if buf.Len() != 16 {
		t.Fatalf("encoded size = %d, want 16", buf.Len())
	}

	decoded, err := ns.DecodeUUID(&buf)
	if err != nil {
		t.Fatalf("DecodeUUID() error = %v", err)
	}
	if decoded != u {
		t.Errorf("round trip gave %v, want %v", decoded, u)
	}
	if decoded.String() != "069a79f4-44e9-4726-a5be-fca90e38aaf5" {
		t.Errorf("String() = %q", decoded.String())
	}
}

func TestUUIDFromStringForms(t *testing.T) {
	hyphenated, err := ns.UUIDFromString("069a79f4-44e9-4726-a5be-fca90e38aaf5")
	if err != nil {
		t.Fatalf("hyphenated parse error = %v", err)
	}
	plain, err := ns.UUIDFromString("069a79f444e94726a5befca90e38aaf5")
	if err != nil {
		t.Fatalf("plain parse error = %v", err)
	}
	if hyphenated != plain {
		t.Error("hyphenated and plain forms parsed differently")
	}

	if _, err := ns.UUIDFromString("too-short"); err == nil {
		t.Error("expected error for malformed UUID")
	}
}

func TestUUIDNil(t *testing.T) {
	if !ns.NilUUID.IsNil() {
		t.Error("NilUUID.IsNil() = false")
	}
	u, _ := ns.UUIDFromString("069a79f444e94726a5befca90e38aaf5")
	if u.IsNil() {
		t.Error("non-zero UUID reported nil")
	}
}
