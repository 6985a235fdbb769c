package crypto_test

import (
	"testing"

	"github.com/go-mclib/client/crypto"
)

var sha1TestCases = map[string]string{
	"Notch": "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48",
	"jeb_":  "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1",
	"simon": "88e16a1019277b15d58faf0541e11910eb756f6",
}

func TestMinecraftSHA1(t *testing.T) {
	for username, expected := range sha1TestCases {
		actual := crypto.MinecraftSHA1(username)
		if actual != expected {
			t.Errorf("MinecraftSHA1(%q) = %q; want %q", username, actual, expected)
		}
	}
}

// With an empty secret and key, the server hash degenerates to the plain
// username digest, which pins the digest rules to the known vectors.
func TestServerHashDegenerate(t *testing.T) {
	for serverID, expected := range sha1TestCases {
		actual := crypto.ServerHash(serverID, nil, nil)
		if actual != expected {
			t.Errorf("ServerHash(%q, nil, nil) = %q; want %q", serverID, actual, expected)
		}
	}
}

func TestServerHashUsesAllInputs(t *testing.T) {
	base := crypto.ServerHash("", []byte("0123456789abcdef"), []byte{0x30, 0x82})
	if base == crypto.ServerHash("x", []byte("0123456789abcdef"), []byte{0x30, 0x82}) {
		t.Error("server id not hashed")
	}
	if base == crypto.ServerHash("", []byte("fedcba9876543210"), []byte{0x30, 0x82}) {
		t.Error("shared secret not hashed")
	}
	if base == crypto.ServerHash("", []byte("0123456789abcdef"), []byte{0x30, 0x83}) {
		t.Error("public key not hashed")
	}
}
