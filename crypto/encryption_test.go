package crypto_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/go-mclib/client/crypto"
)

func TestGenerateSharedSecret(t *testing.T) {
	a, err := crypto.GenerateSharedSecret()
	if err != nil {
		t.Fatalf("GenerateSharedSecret() error = %v", err)
	}
	if len(a) != 16 {
		t.Fatalf("secret length = %d, want 16", len(a))
	}

	b, err := crypto.GenerateSharedSecret()
	if err != nil {
		t.Fatalf("GenerateSharedSecret() error = %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("two generated secrets are identical")
	}
}

func TestEncryptWithPublicKeyRoundTrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	der, err := crypto.MarshalPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPublicKey() error = %v", err)
	}

	secret, _ := crypto.GenerateSharedSecret()
	encrypted, err := crypto.EncryptWithPublicKey(der, secret)
	if err != nil {
		t.Fatalf("EncryptWithPublicKey() error = %v", err)
	}

	decrypted, err := rsa.DecryptPKCS1v15(nil, key, encrypted)
	if err != nil {
		t.Fatalf("DecryptPKCS1v15() error = %v", err)
	}
	if !bytes.Equal(decrypted, secret) {
		t.Fatal("decrypted secret does not match original")
	}
}

func TestEncryptWithPublicKeyBadDER(t *testing.T) {
	if _, err := crypto.EncryptWithPublicKey([]byte{0x00, 0x01, 0x02}, []byte("data")); err == nil {
		t.Fatal("expected error for invalid DER")
	}
}
