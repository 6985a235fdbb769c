package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"io"
)

// GenerateSharedSecret produces the 16 random bytes that key (and IV)
// both directions of the AES-128/CFB8 transport cipher.
func GenerateSharedSecret() ([]byte, error) {
	secret := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, secret); err != nil {
		return nil, fmt.Errorf("failed to generate shared secret: %w", err)
	}
	return secret, nil
}

// ParsePublicKey parses the SPKI DER public key a server sends in its
// encryption request.
func ParsePublicKey(der []byte) (*rsa.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not RSA")
	}
	return rsaKey, nil
}

// MarshalPublicKey converts an RSA public key to SPKI DER, the form the
// wire carries.
func MarshalPublicKey(key *rsa.PublicKey) ([]byte, error) {
	return x509.MarshalPKIXPublicKey(key)
}

// EncryptWithPublicKey RSA-encrypts data with PKCS#1 v1.5 padding under
// the server's SPKI DER public key. Used for the shared secret and the
// echoed verify challenge.
func EncryptWithPublicKey(der []byte, data []byte) ([]byte, error) {
	key, err := ParsePublicKey(der)
	if err != nil {
		return nil, err
	}

	encrypted, err := rsa.EncryptPKCS1v15(rand.Reader, key, data)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt data: %w", err)
	}
	return encrypted, nil
}
