// Package crypto implements the cryptographic pieces of the Minecraft
// login handshake: AES-128/CFB8 stream encryption, RSA-PKCS#1 v1.5 key
// exchange, and the protocol's signed SHA-1 server hash.
//
// https://minecraft.wiki/w/Protocol_encryption
package crypto

import "crypto/cipher"

// CFB8 is a cipher feedback stream with 8-bit segments, the mode the
// protocol uses for transport encryption. Unlike stdlib CFB it transforms
// one byte per block-cipher invocation, so partial trailing bytes of a
// buffer are encrypted like any other.
//
// Feedback loop per https://github.com/Tnze/go-mc/blob/master/net/CFB8/cfb8.go
type CFB8 struct {
	block     cipher.Block
	blockSize int
	iv        []byte
	tmp       []byte
	decrypt   bool
}

// NewCFB8Encrypter creates an encrypting CFB8 stream.
func NewCFB8Encrypter(block cipher.Block, iv []byte) *CFB8 {
	return newCFB8(block, iv, false)
}

// NewCFB8Decrypter creates a decrypting CFB8 stream.
func NewCFB8Decrypter(block cipher.Block, iv []byte) *CFB8 {
	return newCFB8(block, iv, true)
}

func newCFB8(block cipher.Block, iv []byte, decrypt bool) *CFB8 {
	ivCopy := make([]byte, len(iv))
	copy(ivCopy, iv)

	return &CFB8{
		block:     block,
		blockSize: block.BlockSize(),
		iv:        ivCopy,
		tmp:       make([]byte, block.BlockSize()),
		decrypt:   decrypt,
	}
}

// XORKeyStream transforms src into dst, which may be the same slice.
// Implements cipher.Stream.
func (c *CFB8) XORKeyStream(dst, src []byte) {
	for i := range src {
		copy(c.tmp, c.iv)

		// keep the input byte: dst may alias src
		in := src[i]
		c.block.Encrypt(c.iv, c.iv)
		out := in ^ c.iv[0]
		dst[i] = out

		copy(c.iv, c.tmp[1:])
		if c.decrypt {
			c.iv[c.blockSize-1] = in
		} else {
			c.iv[c.blockSize-1] = out
		}
	}
}
