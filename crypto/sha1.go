package crypto

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// ServerHash computes the hex digest the session server expects for a
// join request: Minecraft-style SHA-1 over serverID, the shared secret,
// and the server's SPKI DER public key.
func ServerHash(serverID string, sharedSecret, publicKeyDER []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(sharedSecret)
	h.Write(publicKeyDER)
	return minecraftDigest(h.Sum(nil))
}

// MinecraftSHA1 hashes s with Minecraft's signed-hexadecimal SHA-1
// notation (used historically for username digests).
// Reference: https://gist.github.com/toqueteos/5372776
func MinecraftSHA1(s string) string {
	sum := sha1.Sum([]byte(s))
	return minecraftDigest(sum[:])
}

// minecraftDigest renders a SHA-1 sum the way Java's BigInteger does:
// two's complement, minus sign for a set high bit, leading zeroes
// trimmed.
func minecraftDigest(sum []byte) string {
	negative := sum[0]&0x80 != 0
	if negative {
		twosComplement(sum)
	}

	res := strings.TrimLeft(hex.EncodeToString(sum), "0")
	if res == "" {
		res = "0"
	}
	if negative {
		res = "-" + res
	}
	return res
}

func twosComplement(p []byte) {
	carry := true
	for i := len(p) - 1; i >= 0; i-- {
		p[i] = ^p[i]
		if carry {
			carry = p[i] == 0xff
			p[i]++
		}
	}
}
