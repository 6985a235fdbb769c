package java_protocol

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"errors"
	"fmt"

	mc_crypto "github.com/go-mclib/client/crypto"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

// ErrTooLong reports a serialized packet whose outer length would reach
// MaxPacketSize.
var ErrTooLong = errors.New("packet exceeds maximum length")

// DefaultCompressionLevel is the zlib level the vanilla client uses.
const DefaultCompressionLevel = 6

// PacketEncoder serializes packets into wire frames.
//
// AppendPacket frames packets into an internal buffer; Take drains that
// buffer for the socket, encrypting it if a cipher is installed. Several
// packets may be appended before a single Take.
type PacketEncoder struct {
	out     []byte
	payload *ns.PacketBuffer
	scratch bytes.Buffer
	zw      *zlib.Writer

	encrypt *mc_crypto.CFB8
	// threshold < 0 disables the compressed frame layout
	threshold int
	level     int
}

// NewPacketEncoder creates an encoder with encryption and compression
// off.
func NewPacketEncoder() *PacketEncoder {
	return &PacketEncoder{
		payload:   ns.NewWriter(),
		threshold: -1,
	}
}

// AppendPacket serializes p into the pending buffer with the framing
// currently in effect.
func (e *PacketEncoder) AppendPacket(p Packet) error {
	e.payload.Reset()
	if err := e.payload.WriteVarInt(p.ID()); err != nil {
		return fmt.Errorf("failed to write packet ID: %w", err)
	}
	if err := p.Write(e.payload); err != nil {
		return fmt.Errorf("failed to serialize packet: %w", err)
	}

	payload := e.payload.Bytes()
	dataLen := len(payload)

	if e.threshold < 0 {
		if dataLen >= MaxPacketSize {
			return fmt.Errorf("%w: %d", ErrTooLong, dataLen)
		}
		return e.appendFrame(ns.VarInt(dataLen).ToBytes(), nil, payload)
	}

	if dataLen > e.threshold {
		compressed, err := e.deflate(payload)
		if err != nil {
			return err
		}

		packetLen := ns.VarInt(dataLen).Len() + len(compressed)
		if packetLen >= MaxPacketSize {
			return fmt.Errorf("%w: %d", ErrTooLong, packetLen)
		}
		return e.appendFrame(
			ns.VarInt(packetLen).ToBytes(),
			ns.VarInt(dataLen).ToBytes(),
			compressed,
		)
	}

	// below the threshold the body stays uncompressed and the data
	// length slot carries a zero
	packetLen := 1 + dataLen
	if packetLen >= MaxPacketSize {
		return fmt.Errorf("%w: %d", ErrTooLong, packetLen)
	}
	return e.appendFrame(
		ns.VarInt(packetLen).ToBytes(),
		[]byte{0x00},
		payload,
	)
}

func (e *PacketEncoder) appendFrame(prefix, dataLenPrefix, body []byte) error {
	e.out = append(e.out, prefix...)
	e.out = append(e.out, dataLenPrefix...)
	e.out = append(e.out, body...)
	return nil
}

// deflate compresses payload into the reusable scratch buffer.
func (e *PacketEncoder) deflate(payload []byte) ([]byte, error) {
	e.scratch.Reset()
	if e.zw == nil {
		zw, err := zlib.NewWriterLevel(&e.scratch, e.level)
		if err != nil {
			return nil, fmt.Errorf("invalid compression level %d: %w", e.level, err)
		}
		e.zw = zw
	} else {
		e.zw.Reset(&e.scratch)
	}

	if _, err := e.zw.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to compress packet: %w", err)
	}
	if err := e.zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish compression: %w", err)
	}
	return e.scratch.Bytes(), nil
}

// SetCompression enables the compressed frame layout for every later
// AppendPacket; a negative threshold disables it. Calling it again
// replaces the threshold and level; the zlib stream is rebuilt on next
// use.
func (e *PacketEncoder) SetCompression(threshold, level int) error {
	if threshold < 0 {
		e.threshold = -1
		e.zw = nil
		return nil
	}
	if level < zlib.HuffmanOnly || level > zlib.BestCompression {
		return fmt.Errorf("invalid compression level %d", level)
	}
	e.threshold = threshold
	e.level = level
	e.zw = nil
	return nil
}

// SetEncryption installs the AES-128/CFB8 stream cipher keyed and IV'd
// by the 16-byte shared secret. Every byte of every later Take is
// encrypted; pending plaintext must be flushed with Take first.
func (e *PacketEncoder) SetEncryption(secret []byte) error {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return fmt.Errorf("failed to create AES cipher: %w", err)
	}
	e.encrypt = mc_crypto.NewCFB8Encrypter(block, secret)
	return nil
}

// Take drains the pending bytes for the socket, encrypting them when a
// cipher is installed. CFB8 has single-byte granularity, so a partial
// trailing block is still fully encrypted.
func (e *PacketEncoder) Take() []byte {
	out := e.out
	e.out = nil
	if e.encrypt != nil {
		e.encrypt.XORKeyStream(out, out)
	}
	return out
}
