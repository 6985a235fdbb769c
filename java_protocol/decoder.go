package java_protocol

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"errors"
	"fmt"
	"io"

	mc_crypto "github.com/go-mclib/client/crypto"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

// Framing errors. All of them are fatal to the connection.
var (
	// ErrPacketTooLarge reports a declared frame length of MaxPacketSize
	// or more.
	ErrPacketTooLarge = errors.New("packet exceeds maximum length")
	// ErrInconsistentLength reports a compressed frame whose inflated
	// size does not match its declared data length.
	ErrInconsistentLength = errors.New("decompressed length does not match declared data length")
)

// PacketDecoder is a pull-based parser for the clientbound byte stream.
//
// Raw socket bytes go in through QueueBytes (decrypted on entry once a
// cipher is installed); complete frames come out of Decode. The decoder
// holds a rolling buffer, so bytes may arrive in any chunking, down to
// one byte at a time.
type PacketDecoder struct {
	buf     []byte
	decrypt *mc_crypto.CFB8
	// compressed switches Decode to the compressed frame layout.
	compressed bool
}

// NewPacketDecoder creates a decoder with encryption and compression off.
func NewPacketDecoder() *PacketDecoder {
	return &PacketDecoder{}
}

// Reserve ensures the rolling buffer has spare capacity for at least n
// more bytes, growing it only when it has less.
func (d *PacketDecoder) Reserve(n int) {
	if cap(d.buf)-len(d.buf) < n {
		grown := make([]byte, len(d.buf), len(d.buf)+n)
		copy(grown, d.buf)
		d.buf = grown
	}
}

// QueueBytes appends received bytes to the rolling buffer, running them
// through the stream cipher first when decryption is installed.
//
// Bytes already buffered when SetDecryption is called stay plaintext;
// they were received before the key exchange completed.
func (d *PacketDecoder) QueueBytes(p []byte) {
	start := len(d.buf)
	d.buf = append(d.buf, p...)
	if d.decrypt != nil {
		d.decrypt.XORKeyStream(d.buf[start:], d.buf[start:])
	}
}

// SetDecryption installs the AES-128/CFB8 stream cipher. The 16-byte
// shared secret doubles as the IV, per protocol.
func (d *PacketDecoder) SetDecryption(secret []byte) error {
	block, err := aes.NewCipher(secret)
	if err != nil {
		return fmt.Errorf("failed to create AES cipher: %w", err)
	}
	d.decrypt = mc_crypto.NewCFB8Decrypter(block, secret)
	return nil
}

// SetCompression switches the decoder to the compressed frame layout.
func (d *PacketDecoder) SetCompression(enabled bool) {
	d.compressed = enabled
}

// Decode attempts to extract one frame from the rolling buffer.
//
// Returns (nil, nil) when the buffer does not yet hold a complete frame;
// the buffer is left untouched so the caller can queue more bytes and
// retry. Any non-nil error is fatal to the connection.
func (d *PacketDecoder) Decode() (*RawPacket, error) {
	length, prefixLen, err := ns.VarIntFromBytes(d.buf)
	if err != nil {
		if errors.Is(err, ns.ErrVarIntIncomplete) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read packet length: %w", err)
	}

	if length < 0 {
		return nil, fmt.Errorf("negative packet length: %d", length)
	}
	if int(length) >= MaxPacketSize {
		return nil, fmt.Errorf("%w: %d", ErrPacketTooLarge, length)
	}
	if len(d.buf)-prefixLen < int(length) {
		return nil, nil
	}

	frame := d.buf[prefixLen : prefixLen+int(length)]
	packet, err := d.parseFrame(frame)
	if err != nil {
		return nil, err
	}

	// consume the frame; the tail moves to the front so the backing
	// array does not grow without bound
	n := copy(d.buf, d.buf[prefixLen+int(length):])
	d.buf = d.buf[:n]

	return packet, nil
}

// parseFrame parses one complete frame body (everything after the packet
// length prefix) into a RawPacket. The returned packet never aliases the
// rolling buffer.
func (d *PacketDecoder) parseFrame(frame []byte) (*RawPacket, error) {
	inner := frame

	if d.compressed {
		dataLength, n, err := ns.VarIntFromBytes(frame)
		if err != nil {
			return nil, fmt.Errorf("failed to read data length: %w", err)
		}
		if dataLength < 0 {
			return nil, fmt.Errorf("negative data length: %d", dataLength)
		}

		inner = frame[n:]
		if dataLength > 0 {
			inflated, err := inflateZlib(inner, int(dataLength))
			if err != nil {
				return nil, err
			}
			inner = inflated
		}
	}

	packetID, idLen, err := ns.VarIntFromBytes(inner)
	if err != nil {
		return nil, fmt.Errorf("failed to read packet ID: %w", err)
	}

	body := make(ns.ByteArray, len(inner)-idLen)
	copy(body, inner[idLen:])

	return &RawPacket{PacketID: packetID, Data: body}, nil
}

// inflateZlib decompresses data, which must inflate to exactly
// expectedLen bytes.
func inflateZlib(data []byte, expectedLen int) ([]byte, error) {
	if expectedLen >= MaxPacketSize {
		return nil, fmt.Errorf("%w: %d (uncompressed)", ErrPacketTooLarge, expectedLen)
	}

	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib reader: %w", err)
	}
	defer zr.Close()

	out := make([]byte, expectedLen)
	if _, err := io.ReadFull(zr, out); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrInconsistentLength
		}
		return nil, fmt.Errorf("failed to decompress packet: %w", err)
	}

	// a trailing byte means the stream inflated past the declared size
	var extra [1]byte
	if n, _ := zr.Read(extra[:]); n != 0 {
		return nil, ErrInconsistentLength
	}

	return out, nil
}
