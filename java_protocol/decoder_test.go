package java_protocol_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	jp "github.com/go-mclib/client/java_protocol"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

// rawFrame builds an uncompressed wire frame for id + body.
func rawFrame(id ns.VarInt, body []byte) []byte {
	inner := append(id.ToBytes(), body...)
	return append(ns.VarInt(len(inner)).ToBytes(), inner...)
}

func TestDecodeUncompressedFrame(t *testing.T) {
	d := jp.NewPacketDecoder()
	body := []byte{0xde, 0xad, 0xbe, 0xef}
	d.QueueBytes(rawFrame(0x2A, body))

	p, err := d.Decode()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p == nil {
		t.Fatal("Decode() = nil, want a frame")
	}
	if p.PacketID != 0x2A {
		t.Errorf("PacketID = 0x%02X, want 0x2A", int(p.PacketID))
	}
	if !bytes.Equal(p.Data, body) {
		t.Errorf("Data = %v, want %v", p.Data, body)
	}

	// buffer drained; next decode needs more bytes
	if p, err := d.Decode(); p != nil || err != nil {
		t.Errorf("Decode() on empty buffer = (%v, %v), want (nil, nil)", p, err)
	}
}

func TestDecodeEmptyBodyIDZero(t *testing.T) {
	d := jp.NewPacketDecoder()
	d.QueueBytes(rawFrame(0x00, nil))

	p, err := d.Decode()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p == nil || p.PacketID != 0 || len(p.Data) != 0 {
		t.Fatalf("Decode() = %+v, want id 0 with empty body", p)
	}
}

func TestDecodePartialFrame(t *testing.T) {
	d := jp.NewPacketDecoder()
	frame := rawFrame(0x01, bytes.Repeat([]byte{0xAB}, 300))

	// everything but the last byte: decoder must hold off
	d.QueueBytes(frame[:len(frame)-1])
	if p, err := d.Decode(); p != nil || err != nil {
		t.Fatalf("Decode() on partial frame = (%v, %v), want (nil, nil)", p, err)
	}

	d.QueueBytes(frame[len(frame)-1:])
	p, err := d.Decode()
	if err != nil || p == nil {
		t.Fatalf("Decode() after completing frame = (%v, %v)", p, err)
	}
}

func TestDecodeChunkedDelivery(t *testing.T) {
	const frames = 100

	var stream []byte
	for i := 0; i < frames; i++ {
		body := []byte(fmt.Sprintf("frame-%03d", i))
		stream = append(stream, rawFrame(ns.VarInt(i%128), body)...)
	}

	d := jp.NewPacketDecoder()
	var got []*jp.RawPacket

	// one byte at a time, interleaved with decode attempts
	for _, b := range stream {
		d.Reserve(1)
		d.QueueBytes([]byte{b})
		for {
			p, err := d.Decode()
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if p == nil {
				break
			}
			got = append(got, p)
		}
	}

	if len(got) != frames {
		t.Fatalf("recovered %d frames, want %d", len(got), frames)
	}
	for i, p := range got {
		wantBody := fmt.Sprintf("frame-%03d", i)
		if p.PacketID != ns.VarInt(i%128) || string(p.Data) != wantBody {
			t.Errorf("frame %d = id 0x%02X body %q", i, int(p.PacketID), p.Data)
		}
	}
}

func TestDecodeOversizedFrame(t *testing.T) {
	d := jp.NewPacketDecoder()
	d.QueueBytes(ns.VarInt(jp.MaxPacketSize).ToBytes())

	_, err := d.Decode()
	if !errors.Is(err, jp.ErrPacketTooLarge) {
		t.Fatalf("Decode() error = %v, want ErrPacketTooLarge", err)
	}
}

func TestDecodeMaxSizedFrame(t *testing.T) {
	// a frame of exactly MaxPacketSize-1 bytes is legal
	inner := make([]byte, jp.MaxPacketSize-1)
	inner[0] = 0x05 // packet id
	frame := append(ns.VarInt(len(inner)).ToBytes(), inner...)

	d := jp.NewPacketDecoder()
	d.QueueBytes(frame)

	p, err := d.Decode()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p == nil || p.PacketID != 0x05 || len(p.Data) != jp.MaxPacketSize-2 {
		t.Fatalf("Decode() gave id 0x%02X with %d body bytes", int(p.PacketID), len(p.Data))
	}
}

func TestDecodeBadLengthVarInt(t *testing.T) {
	d := jp.NewPacketDecoder()
	d.QueueBytes([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0x01})

	if _, err := d.Decode(); !errors.Is(err, ns.ErrVarIntTooBig) {
		t.Fatalf("Decode() error = %v, want ErrVarIntTooBig", err)
	}
}

func TestDecodeCompressedSentinel(t *testing.T) {
	// data length 0 marks an uncompressed inner frame in compressed mode
	body := []byte("still plaintext")
	inner := append([]byte{0x00}, append(ns.VarInt(0x07).ToBytes(), body...)...)
	frame := append(ns.VarInt(len(inner)).ToBytes(), inner...)

	d := jp.NewPacketDecoder()
	d.SetCompression(true)
	d.QueueBytes(frame)

	p, err := d.Decode()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p == nil || p.PacketID != 0x07 || !bytes.Equal(p.Data, body) {
		t.Fatalf("Decode() = %+v", p)
	}
}

func TestDecodeInconsistentDataLength(t *testing.T) {
	e := jp.NewPacketEncoder()
	if err := e.SetCompression(0, jp.DefaultCompressionLevel); err != nil {
		t.Fatalf("SetCompression() error = %v", err)
	}
	if err := e.AppendPacket(&stubPacket{id: 0x01, body: bytes.Repeat([]byte{0x55}, 64)}); err != nil {
		t.Fatalf("AppendPacket() error = %v", err)
	}
	frame := e.Take()

	// corrupt the declared data length (first byte after the packet
	// length prefix) without touching the zlib stream
	_, n, err := ns.VarIntFromBytes(frame)
	if err != nil {
		t.Fatalf("VarIntFromBytes() error = %v", err)
	}
	frame[n] = frame[n] + 1

	d := jp.NewPacketDecoder()
	d.SetCompression(true)
	d.QueueBytes(frame)

	if _, err := d.Decode(); !errors.Is(err, jp.ErrInconsistentLength) {
		t.Fatalf("Decode() error = %v, want ErrInconsistentLength", err)
	}
}

func TestDecodeGarbageZlib(t *testing.T) {
	// declared data length 32, but the payload is not a zlib stream
	inner := append(ns.VarInt(32).ToBytes(), bytes.Repeat([]byte{0x5A}, 16)...)
	frame := append(ns.VarInt(len(inner)).ToBytes(), inner...)

	d := jp.NewPacketDecoder()
	d.SetCompression(true)
	d.QueueBytes(frame)

	if _, err := d.Decode(); err == nil {
		t.Fatal("expected error for corrupt zlib stream")
	}
}
