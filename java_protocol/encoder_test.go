package java_protocol_test

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
	"testing"

	jp "github.com/go-mclib/client/java_protocol"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

// stubPacket is a minimal packet carrying opaque body bytes.
type stubPacket struct {
	id   ns.VarInt
	body []byte
}

func (p *stubPacket) ID() ns.VarInt   { return p.id }
func (p *stubPacket) State() jp.State { return jp.StatePlay }
func (p *stubPacket) Bound() jp.Bound { return jp.C2S }

func (p *stubPacket) Read(buf *ns.PacketBuffer) error {
	var err error
	p.body, err = buf.ReadRemaining()
	return err
}

func (p *stubPacket) Write(buf *ns.PacketBuffer) error {
	return buf.WriteFixedByteArray(p.body)
}

func TestEncodeUncompressedLayout(t *testing.T) {
	e := jp.NewPacketEncoder()
	if err := e.AppendPacket(&stubPacket{id: 0x2A, body: []byte{0x01, 0x02, 0x03}}); err != nil {
		t.Fatalf("AppendPacket() error = %v", err)
	}

	got := e.Take()
	want := []byte{0x04, 0x2A, 0x01, 0x02, 0x03}
	if !bytes.Equal(got, want) {
		t.Fatalf("Take() = %v, want %v", got, want)
	}

	// drained
	if out := e.Take(); len(out) != 0 {
		t.Fatalf("second Take() = %v, want empty", out)
	}
}

func TestEncodeMultiplePacketsOneTake(t *testing.T) {
	e := jp.NewPacketEncoder()
	for i := 0; i < 3; i++ {
		if err := e.AppendPacket(&stubPacket{id: ns.VarInt(i), body: []byte{byte(i)}}); err != nil {
			t.Fatalf("AppendPacket() error = %v", err)
		}
	}

	d := jp.NewPacketDecoder()
	d.QueueBytes(e.Take())
	for i := 0; i < 3; i++ {
		p, err := d.Decode()
		if err != nil || p == nil {
			t.Fatalf("Decode() frame %d = (%v, %v)", i, p, err)
		}
		if p.PacketID != ns.VarInt(i) || !bytes.Equal(p.Data, []byte{byte(i)}) {
			t.Errorf("frame %d = id 0x%02X body %v", i, int(p.PacketID), p.Data)
		}
	}
}

func TestEncodeCompressedBelowThreshold(t *testing.T) {
	e := jp.NewPacketEncoder()
	if err := e.SetCompression(256, jp.DefaultCompressionLevel); err != nil {
		t.Fatalf("SetCompression() error = %v", err)
	}

	body := bytes.Repeat([]byte{0x11}, 32)
	if err := e.AppendPacket(&stubPacket{id: 0x05, body: body}); err != nil {
		t.Fatalf("AppendPacket() error = %v", err)
	}
	frame := e.Take()

	// layout: VarInt(1 + dataLen) | VarInt(0) | id | body
	length, n, err := ns.VarIntFromBytes(frame)
	if err != nil {
		t.Fatalf("VarIntFromBytes() error = %v", err)
	}
	if int(length) != 1+1+len(body) {
		t.Errorf("packet length = %d, want %d", length, 1+1+len(body))
	}
	if frame[n] != 0x00 {
		t.Errorf("data length slot = 0x%02X, want the 0x00 sentinel", frame[n])
	}
	if frame[n+1] != 0x05 || !bytes.Equal(frame[n+2:], body) {
		t.Error("inner frame is not the plain id + body")
	}
}

func TestEncodeCompressedAboveThreshold(t *testing.T) {
	e := jp.NewPacketEncoder()
	if err := e.SetCompression(64, jp.DefaultCompressionLevel); err != nil {
		t.Fatalf("SetCompression() error = %v", err)
	}

	body := bytes.Repeat([]byte("compressible "), 40)
	if err := e.AppendPacket(&stubPacket{id: 0x05, body: body}); err != nil {
		t.Fatalf("AppendPacket() error = %v", err)
	}
	frame := e.Take()

	length, n, err := ns.VarIntFromBytes(frame)
	if err != nil {
		t.Fatalf("VarIntFromBytes() error = %v", err)
	}
	if int(length) != len(frame)-n {
		t.Errorf("packet length = %d, want %d", length, len(frame)-n)
	}

	dataLen, m, err := ns.VarIntFromBytes(frame[n:])
	if err != nil {
		t.Fatalf("VarIntFromBytes() error = %v", err)
	}
	if int(dataLen) != 1+len(body) {
		t.Errorf("data length = %d, want %d", dataLen, 1+len(body))
	}

	// the remainder must be a zlib stream of id + body
	zr, err := zlib.NewReader(bytes.NewReader(frame[n+m:]))
	if err != nil {
		t.Fatalf("payload is not a zlib stream: %v", err)
	}
	inflated, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("failed to inflate: %v", err)
	}
	if inflated[0] != 0x05 || !bytes.Equal(inflated[1:], body) {
		t.Error("inflated payload is not the original id + body")
	}
}

func TestEncodeDecodeCompressedRoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 255, 256, 257, 4096} {
		e := jp.NewPacketEncoder()
		d := jp.NewPacketDecoder()
		if err := e.SetCompression(256, jp.DefaultCompressionLevel); err != nil {
			t.Fatalf("SetCompression() error = %v", err)
		}
		d.SetCompression(true)

		body := bytes.Repeat([]byte{0x77}, size)
		if err := e.AppendPacket(&stubPacket{id: 0x10, body: body}); err != nil {
			t.Fatalf("AppendPacket(size=%d) error = %v", size, err)
		}
		d.QueueBytes(e.Take())

		p, err := d.Decode()
		if err != nil || p == nil {
			t.Fatalf("Decode(size=%d) = (%v, %v)", size, p, err)
		}
		if p.PacketID != 0x10 || !bytes.Equal(p.Data, body) {
			t.Errorf("round trip of %d-byte body failed", size)
		}
	}
}

func TestEncodeDecodeEncryptedRoundTrip(t *testing.T) {
	secret := []byte("0123456789abcdef")

	e := jp.NewPacketEncoder()
	d := jp.NewPacketDecoder()
	if err := e.SetEncryption(secret); err != nil {
		t.Fatalf("SetEncryption() error = %v", err)
	}
	if err := d.SetDecryption(secret); err != nil {
		t.Fatalf("SetDecryption() error = %v", err)
	}

	bodies := [][]byte{
		[]byte("first"),
		{},
		bytes.Repeat([]byte{0xA5}, 1000),
	}
	for i, body := range bodies {
		if err := e.AppendPacket(&stubPacket{id: ns.VarInt(i + 1), body: body}); err != nil {
			t.Fatalf("AppendPacket() error = %v", err)
		}
	}

	ciphertext := e.Take()
	// deliver in two arbitrary chunks to exercise the streaming cipher
	d.QueueBytes(ciphertext[:7])
	d.QueueBytes(ciphertext[7:])

	for i, body := range bodies {
		p, err := d.Decode()
		if err != nil || p == nil {
			t.Fatalf("Decode() frame %d = (%v, %v)", i, p, err)
		}
		if p.PacketID != ns.VarInt(i+1) || !bytes.Equal(p.Data, body) {
			t.Errorf("frame %d did not round trip", i)
		}
	}
}

func TestEncodeEncryptedCompressedRoundTrip(t *testing.T) {
	secret := []byte("fedcba9876543210")

	e := jp.NewPacketEncoder()
	d := jp.NewPacketDecoder()
	if err := e.SetCompression(128, jp.DefaultCompressionLevel); err != nil {
		t.Fatalf("SetCompression() error = %v", err)
	}
	d.SetCompression(true)
	if err := e.SetEncryption(secret); err != nil {
		t.Fatalf("SetEncryption() error = %v", err)
	}
	if err := d.SetDecryption(secret); err != nil {
		t.Fatalf("SetDecryption() error = %v", err)
	}

	body := bytes.Repeat([]byte("both layers "), 100)
	if err := e.AppendPacket(&stubPacket{id: 0x3F, body: body}); err != nil {
		t.Fatalf("AppendPacket() error = %v", err)
	}
	d.QueueBytes(e.Take())

	p, err := d.Decode()
	if err != nil || p == nil {
		t.Fatalf("Decode() = (%v, %v)", p, err)
	}
	if p.PacketID != 0x3F || !bytes.Equal(p.Data, body) {
		t.Error("encrypted compressed frame did not round trip")
	}
}

func TestEncodeTooLong(t *testing.T) {
	e := jp.NewPacketEncoder()
	body := make([]byte, jp.MaxPacketSize)
	if err := e.AppendPacket(&stubPacket{id: 0x00, body: body}); !errors.Is(err, jp.ErrTooLong) {
		t.Fatalf("AppendPacket() error = %v, want ErrTooLong", err)
	}
}

func TestEncodeMaxSizeBoundary(t *testing.T) {
	e := jp.NewPacketEncoder()

	// id (1 byte) + body = MaxPacketSize-1 total: largest legal frame
	body := make([]byte, jp.MaxPacketSize-2)
	if err := e.AppendPacket(&stubPacket{id: 0x00, body: body}); err != nil {
		t.Fatalf("AppendPacket() at boundary error = %v", err)
	}

	// one more byte crosses the line
	e2 := jp.NewPacketEncoder()
	body = make([]byte, jp.MaxPacketSize-1)
	if err := e2.AppendPacket(&stubPacket{id: 0x00, body: body}); !errors.Is(err, jp.ErrTooLong) {
		t.Fatalf("AppendPacket() over boundary error = %v, want ErrTooLong", err)
	}
}
