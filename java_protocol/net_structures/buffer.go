package net_structures

import (
	"bytes"
	"fmt"
	"io"
)

// PacketBuffer reads and writes protocol data types over an io.Reader or
// io.Writer. Packet implementations receive one of these from the codec.
//
// Fixed-width integers go through the generic ReadFixed/WriteFixed pair;
// only types with structure of their own (VarInt, String, byte arrays,
// UUID, NBT) get named accessors.
type PacketBuffer struct {
	reader io.Reader
	writer io.Writer

	// write mode keeps a bytes.Buffer so the result can be retrieved
	buf *bytes.Buffer
}

// NewReader creates a PacketBuffer reading from data.
func NewReader(data []byte) *PacketBuffer {
	return &PacketBuffer{reader: bytes.NewReader(data)}
}

// NewReaderFrom creates a PacketBuffer reading from r.
func NewReaderFrom(r io.Reader) *PacketBuffer {
	return &PacketBuffer{reader: r}
}

// NewWriter creates a PacketBuffer accumulating written bytes.
func NewWriter() *PacketBuffer {
	buf := &bytes.Buffer{}
	return &PacketBuffer{writer: buf, buf: buf}
}

// NewWriterTo creates a PacketBuffer writing directly to w.
func NewWriterTo(w io.Writer) *PacketBuffer {
	return &PacketBuffer{writer: w}
}

// Bytes returns the accumulated bytes. Only valid for NewWriter buffers.
func (pb *PacketBuffer) Bytes() []byte {
	if pb.buf == nil {
		return nil
	}
	return pb.buf.Bytes()
}

// Len returns the number of accumulated bytes. Only valid for NewWriter
// buffers.
func (pb *PacketBuffer) Len() int {
	if pb.buf == nil {
		return 0
	}
	return pb.buf.Len()
}

// Reset clears the accumulated bytes for reuse.
func (pb *PacketBuffer) Reset() {
	if pb.buf != nil {
		pb.buf.Reset()
	}
}

// Read reads exactly len(p) bytes.
func (pb *PacketBuffer) Read(p []byte) (int, error) {
	if pb.reader == nil {
		return 0, fmt.Errorf("buffer not in read mode")
	}
	return io.ReadFull(pb.reader, p)
}

// Write writes p.
func (pb *PacketBuffer) Write(p []byte) (int, error) {
	if pb.writer == nil {
		return 0, fmt.Errorf("buffer not in write mode")
	}
	return pb.writer.Write(p)
}

// Reader returns the underlying io.Reader.
func (pb *PacketBuffer) Reader() io.Reader {
	return pb.reader
}

// Writer returns the underlying io.Writer.
func (pb *PacketBuffer) Writer() io.Writer {
	return pb.writer
}

// ReadFixed reads a fixed-width big-endian integer from the buffer:
//
//	port, err := ns.ReadFixed[ns.Uint16](buf)
func ReadFixed[T integer](pb *PacketBuffer) (T, error) {
	return DecodeFixed[T](pb.reader)
}

// WriteFixed writes a fixed-width big-endian integer to the buffer. The
// width follows from the value's type.
func WriteFixed[T integer](pb *PacketBuffer, v T) error {
	return EncodeFixed(pb.writer, v)
}

// ReadVarInt reads a VarInt.
func (pb *PacketBuffer) ReadVarInt() (VarInt, error) {
	return DecodeVarInt(pb.reader)
}

// WriteVarInt writes a VarInt.
func (pb *PacketBuffer) WriteVarInt(v VarInt) error {
	return v.Encode(pb.writer)
}

// ReadVarLong reads a VarLong.
func (pb *PacketBuffer) ReadVarLong() (VarLong, error) {
	return DecodeVarLong(pb.reader)
}

// WriteVarLong writes a VarLong.
func (pb *PacketBuffer) WriteVarLong(v VarLong) error {
	return v.Encode(pb.writer)
}

// ReadBool reads a Boolean.
func (pb *PacketBuffer) ReadBool() (Boolean, error) {
	return DecodeBoolean(pb.reader)
}

// WriteBool writes a Boolean.
func (pb *PacketBuffer) WriteBool(v Boolean) error {
	return v.Encode(pb.writer)
}

// ReadString reads a String. maxLen bounds the character count
// (0 = no limit).
func (pb *PacketBuffer) ReadString(maxLen int) (String, error) {
	return DecodeString(pb.reader, maxLen)
}

// WriteString writes a String.
func (pb *PacketBuffer) WriteString(v String) error {
	return v.Encode(pb.writer)
}

// ReadIdentifier reads a namespaced identifier.
func (pb *PacketBuffer) ReadIdentifier() (Identifier, error) {
	return DecodeIdentifier(pb.reader)
}

// WriteIdentifier writes a namespaced identifier.
func (pb *PacketBuffer) WriteIdentifier(v Identifier) error {
	return v.Encode(pb.writer)
}

// ReadByteArray reads a VarInt-length-prefixed byte array. maxLen bounds
// the byte count (0 = no limit).
func (pb *PacketBuffer) ReadByteArray(maxLen int) (ByteArray, error) {
	length, err := pb.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("failed to read byte array length: %w", err)
	}
	if length < 0 {
		return nil, fmt.Errorf("negative byte array length: %d", length)
	}
	if maxLen > 0 && int(length) > maxLen {
		return nil, fmt.Errorf("byte array length %d exceeds maximum %d", length, maxLen)
	}

	data := make([]byte, length)
	if _, err := pb.Read(data); err != nil {
		return nil, fmt.Errorf("failed to read byte array data: %w", err)
	}
	return data, nil
}

// WriteByteArray writes a VarInt-length-prefixed byte array.
func (pb *PacketBuffer) WriteByteArray(v ByteArray) error {
	if err := pb.WriteVarInt(VarInt(len(v))); err != nil {
		return fmt.Errorf("failed to write byte array length: %w", err)
	}
	if _, err := pb.Write(v); err != nil {
		return fmt.Errorf("failed to write byte array data: %w", err)
	}
	return nil
}

// ReadFixedByteArray reads exactly n bytes with no prefix.
func (pb *PacketBuffer) ReadFixedByteArray(n int) (ByteArray, error) {
	data := make([]byte, n)
	if _, err := pb.Read(data); err != nil {
		return nil, err
	}
	return data, nil
}

// WriteFixedByteArray writes bytes with no prefix.
func (pb *PacketBuffer) WriteFixedByteArray(v ByteArray) error {
	_, err := pb.Write(v)
	return err
}

// ReadRemaining reads every byte left in the buffer. Used for packet
// fields whose length is implied by the frame length.
func (pb *PacketBuffer) ReadRemaining() (ByteArray, error) {
	if pb.reader == nil {
		return nil, fmt.Errorf("buffer not in read mode")
	}
	return io.ReadAll(pb.reader)
}

// ReadUUID reads a 128-bit UUID.
func (pb *PacketBuffer) ReadUUID() (UUID, error) {
	return DecodeUUID(pb.reader)
}

// WriteUUID writes a 128-bit UUID.
func (pb *PacketBuffer) WriteUUID(v UUID) error {
	return v.Encode(pb.writer)
}
