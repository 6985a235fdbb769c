// Package java_protocol implements the framing layer of the Minecraft
// Java Edition wire protocol (protocol version 768): VarInt length
// prefixing, optional zlib compression past a server-dictated threshold,
// and optional AES-128/CFB8 stream encryption, layered in that order.
//
// > Packets cannot be larger than (2^21) − 1 or 2 097 151 bytes (the
// maximum that can be sent in a 3-byte VarInt). For compressed packets,
// this applies to the Packet Length field, i.e. the compressed length.
//
// See https://minecraft.wiki/w/Java_Edition_protocol/Packets
package java_protocol

import (
	"fmt"

	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

// MaxPacketSize is the exclusive upper bound on a frame's declared
// length. A packet length of MaxPacketSize-1 is the largest legal frame.
const MaxPacketSize = 1 << 21

// Packet is implemented by every typed packet. Each packet knows its ID,
// protocol state, and direction, and serializes itself via PacketBuffer.
type Packet interface {
	// ID returns the packet ID within its state.
	ID() ns.VarInt
	// State returns the protocol state this packet belongs to.
	State() State
	// Bound returns the direction of this packet.
	Bound() Bound
	// Read deserializes the packet body from the buffer.
	Read(buf *ns.PacketBuffer) error
	// Write serializes the packet body to the buffer.
	Write(buf *ns.PacketBuffer) error
}

// State is the conversational phase of a connection. It is never sent on
// the wire; both sides transition it in lockstep.
type State uint8

const (
	StateHandshake State = iota
	StateStatus
	StateLogin
	StateConfiguration
	StatePlay
)

func (s State) String() string {
	switch s {
	case StateHandshake:
		return "handshake"
	case StateStatus:
		return "status"
	case StateLogin:
		return "login"
	case StateConfiguration:
		return "configuration"
	case StatePlay:
		return "play"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Bound is the direction a packet travels.
type Bound uint8

const (
	// C2S is serverbound (client -> server).
	C2S Bound = iota
	// S2C is clientbound (server -> client).
	S2C
)

// RawPacket is one decoded frame: the packet ID plus the decompressed,
// decrypted body bytes. The decoder produces these; the state machine and
// the inbound queue consume them.
type RawPacket struct {
	PacketID ns.VarInt
	Data     ns.ByteArray
}

// Reader returns a PacketBuffer over the body bytes.
func (p *RawPacket) Reader() *ns.PacketBuffer {
	return ns.NewReader(p.Data)
}

// ReadInto deserializes the body into a typed packet, checking the ID.
func (p *RawPacket) ReadInto(pkt Packet) error {
	if p == nil {
		return fmt.Errorf("nil raw packet")
	}
	if p.PacketID != pkt.ID() {
		return fmt.Errorf("packet ID mismatch: expected 0x%02X, got 0x%02X", int(pkt.ID()), int(p.PacketID))
	}
	return pkt.Read(p.Reader())
}

// ReadPacket deserializes a RawPacket into a typed packet using generics,
// avoiding manual type assertions:
//
//	raw, _ := client.PeekPacket()
//	finished, err := jp.ReadPacket[packets.S2CLoginFinishedPacket](raw)
func ReadPacket[T any, PT interface {
	*T
	Packet
}](raw *RawPacket) (PT, error) {
	p := PT(new(T))
	if err := raw.ReadInto(p); err != nil {
		return nil, err
	}
	return p, nil
}
