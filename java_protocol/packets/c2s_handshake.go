// Package packets defines the typed packets the client engine needs to
// drive a connection from handshake through configuration, in both
// directions, for protocol version 768.
//
// Play-phase payloads are deliberately absent; the engine hands those to
// higher layers as raw frames.
package packets

import (
	"fmt"

	jp "github.com/go-mclib/client/java_protocol"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

// ProtocolVersion is the protocol generation this library speaks
// (Minecraft 1.21.2/1.21.3).
const ProtocolVersion ns.VarInt = 768

// Intent is the purpose a client declares in its handshake.
type Intent ns.VarInt

const (
	IntentStatus Intent = iota + 1
	IntentLogin
	IntentTransfer
)

func (i Intent) String() string {
	switch i {
	case IntentStatus:
		return "status"
	case IntentLogin:
		return "login"
	case IntentTransfer:
		return "transfer"
	default:
		return fmt.Sprintf("intent(%d)", int32(i))
	}
}

// C2SIntentionPacket represents "Intention" (serverbound/handshake).
//
// > This packet causes the server to switch into the target state. It
// should be sent right after opening the TCP connection to prevent the
// server from disconnecting.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Intention
type C2SIntentionPacket struct {
	ProtocolVersion ns.VarInt
	// Hostname or IP that was used to connect, max 255 characters.
	ServerAddress ns.String
	ServerPort    ns.Uint16
	Intent        Intent
}

func (p *C2SIntentionPacket) ID() ns.VarInt   { return 0x00 }
func (p *C2SIntentionPacket) State() jp.State { return jp.StateHandshake }
func (p *C2SIntentionPacket) Bound() jp.Bound { return jp.C2S }

func (p *C2SIntentionPacket) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.ProtocolVersion, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ServerAddress, err = buf.ReadString(255); err != nil {
		return err
	}
	if p.ServerPort, err = ns.ReadFixed[ns.Uint16](buf); err != nil {
		return err
	}
	intent, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	p.Intent = Intent(intent)
	return nil
}

func (p *C2SIntentionPacket) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteVarInt(p.ProtocolVersion); err != nil {
		return err
	}
	if err := buf.WriteString(p.ServerAddress); err != nil {
		return err
	}
	if err := ns.WriteFixed(buf, p.ServerPort); err != nil {
		return err
	}
	return buf.WriteVarInt(ns.VarInt(p.Intent))
}
