package packets

import (
	jp "github.com/go-mclib/client/java_protocol"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

// S2CStatusResponsePacket represents "Status Response" (clientbound/status).
// The payload is a JSON document describing the server list entry.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Status_Response
type S2CStatusResponsePacket struct {
	JSON ns.String
}

func (p *S2CStatusResponsePacket) ID() ns.VarInt   { return 0x00 }
func (p *S2CStatusResponsePacket) State() jp.State { return jp.StateStatus }
func (p *S2CStatusResponsePacket) Bound() jp.Bound { return jp.S2C }

func (p *S2CStatusResponsePacket) Read(buf *ns.PacketBuffer) error {
	var err error
	p.JSON, err = buf.ReadString(32767)
	return err
}

func (p *S2CStatusResponsePacket) Write(buf *ns.PacketBuffer) error {
	return buf.WriteString(p.JSON)
}

// S2CPongResponsePacket represents "Pong Response (status)" (clientbound/status).
// Echoes the ping request's payload.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Pong_Response_(status)
type S2CPongResponsePacket struct {
	Payload ns.Int64
}

func (p *S2CPongResponsePacket) ID() ns.VarInt   { return 0x01 }
func (p *S2CPongResponsePacket) State() jp.State { return jp.StateStatus }
func (p *S2CPongResponsePacket) Bound() jp.Bound { return jp.S2C }

func (p *S2CPongResponsePacket) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Payload, err = ns.ReadFixed[ns.Int64](buf)
	return err
}

func (p *S2CPongResponsePacket) Write(buf *ns.PacketBuffer) error {
	return ns.WriteFixed(buf, p.Payload)
}
