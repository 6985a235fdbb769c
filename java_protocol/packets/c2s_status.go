package packets

import (
	jp "github.com/go-mclib/client/java_protocol"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

// C2SStatusRequestPacket represents "Status Request" (serverbound/status).
// Has no fields.
//
// > The status can only be requested once immediately after the
// handshake, before any ping. The server won't respond otherwise.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Status_Request
type C2SStatusRequestPacket struct{}

func (p *C2SStatusRequestPacket) ID() ns.VarInt                { return 0x00 }
func (p *C2SStatusRequestPacket) State() jp.State              { return jp.StateStatus }
func (p *C2SStatusRequestPacket) Bound() jp.Bound              { return jp.C2S }
func (p *C2SStatusRequestPacket) Read(*ns.PacketBuffer) error  { return nil }
func (p *C2SStatusRequestPacket) Write(*ns.PacketBuffer) error { return nil }

// C2SPingRequestPacket represents "Ping Request (status)" (serverbound/status).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Ping_Request_(status)
type C2SPingRequestPacket struct {
	// May be any number; vanilla clients use a millisecond timestamp.
	Timestamp ns.Int64
}

func (p *C2SPingRequestPacket) ID() ns.VarInt   { return 0x01 }
func (p *C2SPingRequestPacket) State() jp.State { return jp.StateStatus }
func (p *C2SPingRequestPacket) Bound() jp.Bound { return jp.C2S }

func (p *C2SPingRequestPacket) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Timestamp, err = ns.ReadFixed[ns.Int64](buf)
	return err
}

func (p *C2SPingRequestPacket) Write(buf *ns.PacketBuffer) error {
	return ns.WriteFixed(buf, p.Timestamp)
}
