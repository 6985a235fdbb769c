package packets

import (
	jp "github.com/go-mclib/client/java_protocol"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

// S2CConfigDisconnectPacket represents "Disconnect (configuration)"
// (clientbound/configuration). Unlike the login-phase disconnect, the
// reason is an NBT text component.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Disconnect_(configuration)
type S2CConfigDisconnectPacket struct {
	Reason ns.TextComponent
}

func (p *S2CConfigDisconnectPacket) ID() ns.VarInt   { return 0x02 }
func (p *S2CConfigDisconnectPacket) State() jp.State { return jp.StateConfiguration }
func (p *S2CConfigDisconnectPacket) Bound() jp.Bound { return jp.S2C }

func (p *S2CConfigDisconnectPacket) Read(buf *ns.PacketBuffer) error {
	return p.Reason.Decode(buf)
}

func (p *S2CConfigDisconnectPacket) Write(buf *ns.PacketBuffer) error {
	return p.Reason.Encode(buf)
}

// S2CFinishConfigurationPacket represents "Finish Configuration"
// (clientbound/configuration). Has no fields.
//
// > Sent by the server to notify the client that the configuration
// process has finished. The client answers with Acknowledge Finish
// Configuration.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Finish_Configuration
type S2CFinishConfigurationPacket struct{}

func (p *S2CFinishConfigurationPacket) ID() ns.VarInt                { return 0x03 }
func (p *S2CFinishConfigurationPacket) State() jp.State              { return jp.StateConfiguration }
func (p *S2CFinishConfigurationPacket) Bound() jp.Bound              { return jp.S2C }
func (p *S2CFinishConfigurationPacket) Read(*ns.PacketBuffer) error  { return nil }
func (p *S2CFinishConfigurationPacket) Write(*ns.PacketBuffer) error { return nil }

// S2CKeepAlivePacket represents "Clientbound Keep Alive (configuration)".
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Clientbound_Keep_Alive_(configuration)
type S2CKeepAlivePacket struct {
	KeepAliveID ns.Int64
}

func (p *S2CKeepAlivePacket) ID() ns.VarInt   { return 0x04 }
func (p *S2CKeepAlivePacket) State() jp.State { return jp.StateConfiguration }
func (p *S2CKeepAlivePacket) Bound() jp.Bound { return jp.S2C }

func (p *S2CKeepAlivePacket) Read(buf *ns.PacketBuffer) error {
	var err error
	p.KeepAliveID, err = ns.ReadFixed[ns.Int64](buf)
	return err
}

func (p *S2CKeepAlivePacket) Write(buf *ns.PacketBuffer) error {
	return ns.WriteFixed(buf, p.KeepAliveID)
}
