package packets

import (
	jp "github.com/go-mclib/client/java_protocol"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

// C2SClientInformationPacket represents "Client Information"
// (serverbound/configuration).
//
// > Sent when the player connects, or when settings are changed.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Client_Information_(configuration)
type C2SClientInformationPacket struct {
	// e.g. "en_US", max 16 characters.
	Locale             ns.String
	ViewDistance       ns.Int8
	ChatMode           ns.VarInt
	ChatColors         ns.Boolean
	DisplayedSkinParts ns.Uint8
	// 0 = left, 1 = right.
	MainHand            ns.VarInt
	EnableTextFiltering ns.Boolean
	AllowServerListings ns.Boolean
	ParticleStatus      ns.VarInt
}

func (p *C2SClientInformationPacket) ID() ns.VarInt   { return 0x00 }
func (p *C2SClientInformationPacket) State() jp.State { return jp.StateConfiguration }
func (p *C2SClientInformationPacket) Bound() jp.Bound { return jp.C2S }

func (p *C2SClientInformationPacket) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.Locale, err = buf.ReadString(16); err != nil {
		return err
	}
	if p.ViewDistance, err = ns.ReadFixed[ns.Int8](buf); err != nil {
		return err
	}
	if p.ChatMode, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ChatColors, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.DisplayedSkinParts, err = ns.ReadFixed[ns.Uint8](buf); err != nil {
		return err
	}
	if p.MainHand, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.EnableTextFiltering, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.AllowServerListings, err = buf.ReadBool(); err != nil {
		return err
	}
	p.ParticleStatus, err = buf.ReadVarInt()
	return err
}

func (p *C2SClientInformationPacket) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteString(p.Locale); err != nil {
		return err
	}
	if err := ns.WriteFixed(buf, p.ViewDistance); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.ChatMode); err != nil {
		return err
	}
	if err := buf.WriteBool(p.ChatColors); err != nil {
		return err
	}
	if err := ns.WriteFixed(buf, p.DisplayedSkinParts); err != nil {
		return err
	}
	if err := buf.WriteVarInt(p.MainHand); err != nil {
		return err
	}
	if err := buf.WriteBool(p.EnableTextFiltering); err != nil {
		return err
	}
	if err := buf.WriteBool(p.AllowServerListings); err != nil {
		return err
	}
	return buf.WriteVarInt(p.ParticleStatus)
}

// C2SFinishConfigurationPacket represents "Acknowledge Finish
// Configuration" (serverbound/configuration). Has no fields.
//
// > Sent by the client to notify the server that the configuration
// process has finished. This packet switches the connection state to
// play.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Acknowledge_Finish_Configuration
type C2SFinishConfigurationPacket struct{}

func (p *C2SFinishConfigurationPacket) ID() ns.VarInt                { return 0x03 }
func (p *C2SFinishConfigurationPacket) State() jp.State              { return jp.StateConfiguration }
func (p *C2SFinishConfigurationPacket) Bound() jp.Bound              { return jp.C2S }
func (p *C2SFinishConfigurationPacket) Read(*ns.PacketBuffer) error  { return nil }
func (p *C2SFinishConfigurationPacket) Write(*ns.PacketBuffer) error { return nil }

// C2SKeepAlivePacket represents "Serverbound Keep Alive (configuration)".
//
// > The server will frequently send out a keep-alive, each containing a
// random ID. The client must respond with the same packet.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Serverbound_Keep_Alive_(configuration)
type C2SKeepAlivePacket struct {
	KeepAliveID ns.Int64
}

func (p *C2SKeepAlivePacket) ID() ns.VarInt   { return 0x04 }
func (p *C2SKeepAlivePacket) State() jp.State { return jp.StateConfiguration }
func (p *C2SKeepAlivePacket) Bound() jp.Bound { return jp.C2S }

func (p *C2SKeepAlivePacket) Read(buf *ns.PacketBuffer) error {
	var err error
	p.KeepAliveID, err = ns.ReadFixed[ns.Int64](buf)
	return err
}

func (p *C2SKeepAlivePacket) Write(buf *ns.PacketBuffer) error {
	return ns.WriteFixed(buf, p.KeepAliveID)
}
