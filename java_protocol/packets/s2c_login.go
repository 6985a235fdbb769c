package packets

import (
	jp "github.com/go-mclib/client/java_protocol"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

// S2CLoginDisconnectPacket represents "Disconnect (login)"
// (clientbound/login). The reason is a JSON text component, unlike the
// NBT form used after login.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Disconnect_(login)
type S2CLoginDisconnectPacket struct {
	Reason ns.String
}

func (p *S2CLoginDisconnectPacket) ID() ns.VarInt   { return 0x00 }
func (p *S2CLoginDisconnectPacket) State() jp.State { return jp.StateLogin }
func (p *S2CLoginDisconnectPacket) Bound() jp.Bound { return jp.S2C }

func (p *S2CLoginDisconnectPacket) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Reason, err = buf.ReadString(262144)
	return err
}

func (p *S2CLoginDisconnectPacket) Write(buf *ns.PacketBuffer) error {
	return buf.WriteString(p.Reason)
}

// S2CHelloPacket represents "Encryption Request" (clientbound/login).
//
// Carries the server's SPKI DER public key and a random verify
// challenge; both come back RSA-encrypted in the Key packet.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Encryption_Request
type S2CHelloPacket struct {
	// Appears to be empty on vanilla servers, max 20 characters.
	ServerID           ns.String
	PublicKey          ns.ByteArray
	Challenge          ns.ByteArray
	ShouldAuthenticate ns.Boolean
}

func (p *S2CHelloPacket) ID() ns.VarInt   { return 0x01 }
func (p *S2CHelloPacket) State() jp.State { return jp.StateLogin }
func (p *S2CHelloPacket) Bound() jp.Bound { return jp.S2C }

func (p *S2CHelloPacket) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.ServerID, err = buf.ReadString(20); err != nil {
		return err
	}
	if p.PublicKey, err = buf.ReadByteArray(0); err != nil {
		return err
	}
	if p.Challenge, err = buf.ReadByteArray(0); err != nil {
		return err
	}
	p.ShouldAuthenticate, err = buf.ReadBool()
	return err
}

func (p *S2CHelloPacket) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteString(p.ServerID); err != nil {
		return err
	}
	if err := buf.WriteByteArray(p.PublicKey); err != nil {
		return err
	}
	if err := buf.WriteByteArray(p.Challenge); err != nil {
		return err
	}
	return buf.WriteBool(p.ShouldAuthenticate)
}

// S2CLoginFinishedPacket represents "Login Success" (clientbound/login).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Success
type S2CLoginFinishedPacket struct {
	Profile ns.GameProfile
}

func (p *S2CLoginFinishedPacket) ID() ns.VarInt   { return 0x02 }
func (p *S2CLoginFinishedPacket) State() jp.State { return jp.StateLogin }
func (p *S2CLoginFinishedPacket) Bound() jp.Bound { return jp.S2C }

func (p *S2CLoginFinishedPacket) Read(buf *ns.PacketBuffer) error {
	return p.Profile.Decode(buf)
}

func (p *S2CLoginFinishedPacket) Write(buf *ns.PacketBuffer) error {
	return p.Profile.Encode(buf)
}

// S2CLoginCompressionPacket represents "Set Compression"
// (clientbound/login).
//
// From this point on, packets whose uncompressed size is greater than
// the threshold are compressed; packets at or below it are sent with a
// zero data length. A negative threshold disables compression.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Set_Compression
type S2CLoginCompressionPacket struct {
	Threshold ns.VarInt
}

func (p *S2CLoginCompressionPacket) ID() ns.VarInt   { return 0x03 }
func (p *S2CLoginCompressionPacket) State() jp.State { return jp.StateLogin }
func (p *S2CLoginCompressionPacket) Bound() jp.Bound { return jp.S2C }

func (p *S2CLoginCompressionPacket) Read(buf *ns.PacketBuffer) error {
	var err error
	p.Threshold, err = buf.ReadVarInt()
	return err
}

func (p *S2CLoginCompressionPacket) Write(buf *ns.PacketBuffer) error {
	return buf.WriteVarInt(p.Threshold)
}

// S2CCustomQueryPacket represents "Login Plugin Request"
// (clientbound/login).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Plugin_Request
type S2CCustomQueryPacket struct {
	MessageID ns.VarInt
	Channel   ns.Identifier
	// Remaining bytes of the frame; no length field of its own.
	Payload ns.ByteArray
}

func (p *S2CCustomQueryPacket) ID() ns.VarInt   { return 0x04 }
func (p *S2CCustomQueryPacket) State() jp.State { return jp.StateLogin }
func (p *S2CCustomQueryPacket) Bound() jp.Bound { return jp.S2C }

func (p *S2CCustomQueryPacket) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.MessageID, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.Channel, err = buf.ReadIdentifier(); err != nil {
		return err
	}
	p.Payload, err = buf.ReadRemaining()
	return err
}

func (p *S2CCustomQueryPacket) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteVarInt(p.MessageID); err != nil {
		return err
	}
	if err := buf.WriteIdentifier(p.Channel); err != nil {
		return err
	}
	return buf.WriteFixedByteArray(p.Payload)
}
