package packets

// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login

import (
	jp "github.com/go-mclib/client/java_protocol"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
)

// C2SHelloPacket represents "Login Start" (serverbound/login).
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Hello
type C2SHelloPacket struct {
	// Player's username, max 16 characters.
	Name ns.String
	// UUID of the player logging in. Unused by the vanilla server.
	PlayerUUID ns.UUID
}

func (p *C2SHelloPacket) ID() ns.VarInt   { return 0x00 }
func (p *C2SHelloPacket) State() jp.State { return jp.StateLogin }
func (p *C2SHelloPacket) Bound() jp.Bound { return jp.C2S }

func (p *C2SHelloPacket) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.Name, err = buf.ReadString(16); err != nil {
		return err
	}
	p.PlayerUUID, err = buf.ReadUUID()
	return err
}

func (p *C2SHelloPacket) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteString(p.Name); err != nil {
		return err
	}
	return buf.WriteUUID(p.PlayerUUID)
}

// C2SKeyPacket represents "Encryption Response" (serverbound/login).
//
// Both fields are RSA-PKCS#1 v1.5 ciphertexts under the server's public
// key: the 16-byte shared secret and the echoed verify challenge.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Encryption_Response
// https://minecraft.wiki/w/Protocol_encryption
type C2SKeyPacket struct {
	SharedSecret ns.ByteArray
	VerifyToken  ns.ByteArray
}

func (p *C2SKeyPacket) ID() ns.VarInt   { return 0x01 }
func (p *C2SKeyPacket) State() jp.State { return jp.StateLogin }
func (p *C2SKeyPacket) Bound() jp.Bound { return jp.C2S }

func (p *C2SKeyPacket) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.SharedSecret, err = buf.ReadByteArray(0); err != nil {
		return err
	}
	p.VerifyToken, err = buf.ReadByteArray(0)
	return err
}

func (p *C2SKeyPacket) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteByteArray(p.SharedSecret); err != nil {
		return err
	}
	return buf.WriteByteArray(p.VerifyToken)
}

// C2SCustomQueryAnswerPacket represents "Login Plugin Response"
// (serverbound/login). An absent payload tells the server the client did
// not understand the request, which vanilla requires to proceed.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Plugin_Response
type C2SCustomQueryAnswerPacket struct {
	// Should match the MessageID from the server's query.
	MessageID ns.VarInt
	Payload   ns.PrefixedOptional[ns.ByteArray]
}

func (p *C2SCustomQueryAnswerPacket) ID() ns.VarInt   { return 0x02 }
func (p *C2SCustomQueryAnswerPacket) State() jp.State { return jp.StateLogin }
func (p *C2SCustomQueryAnswerPacket) Bound() jp.Bound { return jp.C2S }

func (p *C2SCustomQueryAnswerPacket) Read(buf *ns.PacketBuffer) error {
	var err error
	if p.MessageID, err = buf.ReadVarInt(); err != nil {
		return err
	}
	return p.Payload.DecodeWith(buf, func(b *ns.PacketBuffer) (ns.ByteArray, error) {
		// length is implied by the packet length
		return b.ReadRemaining()
	})
}

func (p *C2SCustomQueryAnswerPacket) Write(buf *ns.PacketBuffer) error {
	if err := buf.WriteVarInt(p.MessageID); err != nil {
		return err
	}
	return p.Payload.EncodeWith(buf, func(b *ns.PacketBuffer, v ns.ByteArray) error {
		return b.WriteFixedByteArray(v)
	})
}

// C2SLoginAcknowledgedPacket represents "Login Acknowledged"
// (serverbound/login). Has no fields.
//
// > Acknowledgement to the Login Success packet sent by the server.
// This packet switches the connection state to configuration.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Packets#Login_Acknowledged
type C2SLoginAcknowledgedPacket struct{}

func (p *C2SLoginAcknowledgedPacket) ID() ns.VarInt                { return 0x03 }
func (p *C2SLoginAcknowledgedPacket) State() jp.State              { return jp.StateLogin }
func (p *C2SLoginAcknowledgedPacket) Bound() jp.Bound              { return jp.C2S }
func (p *C2SLoginAcknowledgedPacket) Read(*ns.PacketBuffer) error  { return nil }
func (p *C2SLoginAcknowledgedPacket) Write(*ns.PacketBuffer) error { return nil }
