package client

import (
	"fmt"

	mc_crypto "github.com/go-mclib/client/crypto"
	jp "github.com/go-mclib/client/java_protocol"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
	"github.com/go-mclib/client/java_protocol/packets"
)

// handlePacket runs one inbound frame through the phase state machine,
// then hands it to the inbound queue. The state machine observes every
// frame before consumers do, and consumers see every frame, even ones
// the login flow fully handled, so handshake traffic stays observable.
func (c *Client) handlePacket(p *jp.RawPacket) {
	switch c.State() {
	case jp.StateLogin:
		if err := c.handleLoginPacket(p); err != nil {
			c.logf("login failed: %v", err)
			c.enqueue(p)
			c.Close()
			return
		}
	case jp.StateStatus, jp.StateConfiguration, jp.StatePlay:
		// forwarded to consumers untouched
		c.debugf("<- recv: state=%v id=0x%02X len=%d", c.State(), int(p.PacketID), len(p.Data))
	default:
		c.logf("unexpected packet 0x%02X in state %v", int(p.PacketID), c.State())
	}

	c.enqueue(p)
}

// handleLoginPacket drives the login phase: key exchange, compression
// activation, and the acknowledgement that moves the connection to
// configuration. A non-nil error is fatal to the connection.
func (c *Client) handleLoginPacket(p *jp.RawPacket) error {
	switch p.PacketID {
	case (&packets.S2CLoginDisconnectPacket{}).ID():
		disconnect, err := jp.ReadPacket[packets.S2CLoginDisconnectPacket](p)
		if err != nil {
			return fmt.Errorf("failed to parse disconnect: %w", err)
		}
		reason := string(disconnect.Reason)
		if tc, err := ns.TextComponentFromJSON([]byte(disconnect.Reason)); err == nil {
			reason = tc.PlainText()
		}
		c.profileMu.Lock()
		c.disconnectReason = reason
		c.profileMu.Unlock()
		return fmt.Errorf("%w: %s", ErrDisconnected, reason)

	case (&packets.S2CHelloPacket{}).ID():
		hello, err := jp.ReadPacket[packets.S2CHelloPacket](p)
		if err != nil {
			return fmt.Errorf("failed to parse encryption request: %w", err)
		}
		return c.upgradeToEncryption(hello)

	case (&packets.S2CLoginFinishedPacket{}).ID():
		finished, err := jp.ReadPacket[packets.S2CLoginFinishedPacket](p)
		if err != nil {
			return fmt.Errorf("failed to parse login success: %w", err)
		}

		c.profileMu.Lock()
		profile := finished.Profile
		c.profile = &profile
		c.profileMu.Unlock()

		if err := c.SendPacket(&packets.C2SLoginAcknowledgedPacket{}); err != nil {
			return fmt.Errorf("failed to acknowledge login: %w", err)
		}
		c.setState(jp.StateConfiguration)
		c.loginOnce.Do(func() { close(c.loginCh) })
		c.debugf("login finished: %s (%s)", profile.Username, profile.UUID)
		return nil

	case (&packets.S2CLoginCompressionPacket{}).ID():
		compression, err := jp.ReadPacket[packets.S2CLoginCompressionPacket](p)
		if err != nil {
			return fmt.Errorf("failed to parse set compression: %w", err)
		}
		return c.activateCompression(int(compression.Threshold))

	case (&packets.S2CCustomQueryPacket{}).ID():
		query, err := jp.ReadPacket[packets.S2CCustomQueryPacket](p)
		if err != nil {
			return fmt.Errorf("failed to parse plugin request: %w", err)
		}
		// vanilla requires an "I don't understand" answer to proceed
		c.debugf("answering login plugin request on %s", query.Channel)
		return c.SendPacket(&packets.C2SCustomQueryAnswerPacket{
			MessageID: query.MessageID,
			Payload:   ns.None[ns.ByteArray](),
		})

	default:
		c.logf("unknown login packet 0x%02X (%d bytes)", int(p.PacketID), len(p.Data))
		return nil
	}
}

// upgradeToEncryption performs the mid-handshake transport upgrade:
// generate the shared secret, install the inbound cipher before any
// further bytes are queued, announce the join if the server demands
// authentication, then flush the Key packet in plaintext and install the
// outbound cipher, in that order, under the encoder lock.
func (c *Client) upgradeToEncryption(hello *packets.S2CHelloPacket) error {
	secret, err := mc_crypto.GenerateSharedSecret()
	if err != nil {
		return err
	}

	// inbound first: the server starts encrypting right after it sees
	// the Key packet, and we must not decode those bytes as plaintext
	if err := c.decoder.SetDecryption(secret); err != nil {
		return fmt.Errorf("failed to install decoder cipher: %w", err)
	}

	encryptedSecret, err := mc_crypto.EncryptWithPublicKey(hello.PublicKey, secret)
	if err != nil {
		return fmt.Errorf("failed to encrypt shared secret: %w", err)
	}
	encryptedChallenge, err := mc_crypto.EncryptWithPublicKey(hello.PublicKey, hello.Challenge)
	if err != nil {
		return fmt.Errorf("failed to encrypt challenge: %w", err)
	}

	if bool(hello.ShouldAuthenticate) && c.auth != nil {
		hash := mc_crypto.ServerHash(string(hello.ServerID), secret, hello.PublicKey)
		if err := c.auth.JoinServer(hash); err != nil {
			return fmt.Errorf("session authentication failed: %w", err)
		}
	}

	key := &packets.C2SKeyPacket{
		SharedSecret: encryptedSecret,
		VerifyToken:  encryptedChallenge,
	}

	c.encMu.Lock()
	defer c.encMu.Unlock()

	if err := c.encoder.AppendPacket(key); err != nil {
		return fmt.Errorf("failed to encode key packet: %w", err)
	}
	data := c.encoder.Take()
	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("failed to write key packet: %w", err)
	}

	// everything after the Key packet goes out encrypted
	if err := c.encoder.SetEncryption(secret); err != nil {
		return fmt.Errorf("failed to install encoder cipher: %w", err)
	}

	c.debugf("transport encryption enabled")
	return nil
}

// activateCompression switches both codec halves to the compressed frame
// layout. A negative threshold turns compression back off; re-delivery
// of the same packet is harmless.
func (c *Client) activateCompression(threshold int) error {
	c.encMu.Lock()
	defer c.encMu.Unlock()

	if err := c.encoder.SetCompression(threshold, jp.DefaultCompressionLevel); err != nil {
		return err
	}
	c.decoder.SetCompression(threshold >= 0)

	c.debugf("compression enabled (threshold=%d)", threshold)
	return nil
}
