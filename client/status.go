package client

import (
	"fmt"
	"time"

	jp "github.com/go-mclib/client/java_protocol"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
	"github.com/go-mclib/client/java_protocol/packets"
)

// Status requests the server list entry. The connection must have the
// status intent. Consumes frames from the inbound queue, so the caller
// should be the sole consumer.
func (c *Client) Status() (string, error) {
	if c.Intent() != packets.IntentStatus {
		return "", fmt.Errorf("status requires the status intent")
	}

	if err := c.SendPacket(&packets.C2SStatusRequestPacket{}); err != nil {
		return "", err
	}

	for {
		raw, err := c.PeekPacket()
		if err != nil {
			return "", err
		}
		if raw.PacketID != (&packets.S2CStatusResponsePacket{}).ID() {
			c.debugf("skipping packet 0x%02X while awaiting status response", int(raw.PacketID))
			continue
		}

		response, err := jp.ReadPacket[packets.S2CStatusResponsePacket](raw)
		if err != nil {
			return "", fmt.Errorf("failed to parse status response: %w", err)
		}
		return string(response.JSON), nil
	}
}

// Ping measures the status-phase round trip. Call after Status; vanilla
// servers close the connection once they answer the ping.
func (c *Client) Ping() (time.Duration, error) {
	if c.Intent() != packets.IntentStatus {
		return 0, fmt.Errorf("ping requires the status intent")
	}

	start := time.Now()
	payload := ns.Int64(start.UnixMilli())

	if err := c.SendPacket(&packets.C2SPingRequestPacket{Timestamp: payload}); err != nil {
		return 0, err
	}

	for {
		raw, err := c.PeekPacket()
		if err != nil {
			return 0, err
		}
		if raw.PacketID != (&packets.S2CPongResponsePacket{}).ID() {
			continue
		}

		pong, err := jp.ReadPacket[packets.S2CPongResponsePacket](raw)
		if err != nil {
			return 0, fmt.Errorf("failed to parse pong response: %w", err)
		}
		if pong.Payload != payload {
			return 0, fmt.Errorf("pong payload mismatch: sent %d, got %d", int64(payload), int64(pong.Payload))
		}
		return time.Since(start), nil
	}
}
