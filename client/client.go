// Package client implements the connection runtime of the Java Edition
// protocol engine: socket ownership, a single reader goroutine feeding
// the packet decoder, a serialized send surface, an inbound frame queue
// for consumers, and the login state machine.
package client

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"

	"github.com/google/uuid"

	jp "github.com/go-mclib/client/java_protocol"
	ns "github.com/go-mclib/client/java_protocol/net_structures"
	"github.com/go-mclib/client/java_protocol/packets"
)

var (
	// ErrClosed is returned by blocking calls when the connection closed.
	ErrClosed = errors.New("connection closed")
	// ErrIntentAlreadySet is returned by a second SetIntent call.
	ErrIntentAlreadySet = errors.New("intent already set")
	// ErrTransferUnsupported is returned for the transfer intent.
	ErrTransferUnsupported = errors.New("transfer intent is not supported")
	// ErrNoLoginIntent is returned by AttemptLogin before SetIntent(IntentLogin).
	ErrNoLoginIntent = errors.New("login requires the login intent")
	// ErrDisconnected is returned when the server ended the session; the
	// disconnect reason, if any, is attached to the error message.
	ErrDisconnected = errors.New("disconnected by server")
)

// Authenticator performs the out-of-band session validation a server
// demands when its encryption request sets should_authenticate. The
// auth package provides the Mojang/Microsoft implementation.
type Authenticator interface {
	// JoinServer announces the pending join for the computed server hash.
	JoinServer(serverHash string) error
}

// Client is one connection to a Java Edition server.
//
// The reader goroutine exclusively owns the decoder and drives every
// protocol phase change after the handshake (SetIntent makes the first
// one); SendPacket may be called from any goroutine and serializes on
// the encoder lock, which also fixes wire order. Every decoded frame is
// appended to the inbound queue, including frames the login state
// machine fully handled, so higher layers can observe handshake traffic.
type Client struct {
	id   uuid.UUID
	conn net.Conn
	host string
	port uint16

	logger *log.Logger
	debug  bool

	encMu   sync.Mutex
	encoder *jp.PacketEncoder

	// reader goroutine only
	decoder *jp.PacketDecoder

	stateMu sync.RWMutex
	state   jp.State
	intent  packets.Intent

	queueMu sync.Mutex
	queue   []*jp.RawPacket
	// coalesced wake-up; consumers re-check the queue under the lock
	packetSignal chan struct{}

	closeOnce sync.Once
	closeCh   chan struct{}

	loginOnce sync.Once
	loginCh   chan struct{}

	profileMu        sync.Mutex
	profile          *ns.GameProfile
	disconnectReason string

	auth     Authenticator
	dialFunc func(addr string) (net.Conn, error)
}

// Option configures a Client before its reader starts.
type Option func(*Client)

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithDebug enables verbose wire traces.
func WithDebug(enabled bool) Option {
	return func(c *Client) { c.debug = enabled }
}

// WithAuthenticator installs the session-validation delegate used when a
// server requires authentication during the key exchange.
func WithAuthenticator(a Authenticator) Option {
	return func(c *Client) { c.auth = a }
}

// Connect resolves address (honoring _minecraft._tcp SRV records), opens
// a TCP connection, and starts the reader goroutine. The returned client
// is in the handshake phase; call SetIntent next.
func Connect(address string, opts ...Option) (*Client, error) {
	host, port, err := ResolveAddress(address)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve address: %w", err)
	}

	c := newClient(host, port, opts...)

	conn, err := c.dial(net.JoinHostPort(host, fmt.Sprint(port)))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s:%d: %w", host, port, err)
	}
	c.conn = conn

	go c.readLoop()
	return c, nil
}

// NewFromConn wraps an already-open connection, for tests and custom
// transports. host and port seed the handshake packet.
func NewFromConn(conn net.Conn, host string, port uint16, opts ...Option) *Client {
	c := newClient(host, port, opts...)
	c.conn = conn
	go c.readLoop()
	return c
}

func newClient(host string, port uint16, opts ...Option) *Client {
	c := &Client{
		id:           uuid.New(),
		host:         host,
		port:         port,
		logger:       log.New(os.Stdout, "[client] ", log.LstdFlags),
		encoder:      jp.NewPacketEncoder(),
		decoder:      jp.NewPacketDecoder(),
		state:        jp.StateHandshake,
		packetSignal: make(chan struct{}, 1),
		closeCh:      make(chan struct{}),
		loginCh:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the random id assigned to this connection.
func (c *Client) ID() uuid.UUID {
	return c.id
}

// State returns the current protocol phase.
func (c *Client) State() jp.State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

func (c *Client) setState(s jp.State) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}

// SetIntent sends the handshake declaring what this connection is for
// and advances the phase accordingly. One-shot: a second call fails.
func (c *Client) SetIntent(intent packets.Intent) error {
	if intent == packets.IntentTransfer {
		return ErrTransferUnsupported
	}
	if intent != packets.IntentStatus && intent != packets.IntentLogin {
		return fmt.Errorf("invalid intent: %d", int32(intent))
	}

	c.stateMu.Lock()
	if c.intent != 0 {
		c.stateMu.Unlock()
		return ErrIntentAlreadySet
	}
	c.intent = intent
	c.stateMu.Unlock()

	err := c.SendPacket(&packets.C2SIntentionPacket{
		ProtocolVersion: packets.ProtocolVersion,
		ServerAddress:   ns.String(c.host),
		ServerPort:      ns.Uint16(c.port),
		Intent:          intent,
	})
	if err != nil {
		return err
	}

	switch intent {
	case packets.IntentStatus:
		c.setState(jp.StateStatus)
	case packets.IntentLogin:
		c.setState(jp.StateLogin)
	}
	return nil
}

// Intent returns the declared intent, zero if none yet.
func (c *Client) Intent() packets.Intent {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.intent
}

// AttemptLogin sends Login Start for name with a random profile UUID and
// blocks until login completes or the connection closes.
func (c *Client) AttemptLogin(name string) (*ns.GameProfile, error) {
	if c.Intent() != packets.IntentLogin {
		return nil, ErrNoLoginIntent
	}

	random := uuid.New()
	profileUUID, err := ns.UUIDFromBytes(random[:])
	if err != nil {
		return nil, err
	}

	err = c.SendPacket(&packets.C2SHelloPacket{
		Name:       ns.String(name),
		PlayerUUID: profileUUID,
	})
	if err != nil {
		return nil, err
	}

	select {
	case <-c.loginCh:
		return c.Profile(), nil
	case <-c.closeCh:
		if reason := c.DisconnectReason(); reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrDisconnected, reason)
		}
		return nil, ErrDisconnected
	}
}

// SendPacket frames and writes a packet. Concurrent calls serialize on
// the encoder lock; wire order is the order the lock was acquired.
func (c *Client) SendPacket(p jp.Packet) error {
	if c.isClosed() {
		return ErrClosed
	}

	c.encMu.Lock()
	defer c.encMu.Unlock()

	if err := c.encoder.AppendPacket(p); err != nil {
		return fmt.Errorf("failed to encode packet: %w", err)
	}
	data := c.encoder.Take()

	c.debugf("-> send: state=%v id=0x%02X len=%d", c.State(), int(p.ID()), len(data))

	if _, err := c.conn.Write(data); err != nil {
		c.Close()
		return fmt.Errorf("failed to write packet: %w", err)
	}
	return nil
}

// PeekPacket returns the next inbound frame in wire order, blocking
// until one arrives. Returns ErrClosed once the connection is closed and
// the queue is drained.
func (c *Client) PeekPacket() (*jp.RawPacket, error) {
	for {
		if p := c.popPacket(); p != nil {
			return p, nil
		}

		select {
		case <-c.packetSignal:
		case <-c.closeCh:
			// a frame may have been enqueued between the pop and the close
			if p := c.popPacket(); p != nil {
				return p, nil
			}
			return nil, ErrClosed
		}
	}
}

func (c *Client) popPacket() *jp.RawPacket {
	c.queueMu.Lock()
	defer c.queueMu.Unlock()
	if len(c.queue) == 0 {
		return nil
	}
	p := c.queue[0]
	c.queue = c.queue[1:]
	return p
}

func (c *Client) enqueue(p *jp.RawPacket) {
	c.queueMu.Lock()
	c.queue = append(c.queue, p)
	c.queueMu.Unlock()

	select {
	case c.packetSignal <- struct{}{}:
	default:
	}
}

// Profile returns the game profile assigned by Login Success, nil before
// then.
func (c *Client) Profile() *ns.GameProfile {
	c.profileMu.Lock()
	defer c.profileMu.Unlock()
	return c.profile
}

// DisconnectReason returns the server's disconnect reason, if one was
// received.
func (c *Client) DisconnectReason() string {
	c.profileMu.Lock()
	defer c.profileMu.Unlock()
	return c.disconnectReason
}

// Closed returns a channel closed when the connection closes.
func (c *Client) Closed() <-chan struct{} {
	return c.closeCh
}

func (c *Client) isClosed() bool {
	select {
	case <-c.closeCh:
		return true
	default:
		return false
	}
}

// Close tears the connection down. Idempotent; all waiters observe the
// close exactly once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.debugf("closed connection %s", c.id)
	})
}

// readLoop is the single reader goroutine: pull frames out of the
// decoder, run them through the state machine, hand them to consumers;
// refill the decoder from the socket when it runs dry.
func (c *Client) readLoop() {
	defer c.Close()

	buf := make([]byte, 4096)
	for {
		if c.isClosed() {
			return
		}

		packet, err := c.decoder.Decode()
		if err != nil {
			c.logf("failed to decode packet: %v", err)
			return
		}
		if packet != nil {
			c.handlePacket(packet)
			continue
		}

		c.decoder.Reserve(len(buf))
		n, err := c.conn.Read(buf)
		if n > 0 {
			c.decoder.QueueBytes(buf[:n])
		}
		if err != nil {
			if err != io.EOF && !c.isClosed() {
				c.logf("failed to read from connection: %v", err)
			}
			return
		}
	}
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	} else {
		log.Printf(format, args...)
	}
}

func (c *Client) debugf(format string, args ...any) {
	if c.debug {
		c.logf(format, args...)
	}
}
