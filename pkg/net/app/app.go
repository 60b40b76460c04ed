// Package app implements the high-level handshake and fragment reassembly
// shared by the login (LM) and world (WM) application substreams that ride
// on top of a session.Client.
package app

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/pixelbound/equilibre/pkg/net/message"
	"github.com/pixelbound/equilibre/pkg/net/session"
)

// Client is a high-level interface to send and receive application
// messages (LM or WM) over a reliable session.
type Client struct {
	Namespace  message.Namespace
	Compressed bool
	SessionID  uint32

	session *session.Client

	pendingFragments [][]byte
	fragTotalSize    int
	fragCurrentSize  int
}

// New creates a Client for the given application namespace (LM or WM).
// WM sessions are compressed; LM sessions are not, matching the client.
func New(ns message.Namespace) *Client {
	return &Client{
		Namespace:  ns,
		Compressed: ns == message.NamespaceWorld,
		SessionID:  randomSessionID(),
	}
}

func randomSessionID() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	return binary.BigEndian.Uint32(b[:])
}

// Connect dials addr and performs the SM handshake: SessionRequest,
// expect SessionResponse carrying the matching session ID and the
// server's CRC key.
func (c *Client) Connect(addr string) error {
	if c.session != nil {
		return nil
	}
	sess, err := session.Dial(addr)
	if err != nil {
		return err
	}

	request := message.New(message.NamespaceSession, message.SMSessionRequest)
	request.AddParam("UnknownA", 4, 0x00000002)
	request.AddParam("Session", 4, c.SessionID)
	request.AddParam("MaxLength", 4, 0x00000200)
	if err := sess.Send(request); err != nil {
		sess.Close()
		return fmt.Errorf("app: sending session request: %w", err)
	}

	response, err := sess.Receive()
	if err != nil {
		sess.Close()
		return fmt.Errorf("app: waiting for session response: %w", err)
	}
	if response.Type != message.SMSessionResponse {
		sess.Close()
		return fmt.Errorf("app: server did not respond with SessionResponse")
	}
	responseID, _ := response.Param("Session")
	if responseID != c.SessionID {
		sess.Close()
		return fmt.Errorf("app: server responded with different session id: 0x%x, ours: 0x%x", responseID, c.SessionID)
	}

	key, _ := response.Param("Key")
	sess.CRCKey = key
	sess.Compressed = c.Compressed
	c.session = sess
	return nil
}

// Disconnect sends SessionDisconnect and closes the socket.
func (c *Client) Disconnect() error {
	if c.session == nil {
		return nil
	}
	defer func() {
		c.session.Close()
		c.session = nil
	}()

	request := message.New(message.NamespaceSession, message.SMSessionDisconnect)
	request.AddParam("Session", 4, c.SessionID)
	request.AddParam("UnknownA", 2, 6)
	return c.session.Send(request)
}

// Send wraps an LM/WM message in an SM_ApplicationPacket and sends it.
func (c *Client) Send(appMsg *message.Message) error {
	if appMsg.Namespace != c.Namespace {
		return fmt.Errorf("app: not a %s message", c.Namespace)
	}
	sessionMsg := message.New(message.NamespaceSession, message.SMApplicationPacket)
	sessionMsg.Body = appMsg.Serialize()
	return c.session.Send(sessionMsg)
}

// Receive blocks until a complete application message has arrived,
// reassembling fragmented packets as needed.
func (c *Client) Receive() (*message.Message, error) {
	for {
		sessionMsg, err := c.session.Receive()
		if err != nil {
			return nil, err
		}
		if sessionMsg == nil || sessionMsg.Type == message.SMSessionDisconnect {
			return nil, nil
		}

		switch sessionMsg.Type {
		case message.SMApplicationPacket:
			return c.parsePacket(sessionMsg.Body)
		case message.SMFragment:
			if len(c.pendingFragments) == 0 {
				if len(sessionMsg.Body) < 4 {
					return nil, fmt.Errorf("app: first fragment too short for size header")
				}
				c.fragTotalSize = int(binary.BigEndian.Uint32(sessionMsg.Body[0:4]))
				c.fragCurrentSize = len(sessionMsg.Body) - 4
				c.pendingFragments = append(c.pendingFragments, sessionMsg.Body[4:])
			} else {
				c.pendingFragments = append(c.pendingFragments, sessionMsg.Body)
				c.fragCurrentSize += len(sessionMsg.Body)
			}
			if c.fragCurrentSize == c.fragTotalSize {
				complete := joinFragments(c.pendingFragments)
				c.pendingFragments = nil
				c.fragCurrentSize = 0
				c.fragTotalSize = 0
				return c.parsePacket(complete)
			}
		default:
			return nil, fmt.Errorf("app: unexpected session message: %s", sessionMsg)
		}
	}
}

func joinFragments(fragments [][]byte) []byte {
	total := 0
	for _, f := range fragments {
		total += len(f)
	}
	out := make([]byte, 0, total)
	for _, f := range fragments {
		out = append(out, f...)
	}
	return out
}

// parsePacket reads the 2-byte little-endian message type and builds the
// matching LM/WM Message, leaving header fields for the caller to know
// about (this layer only tags the opcode; callers wrap deeper parsing).
func (c *Client) parsePacket(packet []byte) (*message.Message, error) {
	if len(packet) < 2 {
		return nil, fmt.Errorf("app: packet too short")
	}
	msgType := binary.LittleEndian.Uint16(packet[0:2])
	msg := message.New(c.Namespace, msgType)
	msg.Body = packet[2:]
	return msg, nil
}
