// Package world implements the WM application substream: world-server
// login and character selection, up to the point the server hands off to
// a zone server.
package world

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/pixelbound/equilibre/pkg/net/app"
	"github.com/pixelbound/equilibre/pkg/net/message"
)

// Character is one entry decoded from SendCharInfo.
type Character struct {
	Name  string
	Level uint8
	Class uint8
	Race  uint32
	Zone  uint16
}

// Client is a world-server session: thin orchestration of app.Client plus
// the world-specific request bodies and response layouts.
type Client struct {
	app *app.Client
}

// New creates an unconnected world Client. World sessions are always
// compressed.
func New() *Client {
	return &Client{app: app.New(message.NamespaceWorld)}
}

// Connect dials the world server at addr ("host:9000").
func (c *Client) Connect(addr string) error { return c.app.Connect(addr) }

// Disconnect ends the session.
func (c *Client) Disconnect() error { return c.app.Disconnect() }

// BeginLogin sends SendLoginInfo with the account sequence id and session
// key handed off by the login server, and the zoning flag.
func (c *Client) BeginLogin(sequence uint32, sessionKey string, zoning bool) error {
	req := message.New(message.NamespaceWorld, message.WMSendLoginInfo)

	var chunks []string
	chunks = append(chunks, strconv.FormatUint(uint64(sequence), 10), "\x00", sessionKey, "\x00")

	written := 0
	for _, chunk := range chunks {
		written += len(chunk)
	}
	padding := 124 + 64 - written
	if padding < 0 {
		return fmt.Errorf("world: session id/key too long to fit login info body")
	}
	chunks = append(chunks, strings.Repeat("\x00", padding))
	written += padding

	if zoning {
		chunks = append(chunks, "\x01")
	} else {
		chunks = append(chunks, "\x00")
	}
	written++

	padding2 := 464 - written
	if padding2 < 0 {
		return fmt.Errorf("world: login info body exceeds fixed length")
	}
	chunks = append(chunks, strings.Repeat("\x00", padding2))

	req.Body = []byte(strings.Join(chunks, ""))
	return c.app.Send(req)
}

// WaitLogServer blocks for the server's LogServer acknowledgement that
// starts character selection.
func (c *Client) WaitLogServer() error {
	_, err := c.waitFor(message.WMLogServer)
	return err
}

// WaitCharInfo blocks for SendCharInfo and decodes the character array.
// The wire layout of individual character records beyond name/level/
// class/race/zone is server-version specific and not otherwise
// constrained by this package; callers needing more fields should read
// msg.Body directly via Receive.
func (c *Client) WaitCharInfo() ([]Character, error) {
	resp, err := c.waitFor(message.WMSendCharInfo)
	if err != nil {
		return nil, err
	}

	const recordSize = 1 + 1 + 4 + 2 + 64 // level, class, race, zone, name(64, NUL padded)
	var chars []Character
	pos := 0
	for pos+recordSize <= len(resp.Body) {
		rec := resp.Body[pos : pos+recordSize]
		c := Character{
			Level: rec[0],
			Class: rec[1],
			Race:  binary.LittleEndian.Uint32(rec[2:6]),
			Zone:  binary.LittleEndian.Uint16(rec[6:8]),
			Name:  string(trimNul(rec[8:])),
		}
		chars = append(chars, c)
		pos += recordSize
	}
	return chars, nil
}

// Receive exposes the underlying application-message stream, for callers
// that need to watch for ZoneServerInfo or other opcodes this package
// doesn't build typed helpers for.
func (c *Client) Receive() (*message.Message, error) {
	return c.app.Receive()
}

func (c *Client) waitFor(wantType uint16) (*message.Message, error) {
	for {
		msg, err := c.app.Receive()
		if err != nil {
			return nil, err
		}
		if msg == nil {
			return nil, fmt.Errorf("world: session closed while waiting for 0x%04x", wantType)
		}
		if msg.Type == wantType {
			return msg, nil
		}
	}
}

func trimNul(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}
