// Package login implements the LM application substream: authentication
// against a login server and retrieval of its world server list.
package login

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pixelbound/equilibre/pkg/net/app"
	"github.com/pixelbound/equilibre/pkg/net/message"
)

// ServerInfo is one entry from a ServerListResponse.
type ServerInfo struct {
	Host      string
	Type      uint32
	RuntimeID uint32
	Name      string
	Locale1   string
	Locale2   string
	Status    uint32
	Players   uint32
}

// Client is a login-server session: thin orchestration of app.Client plus
// the login-specific request bodies and response layouts.
type Client struct {
	app *app.Client
}

// New creates an unconnected login Client.
func New() *Client {
	return &Client{app: app.New(message.NamespaceLogin)}
}

// Connect dials the login server at addr ("host:port").
func (c *Client) Connect(addr string) error { return c.app.Connect(addr) }

// Disconnect ends the session.
func (c *Client) Disconnect() error { return c.app.Disconnect() }

// BeginGetChatMessage requests the server's chat-of-the-day message.
func (c *Client) BeginGetChatMessage() error {
	req := message.New(message.NamespaceLogin, message.LMChatMessageRequest)
	req.AddParam("UnknownA", 4, 2)
	req.AddParam("UnknownB", 4, 0)
	req.AddParam("UnknownC", 2, 8)
	req.AddParam("UnknownD", 2, 0)
	return c.app.Send(req)
}

// EndGetChatMessage waits for ChatMessageResponse and returns its body.
func (c *Client) EndGetChatMessage() ([]byte, error) {
	resp, err := c.waitFor(message.LMChatMessageResp)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// BeginLogin sends LoginRequest with the user's credentials, padded so the
// total application packet length is of the form 20+8k with at least one
// trailing NUL.
func (c *Client) BeginLogin(username, password string) error {
	req := message.New(message.NamespaceLogin, message.LMLoginRequest)
	req.AddParam("UnknownA", 4, 3)
	req.AddParam("UnknownB", 4, 2)
	req.AddParam("UnknownC", 2, 0)

	packetSize := len(password) + len(username) + 14
	allowedSize := 20
	for allowedSize < packetSize {
		allowedSize += 8
	}
	padding := allowedSize - packetSize + 1

	var body strings.Builder
	body.WriteString(password)
	body.WriteByte(0)
	body.WriteString(username)
	body.Write(make([]byte, padding))
	req.Body = []byte(body.String())

	return c.app.Send(req)
}

// EndLogin waits for LoginResponse and returns (success, userID, sessionKey).
func (c *Client) EndLogin() (bool, int32, string, error) {
	resp, err := c.waitFor(message.LMLoginResponse)
	if err != nil {
		return false, 0, "", err
	}
	if len(resp.Body) < 32 {
		return false, 0, "", fmt.Errorf("login: LoginResponse body too short")
	}
	status := binary.LittleEndian.Uint32(resp.Body[0:4])
	userID := int32(binary.LittleEndian.Uint32(resp.Body[8:12]))
	key := string(trimNul(resp.Body[12:28]))

	if status != 1 || userID == -1 {
		return false, userID, "", nil
	}
	return true, userID, key, nil
}

// BeginListServers requests the world server list.
func (c *Client) BeginListServers() error {
	req := message.New(message.NamespaceLogin, message.LMServerListRequest)
	req.AddParam("UnknownA", 4, 4)
	req.AddParam("UnknownB", 4, 0)
	req.AddParam("UnknownC", 2, 0)
	return c.app.Send(req)
}

// EndListServers waits for ServerListResponse and parses its record stream.
func (c *Client) EndListServers() ([]ServerInfo, error) {
	resp, err := c.waitFor(message.LMServerListResponse)
	if err != nil {
		return nil, err
	}

	var servers []ServerInfo
	pos := 0
	body := resp.Body
	for pos < len(body) {
		var s ServerInfo
		var err error
		if s.Host, pos, err = readCString(body, pos); err != nil {
			return servers, err
		}
		if s.Type, pos, err = readUint32(body, pos); err != nil {
			return servers, err
		}
		if s.RuntimeID, pos, err = readUint32(body, pos); err != nil {
			return servers, err
		}
		if s.Name, pos, err = readCString(body, pos); err != nil {
			return servers, err
		}
		if s.Locale1, pos, err = readCString(body, pos); err != nil {
			return servers, err
		}
		if s.Locale2, pos, err = readCString(body, pos); err != nil {
			return servers, err
		}
		if s.Status, pos, err = readUint32(body, pos); err != nil {
			return servers, err
		}
		if s.Players, pos, err = readUint32(body, pos); err != nil {
			return servers, err
		}
		servers = append(servers, s)
	}
	return servers, nil
}

// BeginPlay requests entry into a chosen world server.
func (c *Client) BeginPlay(serverID, sequence uint32) error {
	req := message.New(message.NamespaceLogin, message.LMPlayRequest)
	req.AddParam("Sequence", 2, sequence)
	req.AddParam("UnknownA", 4, 0)
	req.AddParam("UnknownB", 4, 0)
	req.AddParam("ServerID", 4, serverID)
	return c.app.Send(req)
}

// PlayResult is the decoded outcome of a PlayResponse.
type PlayResult struct {
	Allowed  bool
	Status   uint32
	ServerID uint32
	Sequence uint32
}

// EndPlay waits for PlayResponse and decodes the play result.
func (c *Client) EndPlay() (PlayResult, error) {
	resp, err := c.waitFor(message.LMPlayResponse)
	if err != nil {
		return PlayResult{}, err
	}

	fields := message.New(message.NamespaceLogin, message.LMPlayResponse)
	fields.AddParam("Sequence", 4, 0)
	for i := 1; i <= 6; i++ {
		fields.AddParam(fmt.Sprintf("UnknownA%d", i), 1, 0)
	}
	fields.AddParam("Allowed", 1, 0)
	fields.AddParam("Status", 2, 0)
	for i := 1; i <= 3; i++ {
		fields.AddParam(fmt.Sprintf("UnknownB%d", i), 1, 0)
	}
	fields.AddParam("ServerID", 4, 0)
	if err := fields.Deserialize(resp.Body); err != nil {
		return PlayResult{}, err
	}

	allowed, _ := fields.Param("Allowed")
	status, _ := fields.Param("Status")
	serverID, _ := fields.Param("ServerID")
	sequence, _ := fields.Param("Sequence")
	return PlayResult{
		Allowed:  allowed == 1,
		Status:   status,
		ServerID: serverID,
		Sequence: sequence,
	}, nil
}

func (c *Client) waitFor(wantType uint16) (*message.Message, error) {
	msg, err := c.app.Receive()
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, fmt.Errorf("login: session closed while waiting for 0x%02x", wantType)
	}
	if msg.Type != wantType {
		return nil, fmt.Errorf("login: expected message 0x%02x, got %s", wantType, msg)
	}
	return msg, nil
}

func readCString(data []byte, pos int) (string, int, error) {
	for i := pos; i < len(data); i++ {
		if data[i] == 0 {
			return string(data[pos:i]), i + 1, nil
		}
	}
	return "", 0, fmt.Errorf("login: unterminated string in record")
}

func readUint32(data []byte, pos int) (uint32, int, error) {
	if pos+4 > len(data) {
		return 0, 0, fmt.Errorf("login: record truncated")
	}
	return binary.LittleEndian.Uint32(data[pos : pos+4]), pos + 4, nil
}

func trimNul(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}
