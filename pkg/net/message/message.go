// Package message defines the self-describing message model shared by the
// session layer (SM) and its two application substreams, login (LM) and
// world (WM).
package message

import (
	"encoding/binary"
	"fmt"
)

// Namespace identifies which opcode table and byte order a Message uses.
type Namespace string

const (
	NamespaceSession Namespace = "SM"
	NamespaceLogin   Namespace = "LM"
	NamespaceWorld   Namespace = "WM"
)

// Session message types.
const (
	SMSessionRequest    = 0x01
	SMSessionResponse   = 0x02
	SMCombined          = 0x03
	SMSessionDisconnect = 0x05
	SMKeepAlive         = 0x06
	SMApplicationPacket = 0x09
	SMFragment          = 0x0d
	SMOutOfOrderAck     = 0x11
	SMAck               = 0x15
)

// SMNames maps session message types to their mnemonic, for pretty-printing.
var SMNames = map[uint16]string{
	SMSessionRequest:    "SessionRequest",
	SMSessionResponse:   "SessionResponse",
	SMCombined:          "Combined",
	SMSessionDisconnect: "SessionDisconnect",
	SMKeepAlive:         "KeepAlive",
	SMApplicationPacket: "ApplicationPacket",
	SMFragment:          "Fragment",
	SMOutOfOrderAck:     "OutOfOrderAck",
	SMAck:               "Ack",
}

// Login message types.
const (
	LMChatMessageRequest = 0x01
	LMLoginRequest       = 0x02
	LMUnknownRequest     = 0x03
	LMServerListRequest  = 0x04
	LMPlayRequest        = 0x0d
	LMChatMessageResp    = 0x16
	LMLoginResponse      = 0x17
	LMServerListResponse = 0x18
	LMPlayResponse       = 0x21
)

var LMNames = map[uint16]string{
	LMChatMessageRequest: "ChatMessageRequest",
	LMLoginRequest:       "LoginRequest",
	LMUnknownRequest:     "UnknownRequest",
	LMServerListRequest:  "ServerListRequest",
	LMPlayRequest:        "PlayRequest",
	LMChatMessageResp:    "ChatMessageResponse",
	LMLoginResponse:      "LoginResponse",
	LMServerListResponse: "ServerListResponse",
	LMPlayResponse:       "PlayResponse",
}

// Play response status codes.
const (
	PlayAllowed   = 101
	PlayDenied    = 326
	PlaySuspended = 337
	PlayBanned    = 338
	PlayWorldFull = 303
)

// World message types (Titanium client).
const (
	WMSendLoginInfo  = 0x4dd0
	WMGuildList      = 0x6957
	WMLogServer      = 0x0fa6
	WMApproveWorld   = 0x3c25
	WMEnterWorld     = 0x7cba
	WMPostEnterWorld = 0x52a4
	WMExpansionInfo  = 0x04ec
	WMSendCharInfo   = 0x4513
	WMMOTD           = 0x024d
	WMSetChatServer  = 0x00d7
	WMSetChatServer2 = 0x6536
	WMZoneServerInfo = 0x044b
)

var WMNames = map[uint16]string{
	WMSendLoginInfo:  "SendLoginInfo",
	WMGuildList:      "GuildList",
	WMLogServer:      "LogServer",
	WMApproveWorld:   "ApproveWorld",
	WMEnterWorld:     "EnterWorld",
	WMPostEnterWorld: "PostEnterWorld",
	WMExpansionInfo:  "ExpansionInfo",
	WMSendCharInfo:   "SendCharInfo",
	WMMOTD:           "MOTD",
	WMSetChatServer:  "SetChatServer",
	WMSetChatServer2: "SetChatServer2",
	WMZoneServerInfo: "ZoneServerInfo",
}

// NamesFor returns the mnemonic table for a namespace.
func NamesFor(ns Namespace) map[uint16]string {
	switch ns {
	case NamespaceSession:
		return SMNames
	case NamespaceLogin:
		return LMNames
	case NamespaceWorld:
		return WMNames
	default:
		return nil
	}
}

// byteOrder returns the wire byte order for a namespace: session messages
// are big-endian, login/world application messages are little-endian.
func byteOrder(ns Namespace) binary.ByteOrder {
	if ns == NamespaceSession {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Param is one fixed-width header field, read/written in declaration order.
type Param struct {
	Name string
	Size int // 1, 2, or 4 bytes
	Value uint32
}

// Message is a self-describing SM/LM/WM message: a 2-byte type, a sequence
// of typed header params, and an opaque body.
type Message struct {
	Namespace Namespace
	Type      uint16
	Params    []Param
	Body      []byte
}

// New creates an empty message of the given namespace and type.
func New(ns Namespace, msgType uint16) *Message {
	return &Message{Namespace: ns, Type: msgType}
}

// AddParam appends a header field of size bytes (1, 2, or 4) with value.
func (m *Message) AddParam(name string, size int, value uint32) {
	m.Params = append(m.Params, Param{Name: name, Size: size, Value: value})
}

// Param looks up a header field by name.
func (m *Message) Param(name string) (uint32, bool) {
	for _, p := range m.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return 0, false
}

// Serialize writes the type, header params, and body to wire bytes.
func (m *Message) Serialize() []byte {
	order := byteOrder(m.Namespace)
	buf := make([]byte, 2, 2+4*len(m.Params)+len(m.Body))
	order.PutUint16(buf[0:2], m.Type)

	for _, p := range m.Params {
		switch p.Size {
		case 1:
			buf = append(buf, byte(p.Value))
		case 2:
			tmp := make([]byte, 2)
			order.PutUint16(tmp, uint16(p.Value))
			buf = append(buf, tmp...)
		case 4:
			tmp := make([]byte, 4)
			order.PutUint32(tmp, p.Value)
			buf = append(buf, tmp...)
		default:
			panic(fmt.Sprintf("message: unsupported param size %d", p.Size))
		}
	}

	return append(buf, m.Body...)
}

// Deserialize reads header params declared on m from data (data excludes
// the 2-byte type, which the caller has already consumed) and assigns any
// trailing bytes to Body.
func (m *Message) Deserialize(data []byte) error {
	order := byteOrder(m.Namespace)
	pos := 0

	for i := range m.Params {
		size := m.Params[i].Size
		if pos+size > len(data) {
			return fmt.Errorf("message: not enough data for param %q", m.Params[i].Name)
		}
		switch size {
		case 1:
			m.Params[i].Value = uint32(data[pos])
		case 2:
			m.Params[i].Value = uint32(order.Uint16(data[pos : pos+2]))
		case 4:
			m.Params[i].Value = order.Uint32(data[pos : pos+4])
		default:
			return fmt.Errorf("message: unsupported param size %d", size)
		}
		pos += size
	}

	if len(data) > pos {
		m.Body = data[pos:]
	}
	return nil
}

// Name returns the mnemonic for this message's type, or a hex fallback.
func (m *Message) Name() string {
	if name, ok := NamesFor(m.Namespace)[m.Type]; ok {
		return name
	}
	return fmt.Sprintf("%s_0x%04x", m.Namespace, m.Type)
}

// String renders the message the way the packet inspector prints it:
// <Name(param=value, ...) body=[N bytes]>
func (m *Message) String() string {
	s := "<" + m.Name() + "("
	for i, p := range m.Params {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%d", p.Name, p.Value)
	}
	s += ")"
	if len(m.Body) > 0 {
		s += fmt.Sprintf(" body=[%d bytes]", len(m.Body))
	}
	s += ">"
	return s
}
