// Package session implements the reliable UDP session layer (SM) that
// carries the login (LM) and world (WM) application substreams: handshake,
// sequencing and acks, packet combining and fragmentation, optional zlib
// compression, and the CRC-32 packet trailer.
package session

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"net"

	"github.com/pixelbound/equilibre/pkg/net/message"
)

const (
	compressionFlagNone = 0xa5
	compressionFlagZlib = 'Z'
	maxDatagramSize     = 1024
)

var (
	ErrNotSessionMessage = errors.New("session: not a session message")
	ErrUnexpectedAck     = errors.New("session: ack for message that was not sent")
	ErrUnexpectedType    = errors.New("session: message type out of range")
	ErrBadCRC            = errors.New("session: invalid CRC trailer")
	ErrBadCompression    = errors.New("session: invalid compression flag")
)

type pendingPacket struct {
	data      []byte
	unwrapped bool
}

// Client is one end of a reliable UDP session with a remote login or world
// server.
type Client struct {
	conn *net.UDPConn

	Compressed bool
	CRCKey     uint32

	nextAckIn  uint16
	nextSeqIn  uint16
	nextSeqOut uint16

	pending []pendingPacket
}

// Dial opens a UDP socket to addr. No handshake is performed yet; call Send
// with an SMSessionRequest to establish the session.
func Dial(addr string) (*Client, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("session: resolving %q: %w", addr, err)
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("session: dialing %q: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// Close closes the underlying socket.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// hasSeqNum reports whether sm-type messages of this kind carry a sequence
// number that must be assigned before sending and checked in order on
// receipt.
func hasSeqNum(smType uint16) bool {
	return smType == message.SMApplicationPacket || smType == message.SMFragment
}

// crc32Of computes the session CRC: a CRC-32 over the little-endian CRC
// key followed by the packet bytes.
func (c *Client) crc32Of(data []byte) uint32 {
	keyBytes := []byte{
		byte(c.CRCKey),
		byte(c.CRCKey >> 8),
		byte(c.CRCKey >> 16),
		byte(c.CRCKey >> 24),
	}
	crc := crc32.Update(0, crc32.IEEETable, keyBytes)
	crc = crc32.Update(crc, crc32.IEEETable, data)
	return crc
}

// Send serializes and transmits a session message, assigning a sequence
// number, compressing the payload, and appending the CRC-32 trailer as
// needed.
func (c *Client) Send(msg *message.Message) error {
	if msg.Namespace != message.NamespaceSession {
		return ErrNotSessionMessage
	}
	if hasSeqNum(msg.Type) {
		msg.AddParam("SeqNum", 2, uint32(c.nextSeqOut))
		c.nextSeqOut++
	}

	packet := msg.Serialize()

	if c.Compressed {
		header, payload := packet[0:2], packet[2:]
		flag := byte(compressionFlagNone)
		if len(payload) > 10 {
			var buf bytes.Buffer
			w := zlib.NewWriter(&buf)
			if _, err := w.Write(payload); err != nil {
				return fmt.Errorf("session: compressing payload: %w", err)
			}
			if err := w.Close(); err != nil {
				return fmt.Errorf("session: compressing payload: %w", err)
			}
			payload = buf.Bytes()
			flag = compressionFlagZlib
		}
		packet = append(append(append([]byte{}, header...), flag), payload...)
	}

	if msg.Type != message.SMSessionRequest && msg.Type != message.SMSessionResponse {
		crc := uint16(c.crc32Of(packet) & 0xffff)
		packet = append(packet, byte(crc>>8), byte(crc))
	}

	_, err := c.conn.Write(packet)
	return err
}

// ParsePacket decodes a raw session packet into a Message, validating and
// stripping the CRC trailer (unless unwrapped, meaning it came from inside
// an already-validated SM_Combined packet) and decompressing the payload
// if the session negotiated compression.
func (c *Client) ParsePacket(packet []byte, unwrapped bool) (*message.Message, error) {
	if len(packet) < 2 {
		return nil, fmt.Errorf("session: packet too short")
	}
	msgType := uint16(packet[0])<<8 | uint16(packet[1])
	if msgType > 0xff {
		return nil, ErrUnexpectedType
	}

	hasCRC := msgType != message.SMSessionRequest && msgType != message.SMSessionResponse && !unwrapped
	if hasCRC {
		if len(packet) < 4 {
			return nil, fmt.Errorf("session: packet too short for CRC trailer")
		}
		crc := uint16(packet[len(packet)-2])<<8 | uint16(packet[len(packet)-1])
		packet = packet[:len(packet)-2]
		computed := uint16(c.crc32Of(packet) & 0xffff)
		if crc != 0 && crc != computed {
			return nil, fmt.Errorf("%w: computed 0x%04x, found 0x%04x", ErrBadCRC, computed, crc)
		}
	}
	packet = packet[2:]

	if c.Compressed && !unwrapped {
		if len(packet) < 1 {
			return nil, fmt.Errorf("session: missing compression flag")
		}
		flag := packet[0]
		packet = packet[1:]
		switch flag {
		case compressionFlagZlib:
			r, err := zlib.NewReader(bytes.NewReader(packet))
			if err != nil {
				return nil, fmt.Errorf("session: decompressing payload: %w", err)
			}
			defer r.Close()
			decoded, err := io.ReadAll(r)
			if err != nil {
				return nil, fmt.Errorf("session: decompressing payload: %w", err)
			}
			packet = decoded
		case compressionFlagNone:
			// payload carried uncompressed
		default:
			return nil, fmt.Errorf("%w: 0x%x", ErrBadCompression, flag)
		}
	}

	msg := message.New(message.NamespaceSession, msgType)
	switch msgType {
	case message.SMSessionResponse:
		msg.AddParam("Session", 4, 0)
		msg.AddParam("Key", 4, 0)
		msg.AddParam("UnknownA", 1, 0)
		msg.AddParam("Format", 1, 0)
		msg.AddParam("UnknownB", 1, 0)
		msg.AddParam("MaxLength", 4, 0)
		msg.AddParam("UnknownC", 4, 0)
	case message.SMApplicationPacket, message.SMFragment, message.SMAck, message.SMOutOfOrderAck:
		msg.AddParam("SeqNum", 2, 0)
	}

	if err := msg.Deserialize(packet); err != nil {
		return nil, err
	}
	return msg, nil
}

// unpackCombined splits an SM_Combined body into its length-prefixed
// sub-packets.
func unpackCombined(body []byte) ([][]byte, error) {
	var subPackets [][]byte
	pos := 0
	for pos < len(body) {
		subLen := int(body[pos])
		pos++
		if pos+subLen > len(body) {
			return nil, fmt.Errorf("session: sub-message length out of range")
		}
		subPackets = append(subPackets, body[pos:pos+subLen])
		pos += subLen
	}
	return subPackets, nil
}

func (c *Client) sendAck(seqNum uint16) error {
	if seqNum != c.nextSeqIn {
		return fmt.Errorf("%w: seq %d, expected %d", ErrUnexpectedAck, seqNum, c.nextSeqIn)
	}
	ack := message.New(message.NamespaceSession, message.SMAck)
	ack.AddParam("SeqNum", 2, uint32(seqNum))
	if err := c.Send(ack); err != nil {
		return err
	}
	c.nextSeqIn++
	return nil
}

func (c *Client) receivePacket() ([]byte, bool, error) {
	if len(c.pending) > 0 {
		p := c.pending[0]
		c.pending = c.pending[1:]
		return p.data, p.unwrapped, nil
	}
	buf := make([]byte, maxDatagramSize)
	n, err := c.conn.Read(buf)
	if err != nil {
		return nil, false, err
	}
	return buf[:n], false, nil
}

// Receive blocks until the next in-order application or control message
// arrives, transparently handling acks, combined packets, and in-order
// sequencing. Out-of-order application packets are dropped, not buffered.
func (c *Client) Receive() (*message.Message, error) {
	for {
		packet, unwrapped, err := c.receivePacket()
		if err != nil {
			return nil, err
		}
		msg, err := c.ParsePacket(packet, unwrapped)
		if err != nil {
			return nil, err
		}

		switch {
		case msg.Type == message.SMAck:
			seqNum, _ := msg.Param("SeqNum")
			if uint16(seqNum) >= c.nextSeqOut {
				return nil, fmt.Errorf("%w: %d (seq_out=%d)", ErrUnexpectedAck, seqNum, c.nextSeqOut)
			}
			c.nextAckIn = uint16(seqNum) + 1
		case msg.Type == message.SMCombined:
			subPackets, err := unpackCombined(msg.Body)
			if err != nil {
				return nil, err
			}
			for _, sub := range subPackets {
				c.pending = append(c.pending, pendingPacket{data: sub, unwrapped: true})
			}
		case hasSeqNum(msg.Type):
			seqNum, _ := msg.Param("SeqNum")
			if uint16(seqNum) != c.nextSeqIn {
				continue // out-of-order: drop, per protocol's drop-only policy
			}
			if err := c.sendAck(uint16(seqNum)); err != nil {
				return nil, err
			}
			return msg, nil
		default:
			return msg, nil
		}
	}
}
