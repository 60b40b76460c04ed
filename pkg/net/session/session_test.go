package session

import (
	"testing"

	"github.com/pixelbound/equilibre/pkg/net/message"
)

func newTestClient() *Client {
	return &Client{CRCKey: 0x11223344}
}

// TestCRCTrailerRoundtrip pins the CRC-32 trailer convention: Send
// appends a big-endian uint16 truncation of the session CRC, and
// ParsePacket recomputes and validates it before stripping it.
func TestCRCTrailerRoundtrip(t *testing.T) {
	c := newTestClient()

	packet := []byte{0x00, byte(message.SMKeepAlive)}
	crc := uint16(c.crc32Of(packet) & 0xffff)
	trailed := append(append([]byte{}, packet...), byte(crc>>8), byte(crc))

	msg, err := c.ParsePacket(trailed, false)
	if err != nil {
		t.Fatalf("ParsePacket failed: %v", err)
	}
	if msg.Type != message.SMKeepAlive {
		t.Errorf("Type = %#x, want %#x", msg.Type, message.SMKeepAlive)
	}
}

func TestCRCTrailerRejectsCorruption(t *testing.T) {
	c := newTestClient()

	packet := []byte{0x00, byte(message.SMKeepAlive)}
	crc := uint16(c.crc32Of(packet) & 0xffff)
	trailed := append(append([]byte{}, packet...), byte(crc>>8), byte(crc))
	trailed[len(trailed)-1] ^= 0xFF

	if _, err := c.ParsePacket(trailed, false); err == nil {
		t.Fatal("expected an error for a corrupted CRC trailer")
	}
}

func TestCRCTrailerZeroIsAlwaysAccepted(t *testing.T) {
	c := newTestClient()

	packet := []byte{0x00, byte(message.SMKeepAlive), 0x00, 0x00}
	if _, err := c.ParsePacket(packet, false); err != nil {
		t.Fatalf("a zero CRC trailer should be accepted unconditionally: %v", err)
	}
}

func TestSessionRequestHasNoCRCTrailer(t *testing.T) {
	c := newTestClient()
	msg := message.New(message.NamespaceSession, message.SMSessionRequest)
	msg.AddParam("Protocol", 4, 0x00000002)

	packet := msg.Serialize()
	if _, err := c.ParsePacket(packet, false); err != nil {
		t.Fatalf("ParsePacket failed: %v", err)
	}
}
