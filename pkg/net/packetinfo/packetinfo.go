// Package packetinfo implements the packet inspector CLI operation: it
// drives the session layer in a "no-socket" mode over a captured datagram
// file and pretty-prints the decoded message tree.
package packetinfo

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pixelbound/equilibre/pkg/net/message"
	"github.com/pixelbound/equilibre/pkg/net/session"
)

// FragmentState accumulates SM_Fragment bodies across calls until the
// first fragment's declared total size has been reached.
type FragmentState struct {
	pending     [][]byte
	totalSize   int
	currentSize int
}

// AddFragment appends one fragment body to the in-progress reassembly.
func (fs *FragmentState) AddFragment(body []byte) error {
	if len(fs.pending) == 0 {
		if len(body) < 4 {
			return fmt.Errorf("packetinfo: first fragment too short for size header")
		}
		fs.totalSize = int(binary.BigEndian.Uint32(body[0:4]))
		fs.currentSize = len(body) - 4
		fs.pending = append(fs.pending, body[4:])
	} else {
		fs.pending = append(fs.pending, body)
		fs.currentSize += len(body)
	}
	return nil
}

// Complete reports whether the running total matches the declared size.
func (fs *FragmentState) Complete() bool {
	return fs.totalSize > 0 && fs.currentSize == fs.totalSize
}

// Assemble returns the reassembled payload and resets the state for a new
// fragment train.
func (fs *FragmentState) Assemble() []byte {
	total := 0
	for _, p := range fs.pending {
		total += len(p)
	}
	out := make([]byte, 0, total)
	for _, p := range fs.pending {
		out = append(out, p...)
	}
	fs.pending = nil
	fs.totalSize = 0
	fs.currentSize = 0
	return out
}

// Inspector pretty-prints a captured datagram's decoded message tree,
// given the namespace (LM or WM) it carries and the CRC key it was signed
// with.
type Inspector struct {
	Namespace message.Namespace
	Verbose   bool
	Quiet     bool

	session *session.Client
	frag    FragmentState

	out func(string)
}

// New creates an Inspector. Info collects the decoded lines and returns
// them; the Inspector prints nothing itself.
func New(ns message.Namespace, crcKey uint32, verbose, quiet bool) *Inspector {
	return &Inspector{
		Namespace: ns,
		Verbose:   verbose,
		Quiet:     quiet,
		session: &session.Client{
			CRCKey:     crcKey,
			Compressed: ns == message.NamespaceWorld,
		},
	}
}

// Info decodes one captured datagram and returns its pretty-printed lines.
func (insp *Inspector) Info(packet []byte) ([]string, error) {
	var lines []string
	insp.out = func(s string) { lines = append(lines, s) }
	err := insp.infoSession(packet, false, 0)
	insp.out = nil
	return lines, err
}

func (insp *Inspector) print(depth int, s string) {
	if insp.out != nil {
		insp.out(strings.Repeat(" ", depth*4) + s)
	}
}

func isVerboseOnlyType(t uint16) bool {
	switch t {
	case message.SMAck, message.SMOutOfOrderAck, message.SMFragment, message.SMCombined, message.SMApplicationPacket:
		return true
	default:
		return false
	}
}

func (insp *Inspector) infoSession(packet []byte, unwrapped bool, depth int) error {
	msg, err := insp.session.ParsePacket(packet, unwrapped)
	if err != nil {
		return err
	}

	printVerbose := !isVerboseOnlyType(msg.Type) || insp.Verbose
	childDepth := depth
	if printVerbose {
		insp.print(depth, msg.String())
		childDepth = depth + 1
	}

	switch msg.Type {
	case message.SMApplicationPacket:
		return insp.infoApp(msg.Body, childDepth)
	case message.SMCombined:
		subPackets, err := splitCombined(msg.Body)
		if err != nil {
			return err
		}
		for _, sub := range subPackets {
			if err := insp.infoSession(sub, true, childDepth); err != nil {
				return err
			}
		}
	case message.SMFragment:
		if err := insp.frag.AddFragment(msg.Body); err != nil {
			return err
		}
		if insp.frag.Complete() {
			return insp.infoApp(insp.frag.Assemble(), childDepth)
		}
	default:
		if len(msg.Body) > 0 && printVerbose && !insp.Quiet {
			insp.print(depth, hex.EncodeToString(msg.Body))
		}
	}
	return nil
}

func (insp *Inspector) infoApp(packet []byte, depth int) error {
	if len(packet) < 2 {
		return fmt.Errorf("packetinfo: application packet too short")
	}
	msgType := binary.LittleEndian.Uint16(packet[0:2])
	appMsg := message.New(insp.Namespace, msgType)
	appMsg.Body = packet[2:]

	insp.print(depth, appMsg.String())
	if !insp.Quiet && len(appMsg.Body) > 0 {
		body := appMsg.Body
		if len(body) > 512 {
			body = body[:512]
		}
		insp.print(depth, hex.EncodeToString(body))
		insp.print(depth, escapeNonPrintable(body))
	}
	return nil
}

func splitCombined(body []byte) ([][]byte, error) {
	var subPackets [][]byte
	pos := 0
	for pos < len(body) {
		subLen := int(body[pos])
		pos++
		if pos+subLen > len(body) {
			return nil, fmt.Errorf("packetinfo: sub-message length out of range")
		}
		subPackets = append(subPackets, body[pos:pos+subLen])
		pos += subLen
	}
	return subPackets, nil
}

// escapeNonPrintable renders bytes as ASCII, substituting '.' for any byte
// outside the printable range, mirroring the reference tool's collapsed
// hex-escape display.
func escapeNonPrintable(data []byte) string {
	var b strings.Builder
	for _, c := range data {
		if c >= 0x20 && c < 0x7f {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
