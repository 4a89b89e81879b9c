// Package parser implements the Engine.IO v2 wire codec: encoding and
// decoding of single packets and of length-framed packet payloads, in
// both textual and binary form.
//
// The codec is pure and stateless. DecodePacket and the callback-style
// payload decoders never return a Go error for malformed input; they
// deliver the sentinel ERROR_PACKET instead, per the protocol's "reject
// the whole payload on any error" policy. The direct-return payload
// decoders (the *All functions) turn that rejection into
// ErrInvalidDataLength.
package parser

import (
	"errors"
	"fmt"

	"github.com/packetloom/engineio/packet"
	"github.com/packetloom/engineio/pkg/log"
	"github.com/packetloom/engineio/pkg/types"
)

// Protocol is the Engine.IO protocol version this codec speaks.
const Protocol int = 2

// V2Parser exposes the package-level codec functions as methods, for
// callers that prefer to hold a parser value (e.g. to satisfy a
// transport-defined interface) rather than call the free functions
// directly. It carries no state of its own.
type V2Parser struct{}

// V2 returns the protocol-2 (Engine.IO v2) parser.
func V2() V2Parser { return V2Parser{} }

func (V2Parser) Protocol() int { return Protocol }

func (V2Parser) EncodePacket(pkt *packet.Packet, supportsBinary bool) (types.BufferInterface, error) {
	return EncodePacket(pkt, supportsBinary)
}

func (V2Parser) DecodePacket(data types.BufferInterface, binaryType packet.BinaryType) *packet.Packet {
	return DecodePacket(data, binaryType)
}

func (V2Parser) EncodePayload(packets []*packet.Packet, supportsBinary bool) (types.BufferInterface, error) {
	return EncodePayload(packets, supportsBinary)
}

func (V2Parser) DecodePayload(input any, binaryType packet.BinaryType, cb PayloadCallback) {
	DecodePayload(input, binaryType, cb)
}

// typeOrder fixes the wire code of each packet type to its index: OPEN=0,
// CLOSE=1, PING=2, PONG=3, MESSAGE=4, UPGRADE=5, NOOP=6. Keeping this as
// data rather than a switch statement means the decoder's "is this code
// valid" check is a single bounds check against len(typeOrder).
var typeOrder = []packet.Type{
	packet.OPEN,
	packet.CLOSE,
	packet.PING,
	packet.PONG,
	packet.MESSAGE,
	packet.UPGRADE,
	packet.NOOP,
}

var typeToCode = func() map[packet.Type]byte {
	m := make(map[packet.Type]byte, len(typeOrder))
	for i, t := range typeOrder {
		m[t] = byte(i)
	}
	return m
}()

// lookupCode returns the wire code (0-6) for a packet type.
func lookupCode(t packet.Type) (byte, bool) {
	c, ok := typeToCode[t]
	return c, ok
}

// lookupType returns the packet type for a wire code, treating code as an
// index into typeOrder. Any code outside [0, len(typeOrder)) is invalid.
func lookupType(code byte) (packet.Type, bool) {
	if int(code) >= len(typeOrder) {
		return "", false
	}
	return typeOrder[code], true
}

// ERROR_PACKET is the fixed value returned by the decoder whenever input
// cannot be parsed.
var ERROR_PACKET = &packet.Packet{
	Type: packet.ERROR,
	Data: types.NewStringBufferString("parser error"),
}

// Sentinel errors. ErrPacketNil and ErrPacketType are returned by the
// encoder; ErrInvalidDataLength is returned by the *All payload decoders
// when a payload is rejected. DecodePacket and the callback-style decoders
// never return a Go error; see ERROR_PACKET.
var (
	ErrPacketNil         = errors.New("packet must not be nil")
	ErrPacketType        = errors.New("invalid packet type")
	ErrInvalidDataLength = errors.New("invalid data length")
)

var logger = log.NewLog("engineio:parser")

// isError reports whether pkt is the sentinel error packet.
func isError(pkt *packet.Packet) bool {
	return pkt == ERROR_PACKET
}

func debugRejected(reason string, args ...any) {
	logger.Debugf(fmt.Sprintf("rejecting payload: %s", reason), args...)
}
