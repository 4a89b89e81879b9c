// Package packet defines the Engine.IO v2 packet type table and the
// Packet value itself.
package packet

import (
	"io"

	"github.com/packetloom/engineio/pkg/types"
)

// Type is an Engine.IO packet type. It is one of the seven wire-valid
// variants, or the decoder-only sentinel ERROR.
type Type string

// Packet types for the Engine.IO protocol.
const (
	// OPEN is sent from the server when a new transport is opened.
	OPEN Type = "open"
	// CLOSE is sent to request the close of this transport.
	CLOSE Type = "close"
	// PING is sent by the client for keep-alive (heartbeat).
	PING Type = "ping"
	// PONG is sent by the server in response to a PING.
	PONG Type = "pong"
	// MESSAGE is used for actual message transport.
	MESSAGE Type = "message"
	// UPGRADE is sent before upgrading the transport.
	UPGRADE Type = "upgrade"
	// NOOP is used as a no-operation packet.
	NOOP Type = "noop"
	// ERROR is never encoded on the wire; the decoder returns it when
	// input cannot be parsed.
	ERROR Type = "error"
)

// String returns the string representation of the packet type.
func (t Type) String() string {
	return string(t)
}

// IsValid reports whether t is one of the seven wire-valid variants.
// ERROR is deliberately excluded: it is a decoder sentinel, never an
// encodable type.
func (t Type) IsValid() bool {
	switch t {
	case OPEN, CLOSE, PING, PONG, MESSAGE, UPGRADE, NOOP:
		return true
	default:
		return false
	}
}

// BinaryType selects how a decoded binary packet body is handed back to
// the caller. Go has no ArrayBuffer distinct from a byte buffer, so both
// BinaryTypeBuffer and BinaryTypeArrayBuffer currently decode to the same
// types.BufferInterface; the distinction is kept so the public API shape
// matches spec.md's decodePacket(data, binaryType) signature.
type BinaryType int

const (
	// BinaryTypeBuffer decodes binary packet data as a plain byte buffer.
	BinaryTypeBuffer BinaryType = iota
	// BinaryTypeArrayBuffer decodes binary packet data as an array-buffer
	// view. In Go this is identical to BinaryTypeBuffer.
	BinaryTypeArrayBuffer
)

// Options carries per-packet transport hints that are orthogonal to the
// wire encoding itself.
type Options struct {
	// Compress indicates whether the packet should be compressed by the
	// transport. The codec itself never compresses; see package bridge.
	Compress bool `json:"compress,omitempty" msgpack:"compress,omitempty"`
}

// Packet is one unit of Engine.IO communication.
type Packet struct {
	// Type is the packet's type.
	Type Type `json:"type" msgpack:"type"`
	// Data is the packet's optional payload. A nil Data means "no data".
	// Concretely it is either a *types.StringBuffer (the spec's Text
	// variant) or any other io.Reader, read as raw bytes (the spec's
	// Bytes variant).
	Data io.Reader `json:"data,omitempty" msgpack:"data,omitempty"`
	// Options carries transport hints; nil unless the caller set them.
	Options *Options `json:"options,omitempty" msgpack:"options,omitempty"`
}

// New creates a packet with no options.
func New(t Type, data io.Reader) *Packet {
	return &Packet{Type: t, Data: data}
}

// NewWithOptions creates a packet carrying transport options.
func NewWithOptions(t Type, data io.Reader, options *Options) *Packet {
	return &Packet{Type: t, Data: data, Options: options}
}

// NewText creates a packet whose data is the given text.
func NewText(t Type, text string) *Packet {
	return &Packet{Type: t, Data: types.NewStringBufferString(text)}
}

// NewBinary creates a packet whose data is the given raw bytes.
func NewBinary(t Type, data []byte) *Packet {
	return &Packet{Type: t, Data: types.NewBytesBuffer(data)}
}
