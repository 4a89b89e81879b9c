package parser

import (
	"strconv"

	"github.com/packetloom/engineio/packet"
	"github.com/packetloom/engineio/pkg/types"
)

// PayloadCallback is invoked once per decoded packet, with the packet's
// 0-based index and the total packet count. Returning false stops further
// invocations (text payloads only; see spec.md §5).
type PayloadCallback func(pkt *packet.Packet, index int, total int) bool

// EncodePayloadText implements spec.md §4.6's encoding grammar: zero or
// more concatenated "<len>:<data>" segments, where <data> is always the
// text-or-base64 form of the single-packet encoder (binary packet data is
// base64-wrapped here regardless of the payload's own supportsBinary
// flag — the raw binary single-packet form is reserved for the binary
// payload grammar in §4.7). An empty packet list encodes as "0:".
func EncodePayloadText(packets []*packet.Packet) (types.BufferInterface, error) {
	out := types.NewStringBuffer(nil)

	if len(packets) == 0 {
		if _, err := out.WriteString("0:"); err != nil {
			return nil, err
		}
		return out, nil
	}

	for _, pkt := range packets {
		buf, err := EncodePacket(pkt, false)
		if err != nil {
			return nil, err
		}
		if _, err := out.WriteString(strconv.Itoa(buf.Len())); err != nil {
			return nil, err
		}
		if err := out.WriteByte(':'); err != nil {
			return nil, err
		}
		if _, err := out.Write(buf.Bytes()); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// textSegment is one successfully framed (but not yet decoded) segment of
// a text payload.
type textSegment struct {
	body []byte
}

// splitTextPayload implements the length-prefix scan of spec.md §4.6,
// steps 1-3 and the trailing-digits check, without touching the
// single-packet decoder. Keeping the framing scan separate from decoding
// lets DecodePayloadText learn the total segment count before invoking any
// callback. Every segment is still decoded before the first callback runs,
// so a callback returning false stops further callbacks, not decoding.
func splitTextPayload(text string) ([]textSegment, bool) {
	var segments []textSegment
	lengthBuf := ""

	for len(text) > 0 {
		c := text[0]
		if c != ':' {
			lengthBuf += string(c)
			text = text[1:]
			continue
		}
		// Found ':'. Validate the accumulated length digits.
		text = text[1:]
		if lengthBuf == "" {
			return nil, false
		}
		n, err := strconv.Atoi(lengthBuf)
		if err != nil || n < 0 || strconv.Itoa(n) != lengthBuf {
			// Non-numeric, negative, or non-canonical (leading zeros).
			return nil, false
		}
		if n > len(text) {
			return nil, false
		}
		segments = append(segments, textSegment{body: []byte(text[:n])})
		text = text[n:]
		lengthBuf = ""
	}

	if lengthBuf != "" {
		// Trailing digits with no terminating ':'.
		return nil, false
	}
	return segments, true
}

// DecodePayloadText implements spec.md §4.6's decode algorithm and §4.8's
// text dispatch. On any framing or single-packet decode failure, cb is
// invoked exactly once with (ERROR_PACKET, 0, 1) and decoding halts.
// Otherwise cb is invoked once per packet, in order, with the packet's
// index and the payload's total packet count; a false return halts
// further invocations without error.
func DecodePayloadText(text string, binaryType packet.BinaryType, cb PayloadCallback) {
	if text == "" {
		cb(ERROR_PACKET, 0, 1)
		return
	}

	segments, ok := splitTextPayload(text)
	if !ok {
		debugRejected("text payload framing invalid")
		cb(ERROR_PACKET, 0, 1)
		return
	}

	packets := make([]*packet.Packet, 0, len(segments))
	for _, seg := range segments {
		// A zero-length segment carries no packet: it is the marker an
		// empty packet list encodes to ("0:"), not a decodable packet.
		if len(seg.body) == 0 {
			continue
		}
		pkt := DecodePacket(types.NewStringBuffer(seg.body), binaryType)
		if isError(pkt) {
			debugRejected("text payload segment failed to decode")
			cb(ERROR_PACKET, 0, 1)
			return
		}
		packets = append(packets, pkt)
	}

	total := len(packets)
	for i, pkt := range packets {
		if !cb(pkt, i, total) {
			return
		}
	}
}

// DecodePayloadTextAll is a direct-return convenience wrapper around
// DecodePayloadText for callers that don't need streaming/cancellation.
func DecodePayloadTextAll(text string, binaryType packet.BinaryType) ([]*packet.Packet, error) {
	var packets []*packet.Packet
	var failed bool
	DecodePayloadText(text, binaryType, func(pkt *packet.Packet, index, total int) bool {
		if isError(pkt) {
			failed = true
			return false
		}
		packets = append(packets, pkt)
		return true
	})
	if failed {
		return nil, ErrInvalidDataLength
	}
	return packets, nil
}
