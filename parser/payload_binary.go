package parser

import (
	"github.com/packetloom/engineio/packet"
	"github.com/packetloom/engineio/pkg/types"
)

// binarySeparator is the sentinel byte terminating a binary payload
// segment's length header (spec.md §4.7/§9).
const binarySeparator byte = 0xFF

// EncodePayloadBinary implements spec.md §4.7's encoding grammar:
// <kind><digit-bytes><0xFF><body> per packet, concatenated. kind is 0 for
// a text body, 1 for a binary body. digit-bytes stores each decimal digit
// of the body's byte length as its raw numeric value (0-9), not as an
// ASCII character — this must be reproduced bit-exactly for
// interoperability. Each packet is encoded with the single-packet encoder
// in whichever form it natively prefers (EncodePacket's supportsBinary
// hint is set so binary data stays binary rather than base64-wrapping).
func EncodePayloadBinary(packets []*packet.Packet) (types.BufferInterface, error) {
	out := types.NewBytesBuffer(nil)

	for _, pkt := range packets {
		buf, err := EncodePacket(pkt, true)
		if err != nil {
			return nil, err
		}

		_, isText := buf.(*types.StringBuffer)
		if isText {
			if err := out.WriteByte(0); err != nil {
				return nil, err
			}
		} else {
			if err := out.WriteByte(1); err != nil {
				return nil, err
			}
		}

		if _, err := out.Write(digitBytes(buf.Len())); err != nil {
			return nil, err
		}
		if err := out.WriteByte(binarySeparator); err != nil {
			return nil, err
		}
		if _, err := out.Write(buf.Bytes()); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// DecodePayloadBinary implements spec.md §4.7's decode algorithm. Unlike
// the text payload decoder, it does not support early termination: the
// whole buffer is consumed (or the decode fails) before any callback
// fires, so the total packet count is always known up front.
func DecodePayloadBinary(data []byte, binaryType packet.BinaryType, cb PayloadCallback) {
	segments, ok := splitBinaryPayload(data)
	if !ok {
		debugRejected("binary payload framing invalid")
		cb(ERROR_PACKET, 0, 1)
		return
	}

	packets := make([]*packet.Packet, 0, len(segments))
	for _, seg := range segments {
		var buf types.BufferInterface
		if seg.isText {
			buf = types.NewStringBuffer(seg.body)
		} else {
			buf = types.NewBytesBuffer(seg.body)
		}
		pkt := DecodePacket(buf, binaryType)
		if isError(pkt) {
			debugRejected("binary payload segment failed to decode")
			cb(ERROR_PACKET, 0, 1)
			return
		}
		packets = append(packets, pkt)
	}

	total := len(packets)
	for i, pkt := range packets {
		cb(pkt, i, total)
	}
}

// DecodePayloadBinaryAll is a direct-return convenience wrapper around
// DecodePayloadBinary.
func DecodePayloadBinaryAll(data []byte, binaryType packet.BinaryType) ([]*packet.Packet, error) {
	var packets []*packet.Packet
	var failed bool
	DecodePayloadBinary(data, binaryType, func(pkt *packet.Packet, index, total int) bool {
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

type binarySegment struct {
	isText bool
	body   []byte
}

// splitBinaryPayload walks data once, validating and framing every
// segment's header before any single-packet decode is attempted.
func splitBinaryPayload(data []byte) ([]binarySegment, bool) {
	var segments []binarySegment

	for len(data) > 0 {
		isText := data[0] == 0x00
		data = data[1:]

		length := 0
		consumedTerminator := false
		for len(data) > 0 {
			b := data[0]
			data = data[1:]
			if b == binarySeparator {
				consumedTerminator = true
				break
			}
			if b > 9 {
				return nil, false
			}
			length = length*10 + int(b)
		}
		if !consumedTerminator {
			return nil, false
		}
		if length > len(data) {
			return nil, false
		}

		segments = append(segments, binarySegment{isText: isText, body: data[:length]})
		data = data[length:]
	}

	return segments, true
}
