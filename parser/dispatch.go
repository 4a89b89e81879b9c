package parser

import (
	"github.com/packetloom/engineio/packet"
	"github.com/packetloom/engineio/pkg/types"
)

// EncodePayload is the dispatch facade of spec.md §4.8: it encodes packets
// as a binary payload when supportsBinary is true, otherwise as a text
// payload.
func EncodePayload(packets []*packet.Packet, supportsBinary bool) (types.BufferInterface, error) {
	if supportsBinary {
		return EncodePayloadBinary(packets)
	}
	return EncodePayloadText(packets)
}

// DecodePayload is the dispatch facade of spec.md §4.8: a text input (a
// string or *types.StringBuffer) is routed to the text payload decoder, a
// []byte or other types.BufferInterface to the binary payload decoder. Any
// other input, nil included, gets a single (ERROR_PACKET, 0, 1) callback.
// cb is invoked per decoded packet; see PayloadCallback.
func DecodePayload(input any, binaryType packet.BinaryType, cb PayloadCallback) {
	switch v := input.(type) {
	case string:
		DecodePayloadText(v, binaryType, cb)
	case *types.StringBuffer:
		DecodePayloadText(v.String(), binaryType, cb)
	case []byte:
		DecodePayloadBinary(v, binaryType, cb)
	case types.BufferInterface:
		DecodePayloadBinary(v.Bytes(), binaryType, cb)
	case nil:
		cb(ERROR_PACKET, 0, 1)
	default:
		cb(ERROR_PACKET, 0, 1)
	}
}

// DecodePayloadAll is a direct-return convenience wrapper around
// DecodePayload for callers that don't need per-packet streaming.
func DecodePayloadAll(input any, binaryType packet.BinaryType) ([]*packet.Packet, error) {
	var packets []*packet.Packet
	var failed bool
	DecodePayload(input, binaryType, func(pkt *packet.Packet, index, total int) bool {
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
