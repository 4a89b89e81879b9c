package parser

import (
	"io"

	"github.com/packetloom/engineio/packet"
	"github.com/packetloom/engineio/pkg/types"
	"github.com/packetloom/engineio/pkg/utils"
)

// traceEntry is the msgpack-serializable shape of one packet in a trace.
// Data is captured as raw bytes, independent of whether the live packet
// carried a *types.StringBuffer or a binary buffer, so a trace survives a
// round trip through an external log sink.
type traceEntry struct {
	Type string `msgpack:"type"`
	Data []byte `msgpack:"data,omitempty"`
}

// EncodeTrace serializes a decoded (or about-to-be-encoded) payload to
// msgpack for structured diagnostic logging — e.g. attaching the payload
// that triggered a parser error to the pkg/log debug line, without
// inventing a second wire format for the codec itself.
func EncodeTrace(packets []*packet.Packet) ([]byte, error) {
	entries := make([]traceEntry, 0, len(packets))
	for _, pkt := range packets {
		entry := traceEntry{Type: pkt.Type.String()}
		if pkt.Data != nil {
			data, err := io.ReadAll(pkt.Data)
			if err != nil {
				return nil, err
			}
			entry.Data = data
		}
		entries = append(entries, entry)
	}
	return utils.MsgPack().Encode(entries)
}

// DecodeTrace deserializes a trace produced by EncodeTrace back into
// packets whose Data, when present, is always a binary buffer (the trace
// does not retain the original text-vs-binary distinction). An entry with
// no data decodes to a packet with nil Data.
func DecodeTrace(trace []byte) ([]*packet.Packet, error) {
	var entries []traceEntry
	if err := utils.MsgPack().Decode(trace, &entries); err != nil {
		return nil, err
	}

	packets := make([]*packet.Packet, 0, len(entries))
	for _, entry := range entries {
		pkt := &packet.Packet{Type: packet.Type(entry.Type)}
		if entry.Data != nil {
			pkt.Data = types.NewBytesBuffer(entry.Data)
		}
		packets = append(packets, pkt)
	}
	return packets, nil
}
