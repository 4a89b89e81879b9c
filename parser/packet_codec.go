package parser

import (
	"encoding/base64"
	"io"
	"strconv"

	"github.com/packetloom/engineio/packet"
	"github.com/packetloom/engineio/pkg/types"
)

// EncodePacket encodes a single packet as either a text string or a byte
// buffer, per spec.md §4.2.
//
//   - If packet.Data is binary (anything other than a *types.StringBuffer)
//     and supportsBinary is false, it is base64-wrapped into text (§4.3).
//   - If packet.Data is binary and supportsBinary is true, the result is a
//     byte buffer: one type-code byte followed by the raw data.
//   - Otherwise (text or absent data) the result is a text string: the
//     ASCII digit of the type code, optionally followed by the data.
func EncodePacket(pkt *packet.Packet, supportsBinary bool) (types.BufferInterface, error) {
	if pkt == nil {
		return nil, ErrPacketNil
	}
	if c, ok := pkt.Data.(io.Closer); ok {
		defer c.Close()
	}

	code, ok := lookupCode(pkt.Type)
	if !ok {
		return nil, ErrPacketType
	}

	switch data := pkt.Data.(type) {
	case nil:
		out := types.NewStringBuffer(nil)
		if err := out.WriteByte('0' + code); err != nil {
			return nil, err
		}
		return out, nil

	case *types.StringBuffer:
		out := types.NewStringBuffer(nil)
		if err := out.WriteByte('0' + code); err != nil {
			return nil, err
		}
		if _, err := io.Copy(out, data); err != nil {
			return nil, err
		}
		return out, nil

	default:
		if !supportsBinary {
			return encodeBase64Packet(pkt)
		}
		out := types.NewBytesBuffer(nil)
		if err := out.WriteByte(code); err != nil {
			return nil, err
		}
		if _, err := io.Copy(out, data); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// encodeBase64Packet implements spec.md §4.3: literal 'b', the type
// digit, then standard base64 (with padding) of the raw data bytes.
func encodeBase64Packet(pkt *packet.Packet) (types.BufferInterface, error) {
	code, ok := lookupCode(pkt.Type)
	if !ok {
		return nil, ErrPacketType
	}

	out := types.NewStringBuffer(nil)
	if err := out.WriteByte('b'); err != nil {
		return nil, err
	}
	if err := out.WriteByte('0' + code); err != nil {
		return nil, err
	}

	if pkt.Data == nil {
		return out, nil
	}

	enc := base64.NewEncoder(base64.StdEncoding, out)
	if _, err := io.Copy(enc, pkt.Data); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodePacket decodes a single packet, per spec.md §4.4/§4.5. It never
// returns a Go error for malformed input: the sentinel ERROR_PACKET is
// returned instead.
func DecodePacket(data types.BufferInterface, binaryType packet.BinaryType) *packet.Packet {
	if data == nil {
		return ERROR_PACKET
	}

	if sb, ok := data.(*types.StringBuffer); ok {
		return decodeTextPacket(sb)
	}
	return decodeBinaryPacket(data)
}

func decodeTextPacket(data *types.StringBuffer) *packet.Packet {
	first, err := data.ReadByte()
	if err != nil {
		return ERROR_PACKET
	}

	if first == 'b' {
		return decodeBase64Packet(data)
	}

	if first < '0' || first > '9' {
		debugRejected("text packet type byte %q is not a decimal digit", first)
		return ERROR_PACKET
	}
	code := first - '0'
	t, ok := lookupType(code)
	if !ok {
		debugRejected("text packet type code %d out of range", code)
		return ERROR_PACKET
	}

	rest := types.NewStringBuffer(nil)
	if _, err := rest.ReadFrom(data); err != nil {
		return ERROR_PACKET
	}
	if rest.Len() == 0 {
		return &packet.Packet{Type: t}
	}
	return &packet.Packet{Type: t, Data: rest}
}

// decodeBase64Packet implements spec.md §4.5: the first character (after
// the already-consumed 'b') is the type digit, the remainder is
// base64-decoded to a byte buffer.
func decodeBase64Packet(data *types.StringBuffer) *packet.Packet {
	digit, err := data.ReadByte()
	if err != nil {
		debugRejected("base64 packet missing type digit")
		return ERROR_PACKET
	}
	if digit < '0' || digit > '9' {
		debugRejected("base64 packet type byte %q is not a decimal digit", digit)
		return ERROR_PACKET
	}
	t, ok := lookupType(digit - '0')
	if !ok {
		debugRejected("base64 packet type code %d out of range", digit-'0')
		return ERROR_PACKET
	}

	decoded := types.NewBytesBuffer(nil)
	if _, err := decoded.ReadFrom(base64.NewDecoder(base64.StdEncoding, data)); err != nil {
		debugRejected("base64 body invalid: %v", err)
		return ERROR_PACKET
	}
	return &packet.Packet{Type: t, Data: decoded}
}

// decodeBinaryPacket implements spec.md §4.4's binary path: the first
// byte is the type code, the remainder is the data, returned as a slice
// view into the input buffer (no copy).
func decodeBinaryPacket(data types.BufferInterface) *packet.Packet {
	code, err := data.ReadByte()
	if err != nil {
		return ERROR_PACKET
	}
	t, ok := lookupType(code)
	if !ok {
		// spec.md §9 flags the reference's lenient behavior here as an
		// intentional hardening deviation: we take the defensive path
		// and reject, rather than emit a packet of undefined type.
		debugRejected("binary packet type code %d out of range", code)
		return ERROR_PACKET
	}

	body := data.Next(data.Len())
	return &packet.Packet{Type: t, Data: types.NewBytesBuffer(body)}
}

// digitBytes writes the decimal digits of n as raw numeric byte values
// (0x00-0x09), not ASCII characters — the binary payload header's
// idiosyncratic length encoding (spec.md §4.7/§9).
func digitBytes(n int) []byte {
	s := strconv.Itoa(n)
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = s[i] - '0'
	}
	return out
}
