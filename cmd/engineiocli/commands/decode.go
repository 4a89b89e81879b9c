package commands

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/symfony-cli/console"
	"github.com/symfony-cli/terminal"

	"github.com/packetloom/engineio/packet"
	"github.com/packetloom/engineio/parser"
	"github.com/packetloom/engineio/pkg/types"
)

func decodePacketCommand() *console.Command {
	return &console.Command{
		Category: "packet",
		Name:     "decode-packet",
		Usage:    "Decode a single Engine.IO packet",
		Flags: []console.Flag{
			&console.BoolFlag{Name: "binary", Usage: "treat DATA as hex-encoded raw binary instead of text"},
		},
		Args: []*console.Arg{
			{Name: "data", Optional: false, Description: "encoded packet"},
		},
		Action: func(ctx *console.Context) error {
			raw := ctx.Args().Get("data")

			var buf types.BufferInterface
			if ctx.Bool("binary") {
				decoded, err := hex.DecodeString(raw)
				if err != nil {
					return fmt.Errorf("invalid hex input: %w", err)
				}
				buf = types.NewBytesBuffer(decoded)
			} else {
				buf = types.NewStringBufferString(raw)
			}

			pkt := parser.DecodePacket(buf, packet.BinaryTypeBuffer)
			printPacket(pkt)
			return nil
		},
	}
}

func decodePayloadCommand() *console.Command {
	return &console.Command{
		Category: "payload",
		Name:     "decode-payload",
		Usage:    "Decode a payload of one or more packets",
		Flags: []console.Flag{
			&console.BoolFlag{Name: "binary", Usage: "treat DATA as hex-encoded raw binary instead of text"},
		},
		Args: []*console.Arg{
			{Name: "data", Optional: false, Description: "encoded payload"},
		},
		Action: func(ctx *console.Context) error {
			raw := ctx.Args().Get("data")

			var input any = raw
			if ctx.Bool("binary") {
				decoded, err := hex.DecodeString(raw)
				if err != nil {
					return fmt.Errorf("invalid hex input: %w", err)
				}
				input = decoded
			}

			packets, err := parser.DecodePayloadAll(input, packet.BinaryTypeBuffer)
			if err != nil {
				return err
			}
			for _, pkt := range packets {
				printPacket(pkt)
			}
			return nil
		},
	}
}

// decodedPacket is the JSON shape printPacket emits: Data is the packet's
// text body verbatim, or the hex encoding of its binary body with Binary
// set to true.
type decodedPacket struct {
	Type   packet.Type `json:"type"`
	Data   string      `json:"data,omitempty"`
	Binary bool        `json:"binary,omitempty"`
}

// packetJSON renders pkt as the JSON object printPacket prints one of per
// line: Binary/hex-encoded Data for a decoded packet whose body isn't a
// *types.StringBuffer, the raw text otherwise.
func packetJSON(pkt *packet.Packet) ([]byte, error) {
	out := decodedPacket{Type: pkt.Type}

	if pkt.Data != nil {
		data, err := io.ReadAll(pkt.Data)
		if err != nil {
			return nil, fmt.Errorf("reading packet data: %w", err)
		}
		if _, isText := pkt.Data.(*types.StringBuffer); isText {
			out.Data = string(data)
		} else {
			out.Binary = true
			out.Data = hex.EncodeToString(data)
		}
	}

	return json.Marshal(out)
}

func printPacket(pkt *packet.Packet) {
	encoded, err := packetJSON(pkt)
	if err != nil {
		terminal.Printf("%s <%s>\n", pkt.Type, err)
		return
	}
	terminal.Println(string(encoded))
}
