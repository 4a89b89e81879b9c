package commands

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/symfony-cli/console"
	"github.com/symfony-cli/terminal"

	"github.com/packetloom/engineio/packet"
	"github.com/packetloom/engineio/parser"
	"github.com/packetloom/engineio/pkg/types"
)

func encodePacketCommand() *console.Command {
	return &console.Command{
		Category: "packet",
		Name:     "encode-packet",
		Usage:    "Encode a single Engine.IO packet",
		Flags: []console.Flag{
			&console.BoolFlag{Name: "binary", Usage: "treat DATA as raw binary instead of text"},
			&console.BoolFlag{Name: "supports-binary", Usage: "allow a raw binary encoding instead of base64"},
		},
		Args: []*console.Arg{
			{Name: "type", Optional: false, Description: "packet type: open, close, ping, pong, message, upgrade, noop"},
			{Name: "data", Optional: true, Description: "packet payload"},
		},
		Action: func(ctx *console.Context) error {
			t := packet.Type(ctx.Args().Get("type"))
			if !t.IsValid() {
				return fmt.Errorf("invalid packet type %q", t)
			}
			data := ctx.Args().Get("data")

			var pkt *packet.Packet
			switch {
			case data == "":
				pkt = packet.New(t, nil)
			case ctx.Bool("binary"):
				pkt = packet.NewBinary(t, []byte(data))
			default:
				pkt = packet.NewText(t, data)
			}

			out, err := parser.EncodePacket(pkt, ctx.Bool("supports-binary"))
			if err != nil {
				return err
			}
			printBuffer(out)
			return nil
		},
	}
}

func encodePayloadCommand() *console.Command {
	return &console.Command{
		Category: "payload",
		Name:     "encode-payload",
		Usage:    "Encode a payload of one or more packets",
		Flags: []console.Flag{
			&console.BoolFlag{Name: "supports-binary", Usage: "encode as a binary payload instead of text"},
		},
		Args: []*console.Arg{
			{Name: "packets", Optional: false, Description: `space-separated "type:data" pairs, e.g. "message:hello ping:"`},
		},
		Action: func(ctx *console.Context) error {
			packets, err := parsePacketArgs(ctx.Args().Get("packets"))
			if err != nil {
				return err
			}

			out, err := parser.EncodePayload(packets, ctx.Bool("supports-binary"))
			if err != nil {
				return err
			}
			printBuffer(out)
			return nil
		},
	}
}

// parsePacketArgs splits a single "type:data type:data ..." argument into
// packets. The pairs arrive as one joined string rather than a slice arg,
// so whitespace splitting happens here instead of in the console layer.
func parsePacketArgs(joined string) ([]*packet.Packet, error) {
	var packets []*packet.Packet
	for _, arg := range strings.Fields(joined) {
		typeName, data, _ := strings.Cut(arg, ":")
		t := packet.Type(typeName)
		if !t.IsValid() {
			return nil, fmt.Errorf("invalid packet type %q in %q", typeName, arg)
		}
		if data == "" {
			packets = append(packets, packet.New(t, nil))
		} else {
			packets = append(packets, packet.NewText(t, data))
		}
	}
	return packets, nil
}

func printBuffer(buf types.BufferInterface) {
	if _, isText := buf.(*types.StringBuffer); isText {
		terminal.Println(buf.String())
		return
	}
	terminal.Println(hex.EncodeToString(buf.Bytes()))
}
