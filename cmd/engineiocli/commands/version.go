package commands

import (
	"github.com/symfony-cli/console"
	"github.com/symfony-cli/terminal"

	"github.com/packetloom/engineio/parser"
)

func versionCommand() *console.Command {
	return &console.Command{
		Category: "introspect",
		Name:     "version",
		Usage:    "Print the Engine.IO protocol version this codec speaks",
		Action: func(ctx *console.Context) error {
			terminal.Printf("Engine.IO protocol %d\n", parser.Protocol)
			return nil
		},
	}
}
