// Package commands implements the engineiocli subcommands: one-shot packet
// and payload encode/decode, plus a version command, for inspecting the
// Engine.IO v2 wire format from a shell without writing Go.
package commands

import (
	"github.com/symfony-cli/console"
)

// CommonCommands returns every subcommand engineiocli registers.
func CommonCommands() []*console.Command {
	return []*console.Command{
		encodePacketCommand(),
		decodePacketCommand(),
		encodePayloadCommand(),
		decodePayloadCommand(),
		versionCommand(),
	}
}
