package main

import (
	"fmt"
	"os"
	"time"

	"github.com/symfony-cli/console"
	"github.com/symfony-cli/terminal"

	"github.com/packetloom/engineio/cmd/engineiocli/commands"
)

var (
	version   = "0.1.0"
	channel   = "stable"
	buildDate = time.Now().Format("2006-01-02")
)

func main() {
	if os.Getenv("ENGINEIO_DEBUG") == "1" {
		terminal.SetLogLevel(5)
	}

	app := &console.Application{
		Name:          "engineiocli",
		Usage:         "Inspect and exercise the Engine.IO v2 wire codec from the shell",
		Copyright:     fmt.Sprintf("(c) %d", time.Now().Year()),
		FlagEnvPrefix: []string{"ENGINEIO"},
		Commands:      commands.CommonCommands(),
		Version:       version,
		Channel:       channel,
		BuildDate:     buildDate,
	}

	app.Run(os.Args)
}
