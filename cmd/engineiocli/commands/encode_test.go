package commands

import (
	"io"
	"testing"

	"github.com/packetloom/engineio/packet"
)

func TestParsePacketArgs(t *testing.T) {
	packets, err := parsePacketArgs("message:hello ping:")
	if err != nil {
		t.Fatalf("parsePacketArgs: %v", err)
	}
	if len(packets) != 2 {
		t.Fatalf("len(packets) = %d, want 2", len(packets))
	}
	if packets[0].Type != packet.MESSAGE {
		t.Fatalf("packets[0].Type = %v, want %v", packets[0].Type, packet.MESSAGE)
	}
	data, err := io.ReadAll(packets[0].Data)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("packets[0].Data = %q, want %q", data, "hello")
	}
	if packets[1].Type != packet.PING || packets[1].Data != nil {
		t.Fatalf("packets[1] = %+v", packets[1])
	}
}

func TestParsePacketArgsRejectsInvalidType(t *testing.T) {
	if _, err := parsePacketArgs("bogus:data"); err == nil {
		t.Fatalf("expected error for invalid packet type")
	}
}
