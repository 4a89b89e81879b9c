package commands

import (
	"testing"

	"github.com/packetloom/engineio/packet"
)

func TestPacketJSONText(t *testing.T) {
	got, err := packetJSON(packet.NewText(packet.MESSAGE, "hello"))
	if err != nil {
		t.Fatalf("packetJSON: %v", err)
	}
	want := `{"type":"message","data":"hello"}`
	if string(got) != want {
		t.Fatalf("packetJSON = %s, want %s", got, want)
	}
}

func TestPacketJSONBinary(t *testing.T) {
	got, err := packetJSON(packet.NewBinary(packet.MESSAGE, []byte{0x01, 0x02}))
	if err != nil {
		t.Fatalf("packetJSON: %v", err)
	}
	want := `{"type":"message","data":"0102","binary":true}`
	if string(got) != want {
		t.Fatalf("packetJSON = %s, want %s", got, want)
	}
}

func TestPacketJSONNoData(t *testing.T) {
	got, err := packetJSON(packet.New(packet.PING, nil))
	if err != nil {
		t.Fatalf("packetJSON: %v", err)
	}
	want := `{"type":"ping"}`
	if string(got) != want {
		t.Fatalf("packetJSON = %s, want %s", got, want)
	}
}
