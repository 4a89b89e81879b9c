package bridge

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ws "github.com/gorilla/websocket"

	"github.com/packetloom/engineio/packet"
)

func TestServeWebSocketRoundTrip(t *testing.T) {
	upgrader := ws.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("server upgrade: %v", err)
			return
		}
		defer conn.Close()

		packets := []*packet.Packet{
			packet.NewText(packet.MESSAGE, "hello"),
			packet.New(packet.PING, nil),
		}
		if err := SendWebSocket(conn, packets, true); err != nil {
			t.Errorf("SendWebSocket: %v", err)
		}
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/"
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("client dial: %v", err)
	}
	defer conn.Close()

	var received []*packet.Packet
	err = ServeWebSocket(conn, packet.BinaryTypeBuffer, func(pkt *packet.Packet) error {
		received = append(received, pkt)
		if len(received) == 2 {
			return errStopAfterTwo
		}
		return nil
	})
	if err != nil && err != errStopAfterTwo {
		t.Fatalf("ServeWebSocket: %v", err)
	}

	if len(received) != 2 {
		t.Fatalf("len(received) = %d, want 2", len(received))
	}
	if received[0].Type != packet.MESSAGE {
		t.Fatalf("received[0].Type = %v, want %v", received[0].Type, packet.MESSAGE)
	}
	if received[1].Type != packet.PING {
		t.Fatalf("received[1].Type = %v, want %v", received[1].Type, packet.PING)
	}
}

var errStopAfterTwo = stopError{}

type stopError struct{}

func (stopError) Error() string { return "stop after two packets" }
