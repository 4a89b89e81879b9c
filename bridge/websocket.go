// Package bridge wires the codec in package parser to the transport and
// messaging libraries an Engine.IO deployment needs around it, without
// reimplementing the session, handshake, heartbeat or reconnection logic
// those transports would normally carry. Each function here owns exactly
// one request or one connection's read loop and nothing more.
package bridge

import (
	"errors"
	"io"
	"net"

	ws "github.com/gorilla/websocket"

	"github.com/packetloom/engineio/packet"
	"github.com/packetloom/engineio/parser"
	"github.com/packetloom/engineio/pkg/log"
	"github.com/packetloom/engineio/pkg/types"
)

var wsLog = log.NewLog("engineio:bridge:ws")

// ServeWebSocket reads whole WebSocket messages off conn and feeds each one
// straight to parser.DecodePacket, one message per frame. cb is called with
// the decoded packet; returning a non-nil error from cb stops the loop and
// is returned to the caller. The loop also stops on a close frame or a read
// error, in which case it returns that error (nil on a normal close).
//
// This is the minimal shape of a transport handing the codec raw buffers:
// no ping/pong scheduling, no upgrade negotiation, no session state.
func ServeWebSocket(conn *ws.Conn, binaryType packet.BinaryType, cb func(*packet.Packet) error) error {
	for {
		mt, r, err := conn.NextReader()
		if err != nil {
			if ws.IsCloseError(err, ws.CloseNormalClosure, ws.CloseGoingAway) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		var buf types.BufferInterface
		switch mt {
		case ws.BinaryMessage:
			buf = types.NewBytesBuffer(nil)
		case ws.TextMessage:
			buf = types.NewStringBuffer(nil)
		default:
			continue
		}
		if _, err := buf.ReadFrom(r); err != nil {
			return err
		}

		pkt := parser.DecodePacket(buf, binaryType)
		wsLog.Debugf("received packet type %q", pkt.Type)
		if err := cb(pkt); err != nil {
			return err
		}
	}
}

// SendWebSocket encodes each packet with parser.EncodePacket and writes it
// as one WebSocket message, text or binary depending on which form the
// encoder chose. supportsBinary is passed straight through to EncodePacket.
func SendWebSocket(conn *ws.Conn, packets []*packet.Packet, supportsBinary bool) error {
	for _, pkt := range packets {
		buf, err := parser.EncodePacket(pkt, supportsBinary)
		if err != nil {
			return err
		}

		mt := ws.BinaryMessage
		if _, isText := buf.(*types.StringBuffer); isText {
			mt = ws.TextMessage
		}

		w, err := conn.NextWriter(mt)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, buf); err != nil {
			w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
	}
	return nil
}
