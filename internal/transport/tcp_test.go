package transport

import (
	"context"
	"io"
	"net"
	"testing"
	"time"
)

func TestTCPTransportExchange(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		var lengthBuf [2]byte
		if _, err := io.ReadFull(conn, lengthBuf[:]); err != nil {
			return
		}
		msgLen := int(lengthBuf[0])<<8 | int(lengthBuf[1])
		msg := make([]byte, msgLen)
		if _, err := io.ReadFull(conn, msg); err != nil {
			return
		}
		msg[2] |= 0x80 // set QR bit

		reply := make([]byte, 2+len(msg))
		reply[0] = byte(len(msg) >> 8)
		reply[1] = byte(len(msg))
		copy(reply[2:], msg)
		conn.Write(reply)
	}()

	tr, err := NewTCPTransport(TCPConfig{Endpoint: ln.Addr().String(), Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewTCPTransport: %v", err)
	}
	if tr.Mode() != ModeTCP || !tr.UsesLeadingLength() {
		t.Fatalf("unexpected transport shape: mode=%v leadingLength=%v", tr.Mode(), tr.UsesLeadingLength())
	}

	query := []byte{0x00, 0x01, 0x01, 0x00, 0, 1, 0, 0, 0, 0, 0, 0}
	reply, err := tr.Exchange(context.Background(), query)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}
	if reply[2]&0x80 == 0 {
		t.Fatal("expected QR bit set in reply")
	}
}
