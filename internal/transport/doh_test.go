package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoHTransportExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != dnsMessageContentType {
			t.Errorf("Content-Type = %q, want %q", ct, dnsMessageContentType)
		}
		body, _ := io.ReadAll(r.Body)
		reply := append([]byte{}, body...)
		reply[2] |= 0x80
		w.Header().Set("Content-Type", dnsMessageContentType)
		w.Write(reply)
	}))
	defer srv.Close()

	tr, err := NewDoHTransport(DoHConfig{URL: srv.URL})
	if err != nil {
		t.Fatalf("NewDoHTransport: %v", err)
	}
	if tr.Mode() != ModeDoH {
		t.Fatalf("Mode() = %v, want ModeDoH", tr.Mode())
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

func TestDoHTransportNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	tr, err := NewDoHTransport(DoHConfig{URL: srv.URL})
	if err != nil {
		t.Fatalf("NewDoHTransport: %v", err)
	}
	_, err = tr.Exchange(context.Background(), []byte{0})
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
