package netsys

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSystemInterfaces_Smoke(t *testing.T) {
	ifaces, err := SystemInterfaces{}.Interfaces()
	if err != nil {
		t.Fatalf("Interfaces: %v", err)
	}
	for _, ifc := range ifaces {
		if ifc.Name == "" {
			t.Error("interface with empty name")
		}
	}
}

func TestTCPDialer_Connect(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
	}()

	latency, err := TCPDialer{}.Connect(context.Background(), ln.Addr().String(), 2*time.Second)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if latency <= 0 {
		t.Errorf("latency = %v, want > 0", latency)
	}
}

func TestTCPDialer_Refused(t *testing.T) {
	// Grab a port and close it so nothing is listening.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	if _, err := (TCPDialer{}).Connect(context.Background(), addr, time.Second); err == nil {
		t.Error("expected connection error to a closed port")
	}
}

func TestStdTLSDialer_Handshake(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer ts.Close()

	addr := ts.Listener.Addr().String()
	d := &StdTLSDialer{InsecureSkipVerify: true}
	info, err := d.Handshake(context.Background(), addr, 2*time.Second)
	if err != nil {
		t.Fatalf("Handshake: %v", err)
	}
	if info.Latency <= 0 {
		t.Errorf("latency = %v, want > 0", info.Latency)
	}
	if info.Version == 0 || info.CipherSuite == 0 {
		t.Errorf("negotiated state missing: %+v", info)
	}
}

func TestStdTLSDialer_RefusesPlainTCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Write([]byte("not tls")) //nolint:errcheck
			conn.Close()
		}
	}()

	d := &StdTLSDialer{InsecureSkipVerify: true}
	if _, err := d.Handshake(context.Background(), ln.Addr().String(), time.Second); err == nil {
		t.Error("expected handshake failure against a non-TLS listener")
	}
}

func TestStdHTTPClient_Get(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	}))
	defer ts.Close()

	res, err := (&StdHTTPClient{}).Get(context.Background(), ts.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d", res.StatusCode)
	}
	if res.Latency <= 0 {
		t.Errorf("latency = %v, want > 0", res.Latency)
	}
}

func TestStdHTTPClient_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	res, err := (&StdHTTPClient{}).Get(context.Background(), ts.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if res.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", res.StatusCode)
	}
}

func TestIsEchoReply_RejectsGarbage(t *testing.T) {
	if isEchoReply([]byte{0x01, 0x02}, 1, 1, true) {
		t.Error("truncated packet should not match")
	}
	if isEchoReply(nil, 1, 1, true) {
		t.Error("nil packet should not match")
	}
}

func TestEchoMessage_RoundTrip(t *testing.T) {
	wb, err := echoMessage(0x1234, 7)
	if err != nil {
		t.Fatalf("echoMessage: %v", err)
	}
	if len(wb) == 0 {
		t.Fatal("empty message")
	}
	// An echo request is not an echo reply, whatever the id/seq.
	if isEchoReply(wb, 0x1234, 7, false) {
		t.Error("request should not match as a reply")
	}
}
