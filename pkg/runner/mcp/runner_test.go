package mcp

import (
	"net"
	"testing"
)

func TestParseTransport(t *testing.T) {
	for in, want := range map[string]Transport{"": TransportStdio, "STDIO": TransportStdio, " http ": TransportHTTP} {
		got, err := ParseTransport(in)
		if err != nil || got != want {
			t.Errorf("ParseTransport(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseTransport("sse"); err == nil {
		t.Fatal("expected error for sse")
	}
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		ep   Endpoint
		addr net.Addr
		want string
	}{
		{Endpoint{}, &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080}, "http://127.0.0.1:8080/mcp"},
		{Endpoint{Path: "rpc"}, &net.TCPAddr{IP: net.IPv4zero, Port: 9000}, "http://127.0.0.1:9000/rpc"},
		{Endpoint{CertFile: "c", KeyFile: "k"}, &net.TCPAddr{IP: net.IPv6loopback, Port: 443}, "https://[::1]:443/mcp"},
	}
	for _, tt := range tests {
		if got := tt.ep.URL(tt.addr); got != tt.want {
			t.Errorf("URL(%v) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestEndpointNeedsBothTLSFiles(t *testing.T) {
	if err := (Endpoint{CertFile: "c"}).validate(); err == nil {
		t.Fatal("expected error with only a certificate")
	}
	if err := (Endpoint{}).validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
