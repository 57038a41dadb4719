package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/logger"
)

// Transport selects how the MCP server is exposed.
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

const (
	defaultAddr = "127.0.0.1:8080"
	defaultPath = "/mcp"
)

// ParseTransport accepts "stdio" or "http", case insensitive. Empty is stdio.
func ParseTransport(v string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(v))); t {
	case "":
		return TransportStdio, nil
	case TransportStdio, TransportHTTP:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported transport %q (expected stdio or http)", v)
	}
}

// Endpoint is where the streamable HTTP transport listens.
type Endpoint struct {
	Addr string
	Path string
	// TLS is enabled when both files are set.
	CertFile string
	KeyFile  string
}

func (e Endpoint) path() string {
	p := strings.TrimSpace(e.Path)
	if p == "" {
		return defaultPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func (e Endpoint) validate() error {
	if (e.CertFile == "") != (e.KeyFile == "") {
		return errors.New("mcp: tls needs both a certificate and a key")
	}
	return nil
}

// URL is the address clients use once the listener is bound to a.
func (e Endpoint) URL(a net.Addr) string {
	scheme := "http"
	if e.CertFile != "" {
		scheme = "https"
	}
	host, port, err := net.SplitHostPort(a.String())
	if err != nil {
		return scheme + "://" + a.String() + e.path()
	}
	if ip := net.ParseIP(host); ip == nil || ip.IsUnspecified() {
		host = "127.0.0.1"
	}
	return scheme + "://" + net.JoinHostPort(host, port) + e.path()
}

// Runner serves the journal over MCP until ctx is done or stdin closes.
type Runner struct {
	Service   *app.Service
	Name      string
	Version   string
	Transport Transport
	Endpoint  Endpoint
	// Listening is called with the client URL once the HTTP listener is up.
	Listening func(url string)
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("mcp: no journal")
	}
	name, version := r.Name, r.Version
	if name == "" {
		name = "spreads"
	}
	if version == "" {
		version = "dev"
	}
	srv := NewServer(NewService(r.Service), name, version)

	switch r.Transport {
	case "", TransportStdio:
		logger.Info("mcp: serving", "transport", TransportStdio)
		return server.ServeStdio(srv)
	case TransportHTTP:
		return r.serveHTTP(ctx, srv)
	default:
		return fmt.Errorf("mcp: unknown transport %q", r.Transport)
	}
}

// NewServer builds the MCP server with every spreads tool and resource.
func NewServer(svc *Service, name, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		name+" MCP",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Plan with spreads: create year, month, day and multiday spreads, add tasks, notes and events, migrate open tasks and review the Inbox."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	ep := r.Endpoint
	if err := ep.validate(); err != nil {
		return err
	}
	addr := strings.TrimSpace(ep.Addr)
	if addr == "" {
		addr = defaultAddr
	}

	mux := http.NewServeMux()
	mux.Handle(ep.path(), server.NewStreamableHTTPServer(srv))
	httpSrv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mcp: listen %s: %w", addr, err)
	}
	url := ep.URL(ln.Addr())
	logger.Info("mcp: serving", "transport", TransportHTTP, "url", url)
	if r.Listening != nil {
		r.Listening(url)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if ep.CertFile != "" {
		err = httpSrv.ServeTLS(ln, ep.CertFile, ep.KeyFile)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
