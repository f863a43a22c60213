package mcpquic

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/quic-go/quic-go"
)

// DefaultHandshakeTimeout bounds the MCP initialize exchange after the
// QUIC connection is up.
const DefaultHandshakeTimeout = 10 * time.Second

// Client connects to an MCP server over QUIC. Connect performs the full
// MCP initialize handshake; the session then carries all tool calls.
type Client struct {
	addr             string
	tlsCfg           *tls.Config
	handshakeTimeout time.Duration
	impl             *mcp.Implementation

	conn    *quic.Conn
	stream  *quic.Stream
	session *mcp.ClientSession
}

// ClientOption configures a Client before it dials.
type ClientOption func(*Client)

// WithClientTLS replaces the default verifying TLS config. Pass
// ClientTLSConfig(true) to accept a self-signed development server.
func WithClientTLS(cfg *tls.Config) ClientOption {
	return func(c *Client) { c.tlsCfg = cfg }
}

// WithHandshakeTimeout bounds the MCP initialize exchange.
func WithHandshakeTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.handshakeTimeout = d }
}

// WithClientInfo sets the implementation info announced during initialize.
func WithClientInfo(name, version string) ClientOption {
	return func(c *Client) { c.impl = &mcp.Implementation{Name: name, Version: version} }
}

// NewClient prepares a client for addr. The zero configuration verifies the
// server certificate; nothing is dialed until Connect.
func NewClient(addr string, opts ...ClientOption) *Client {
	c := &Client{
		addr:             addr,
		tlsCfg:           ClientTLSConfig(false),
		handshakeTimeout: DefaultHandshakeTimeout,
		impl:             &mcp.Implementation{Name: "lectio-quic-client", Version: "1.0.0"},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Connect dials the server, validates ALPN, sends the stream preamble and
// runs the MCP initialize handshake.
func (c *Client) Connect(ctx context.Context) error {
	conn, err := quic.DialAddr(ctx, c.addr, c.tlsCfg, ProductionQUICConfig())
	if err != nil {
		return &ConnectionError{RemoteAddr: c.addr, Code: ConnErrorNoError, Err: err}
	}

	stream, err := c.openStream(ctx, conn)
	if err != nil {
		return err
	}
	c.conn = conn
	c.stream = stream

	transport := &mcp.IOTransport{
		Reader: io.NopCloser(stream),
		Writer: streamWriteCloser{stream},
	}

	connectCtx, cancel := context.WithTimeout(ctx, c.handshakeTimeout)
	defer cancel()

	session, err := mcp.NewClient(c.impl, nil).Connect(connectCtx, transport, nil)
	if err != nil {
		c.closeTransport()
		return fmt.Errorf("mcp connect: %w", err)
	}
	c.session = session
	return nil
}

func (c *Client) openStream(ctx context.Context, conn *quic.Conn) (*quic.Stream, error) {
	alpn := conn.ConnectionState().TLS.NegotiatedProtocol
	if alpn != ALPNProtocolMCP {
		conn.CloseWithError(ConnErrorUnsupportedALPN, "bad ALPN")
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedALPN, alpn)
	}

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		conn.CloseWithError(ConnErrorProtocolViolation, "stream open failed")
		return nil, fmt.Errorf("open stream: %w", err)
	}

	if err := SendMagicBytes(stream); err != nil {
		stream.Close()
		conn.CloseWithError(ConnErrorProtocolViolation, "magic bytes failed")
		return nil, err
	}
	return stream, nil
}

func (c *Client) ListTools(ctx context.Context) (*mcp.ListToolsResult, error) {
	if c.session == nil {
		return nil, ErrNotConnected
	}
	return c.session.ListTools(ctx, nil)
}

func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	if c.session == nil {
		return nil, ErrNotConnected
	}
	return c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
}

func (c *Client) Ping(ctx context.Context) error {
	if c.session == nil {
		return ErrNotConnected
	}
	return c.session.Ping(ctx, nil)
}

func (c *Client) Close() error {
	if c.session != nil {
		c.session.Close()
	}
	return c.closeTransport()
}

func (c *Client) closeTransport() error {
	if c.stream != nil {
		c.stream.Close()
	}
	if c.conn != nil {
		c.conn.CloseWithError(ConnErrorNoError, "client closing")
	}
	return nil
}
