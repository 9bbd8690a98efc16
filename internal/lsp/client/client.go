// Package client implements the client side of a connection to a language
// server that speaks LSP over its standard input and output.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/millet-lsp/millet-bridge/internal/lsp/protocol"
)

var Debug = false

// ToURI converts filename to URI.
func ToURI(filename string) protocol.DocumentURI {
	return protocol.DocumentURI("file://" + filename)
}

// ToPath converts URI to filename.
func ToPath(uri protocol.DocumentURI) string {
	return strings.TrimPrefix(string(uri), "file://")
}

func locToLink(l *protocol.Location) string {
	p := ToPath(l.URI)
	return fmt.Sprintf("%s:%v:%v-%v:%v", p,
		l.Range.Start.Line+1, l.Range.Start.Character+1,
		l.Range.End.Line+1, l.Range.End.Character+1)
}

// FileLanguage returns the LSP language identifier for filename.
func FileLanguage(filename string) string {
	lang := filepath.Ext(filename)
	if len(lang) == 0 {
		return lang
	}
	if lang[0] == '.' {
		lang = lang[1:]
	}
	switch lang {
	case "sml", "sig", "fun":
		lang = "sml"
	}
	return lang
}

var _ = (jsonrpc2.Handler)(&handler{})

// handler handles JSON-RPC requests and notifications sent by the server.
// Diagnostics and messages are printed to writer w.
type handler struct {
	w        io.Writer
	hideDiag bool
}

func (h *handler) Printf(format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(h.w, format, a...)
}

func (h *handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if strings.HasPrefix(req.Method, "$/") {
		// Ignore server dependent notifications
		if Debug {
			h.Printf("Handle: got request %#v\n", req)
		}
		return
	}
	switch req.Method {
	case "textDocument/publishDiagnostics":
		if h.hideDiag {
			return
		}
		var params protocol.PublishDiagnosticsParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			h.Printf("diagnostics unmarshal failed: %v\n", err)
			return
		}
		if len(params.Diagnostics) > 0 {
			h.Printf("LSP Diagnostics:\n")
		}
		for _, diag := range params.Diagnostics {
			loc := &protocol.Location{
				URI:   params.URI,
				Range: diag.Range,
			}
			h.Printf(" %v: %v\n", locToLink(loc), diag.Message)
		}
	case "window/showMessage":
		var params protocol.ShowMessageParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			h.Printf("window/showMessage unmarshal failed: %v\n", err)
			return
		}
		h.Printf("LSP %v: %v\n", params.Type, params.Message)
	case "window/logMessage":
		var params protocol.LogMessageParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			h.Printf("window/logMessage unmarshal failed: %v\n", err)
			return
		}
		if params.Type == protocol.Error || params.Type == protocol.Warning || Debug {
			h.Printf("LSP %v: %v\n", params.Type, params.Message)
		}

	default:
		h.Printf("Handle: got request %#v\n", req)
	}
}

// Config contains LSP client connection configuration values.
type Config struct {
	DiagWriter io.Writer // server-sent diagnostics and messages are printed here
	RootDir    string    // directory for RootURI
	HideDiag   bool      // don't print diagnostics sent by the server
	RPCTrace   bool      // print the full rpc trace to stderr
}

// Conn represents a LSP client connection.
type Conn struct {
	rpc          *jsonrpc2.Conn
	ctx          context.Context
	Capabilities *protocol.ServerCapabilities
}

// New connects to the language server reachable over conn and performs the
// initialize handshake.
func New(conn net.Conn, cfg *Config) (*Conn, error) {
	ctx := context.Background()
	w := cfg.DiagWriter
	if w == nil {
		w = os.Stderr
	}
	var opts []jsonrpc2.ConnOpt
	if cfg.RPCTrace {
		opts = append(opts, jsonrpc2.LogMessages(log.New(os.Stderr, "", 0)))
	}
	stream := jsonrpc2.NewBufferedStream(conn, jsonrpc2.VSCodeObjectCodec{})
	rpc := jsonrpc2.NewConn(ctx, stream, &handler{
		w:        w,
		hideDiag: cfg.HideDiag,
	}, opts...)

	d, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, err
	}
	params := &protocol.InitializeParams{
		RootURI: ToURI(d),
	}
	params.Capabilities.TextDocument.Synchronization.DidSave = true
	params.Capabilities.TextDocument.PublishDiagnostics.RelatedInformation = true

	var result protocol.InitializeResult
	if err := rpc.Call(ctx, "initialize", params, &result); err != nil {
		rpc.Close()
		return nil, errors.Wrap(err, "initialize failed")
	}
	if err := rpc.Notify(ctx, "initialized", &protocol.InitializedParams{}); err != nil {
		rpc.Close()
		return nil, errors.Wrap(err, "initialized failed")
	}
	return &Conn{
		rpc:          rpc,
		ctx:          ctx,
		Capabilities: &result.Capabilities,
	}, nil
}

// Shutdown performs the LSP shutdown handshake and closes the connection.
// The server is told to exit; reaping the server process, if any, is left
// to the caller.
func (c *Conn) Shutdown(ctx context.Context) error {
	if err := c.rpc.Call(ctx, "shutdown", nil, nil); err != nil {
		c.rpc.Close()
		return errors.Wrap(err, "shutdown failed")
	}
	if err := c.rpc.Notify(ctx, "exit", nil); err != nil {
		c.rpc.Close()
		return errors.Wrap(err, "exit failed")
	}
	return c.rpc.Close()
}

// Close tears the connection down without the shutdown handshake.
func (c *Conn) Close() error {
	return c.rpc.Close()
}

// DisconnectNotify returns a channel that is closed when the connection
// to the server is lost.
func (c *Conn) DisconnectNotify() <-chan struct{} {
	return c.rpc.DisconnectNotify()
}

func (c *Conn) DidOpen(filename string, body []byte) error {
	params := &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        ToURI(filename),
			LanguageID: FileLanguage(filename),
			Version:    0,
			Text:       string(body),
		},
	}
	return c.rpc.Notify(c.ctx, "textDocument/didOpen", params)
}

func (c *Conn) DidClose(filename string) error {
	params := &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{
			URI: ToURI(filename),
		},
	}
	return c.rpc.Notify(c.ctx, "textDocument/didClose", params)
}

func (c *Conn) DidSave(filename string) error {
	params := &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{
			URI: ToURI(filename),
		},
	}
	return c.rpc.Notify(c.ctx, "textDocument/didSave", params)
}
