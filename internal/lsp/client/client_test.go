package client

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/millet-lsp/millet-bridge/internal/lsp/protocol"
)

// fakeServer speaks just enough LSP to test the client side of the
// connection.
type fakeServer struct {
	mu       sync.Mutex
	shutdown bool

	opened chan protocol.TextDocumentItem
	closed chan protocol.TextDocumentIdentifier
	exited chan struct{}
}

func serveLSP(t *testing.T, conn net.Conn) *fakeServer {
	t.Helper()
	fs := &fakeServer{
		opened: make(chan protocol.TextDocumentItem, 8),
		closed: make(chan protocol.TextDocumentIdentifier, 8),
		exited: make(chan struct{}),
	}
	stream := jsonrpc2.NewBufferedStream(conn, jsonrpc2.VSCodeObjectCodec{})
	jsonrpc2.NewConn(context.Background(), stream, fs)
	return fs
}

func (fs *fakeServer) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	switch req.Method {
	case "initialize":
		kind := protocol.TDSKFull
		conn.Reply(ctx, req.ID, &protocol.InitializeResult{
			Capabilities: protocol.ServerCapabilities{
				TextDocumentSync: &protocol.TextDocumentSyncOptionsOrKind{
					Kind: &kind,
				},
				HoverProvider:      true,
				DefinitionProvider: true,
			},
		})
	case "initialized":
	case "textDocument/didOpen":
		var params protocol.DidOpenTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return
		}
		fs.opened <- params.TextDocument
	case "textDocument/didClose":
		var params protocol.DidCloseTextDocumentParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			return
		}
		fs.closed <- params.TextDocument
	case "shutdown":
		fs.mu.Lock()
		fs.shutdown = true
		fs.mu.Unlock()
		conn.Reply(ctx, req.ID, nil)
	case "exit":
		close(fs.exited)
	}
}

func (fs *fakeServer) sawShutdown() bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.shutdown
}

func newTestConn(t *testing.T) (*Conn, *fakeServer) {
	t.Helper()
	p0, p1 := net.Pipe()
	fs := serveLSP(t, p0)
	c, err := New(p1, &Config{
		DiagWriter: io.Discard,
		RootDir:    "/",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c, fs
}

func TestInitializeHandshake(t *testing.T) {
	c, _ := newTestConn(t)
	defer c.Close()

	tds := c.Capabilities.TextDocumentSync
	if tds == nil || tds.Options == nil {
		t.Fatalf("no TextDocumentSync in capabilities: %+v", c.Capabilities)
	}
	if got, want := tds.Options.Change, protocol.TDSKFull; got != want {
		t.Errorf("TextDocumentSync change is %v; expected %v", got, want)
	}
	if !c.Capabilities.HoverProvider {
		t.Errorf("server capabilities missing hover provider: %+v", c.Capabilities)
	}
}

func TestDidOpenDidClose(t *testing.T) {
	c, fs := newTestConn(t)
	defer c.Close()

	dir := t.TempDir()
	filename := filepath.Join(dir, "main.sml")
	src := "val x = 3\n"
	if err := os.WriteFile(filename, []byte(src), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := c.DidOpen(filename, []byte(src)); err != nil {
		t.Fatalf("DidOpen failed: %v", err)
	}
	select {
	case got := <-fs.opened:
		want := protocol.TextDocumentItem{
			URI:        ToURI(filename),
			LanguageID: "sml",
			Version:    0,
			Text:       src,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("didOpen mismatch (-want +got):\n%s", diff)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not receive didOpen")
	}

	if err := c.DidClose(filename); err != nil {
		t.Fatalf("DidClose failed: %v", err)
	}
	select {
	case got := <-fs.closed:
		if got.URI != ToURI(filename) {
			t.Errorf("didClose URI is %q; expected %q", got.URI, ToURI(filename))
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not receive didClose")
	}
}

func TestShutdown(t *testing.T) {
	c, fs := newTestConn(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if !fs.sawShutdown() {
		t.Errorf("server did not receive shutdown request")
	}
	select {
	case <-fs.exited:
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not receive exit notification")
	}
}

func TestFileLanguage(t *testing.T) {
	for _, tc := range []struct {
		name, lang string
	}{
		{"/home/gopher/main.sml", "sml"},
		{"/home/gopher/stream.sig", "sml"},
		{"/home/gopher/stream.fun", "sml"},
		{"/home/gopher/hello.go", "go"},
		{"/home/gopher/README", ""},
	} {
		lang := FileLanguage(tc.name)
		if lang != tc.lang {
			t.Errorf("language ID of %q is %q; expected %q", tc.name, lang, tc.lang)
		}
	}
}
