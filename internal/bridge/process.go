package bridge

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/millet-lsp/millet-bridge/internal/lsp/client"
	"github.com/millet-lsp/millet-bridge/internal/lsp/protocol"
)

// ProcessConfig carries the connection settings the real client needs beyond
// what the manager supplies.
type ProcessConfig struct {
	DiagWriter io.Writer // server-sent diagnostics and messages are printed here
	RootDir    string    // root directory used for LSP initialization
	StderrFile string    // write the server's stderr to this file
	HideDiag   bool      // don't print diagnostics sent by the server
	RPCTrace   bool      // print the full rpc trace to stderr
}

// ProcessClient runs the language server as a child process and connects to
// it over the process's standard input and output.
//
// Start returns the release handle immediately while the spawn and the
// initialize handshake continue in the background; failures to come up are
// logged and leave the client with nothing to stop.
type ProcessClient struct {
	name     string
	opts     ServerOptions
	selector protocol.DocumentSelector
	verbose  bool
	cfg      ProcessConfig

	launched atomic.Bool
	once     sync.Once
	started  chan struct{} // closed when the start attempt has settled
	srv      *client.Server
	err      error

	stop sync.Once
}

// NewProcessClient creates a client for the server described by opts,
// restricted to documents matched by selector.
func NewProcessClient(name string, opts ServerOptions, selector protocol.DocumentSelector, verbose bool, cfg *ProcessConfig) *ProcessClient {
	c := &ProcessClient{
		name:     name,
		opts:     opts,
		selector: selector,
		verbose:  verbose,
		started:  make(chan struct{}),
	}
	if cfg != nil {
		c.cfg = *cfg
	}
	return c
}

// NewClientFactory returns the ClientFactory backed by ProcessClient.
func NewClientFactory(cfg *ProcessConfig) ClientFactory {
	return func(name string, opts ServerOptions, selector protocol.DocumentSelector, verbose bool) Client {
		return NewProcessClient(name, opts, selector, verbose, cfg)
	}
}

// Start begins the server session in the background and returns the
// disposable that releases it. Calling Start again returns another handle
// for the same session.
func (c *ProcessClient) Start() Disposable {
	c.launched.Store(true)
	c.once.Do(func() {
		go c.run()
	})
	return disposeFunc(func() error {
		return c.Stop(context.Background())
	})
}

func (c *ProcessClient) run() {
	defer close(c.started)

	var stderr io.Writer
	if c.cfg.StderrFile != "" {
		f, err := os.Create(c.cfg.StderrFile)
		if err != nil {
			c.err = errors.Wrap(err, "could not create server stderr file")
			log.Printf("%v: %v", c.name, c.err)
			return
		}
		stderr = f
	} else if c.verbose {
		stderr = os.Stderr
	}

	srv, err := client.StartServer(append([]string{c.opts.Command}, c.opts.Args...), &client.Config{
		DiagWriter: c.cfg.DiagWriter,
		RootDir:    c.cfg.RootDir,
		HideDiag:   c.cfg.HideDiag,
		RPCTrace:   c.cfg.RPCTrace,
	}, stderr)
	if err != nil {
		c.err = err
		log.Printf("%v: failed to start language server: %v", c.name, err)
		return
	}
	c.srv = srv
}

// Stop waits for an in-flight start to settle and shuts the server down.
// Stopping a client that was never started, or that failed to come up, is a
// successful no-op; a second stop is too.
func (c *ProcessClient) Stop(ctx context.Context) error {
	if !c.launched.Load() {
		return nil
	}
	select {
	case <-c.started:
	case <-ctx.Done():
		return ctx.Err()
	}
	if c.srv == nil {
		return nil
	}
	var err error
	c.stop.Do(func() {
		err = c.srv.Stop(ctx)
	})
	return err
}

// OpenFile announces filename to the server with textDocument/didOpen,
// provided the document selector covers it. Diagnostics for the file then
// stream to the configured writer.
func (c *ProcessClient) OpenFile(ctx context.Context, filename string) error {
	select {
	case <-c.started:
	case <-ctx.Done():
		return ctx.Err()
	}
	if c.err != nil {
		return c.err
	}
	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	if !c.selector.Matches("file", client.FileLanguage(abs)) {
		return errors.Errorf("%v does not handle %v", c.name, filename)
	}
	body, err := os.ReadFile(abs)
	if err != nil {
		return err
	}
	return c.srv.Conn.DidOpen(abs, body)
}

type disposeFunc func() error

func (f disposeFunc) Dispose() error { return f() }
