// Package bridge manages the lifecycle of the single connection between an
// editor host and the millet-ls language server.
//
// The host activates the bridge once per load and deactivates it once per
// unload. The bridge guarantees that at most one live connection to the
// server exists at any time; everything the server does with that connection
// (diagnostics, hover, and so on) is out of the bridge's hands.
package bridge

import (
	"context"

	"github.com/millet-lsp/millet-bridge/internal/lsp/protocol"
)

const (
	// ClientName is the human-readable name of the millet-ls connection.
	// It is also the file name of the bundled server binary.
	ClientName = "millet-ls"

	// LanguageID is the LSP language identifier handled by millet-ls.
	LanguageID = "sml"

	// ServerDir is the directory under the host's install dir that holds
	// the bundled server binary.
	ServerDir = "out"
)

// Disposable is a resource whose release performs cleanup. The host disposes
// registered disposables when it unloads, so cleanup happens even if
// deactivation is never explicitly requested.
type Disposable interface {
	Dispose() error
}

// Host is the surface the editor host supplies to the bridge: resolution of
// paths relative to the install dir, and a registry of disposables the host
// releases on unload.
type Host interface {
	AbsPath(rel string) string
	Register(d Disposable)
}

// ServerOptions describes how to spawn the language server process. The
// process speaks LSP on its standard input and output.
type ServerOptions struct {
	Command string
	Args    []string
}

// Client is a connection to the language server process. Start begins the
// session without blocking and hands back the handle that releases it. Stop
// tears the session down; its error is the outcome of the teardown.
type Client interface {
	Start() Disposable
	Stop(ctx context.Context) error
}

// ClientFactory constructs a Client from the connection name, the server
// spawn options, and the document selector the connection applies to.
// verbose forces the client's debug output on.
type ClientFactory func(name string, opts ServerOptions, selector protocol.DocumentSelector, verbose bool) Client
