package bridge

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/millet-lsp/millet-bridge/internal/lsp/protocol"
)

// Manager enforces the invariant that at most one live millet-ls connection
// exists. The guard lives in the manager's own methods rather than in an
// ambient variable, so misuse by the host (a duplicate activation, an early
// deactivation) degrades to a log line or a no-op instead of a leaked
// server process.
type Manager struct {
	mu        sync.Mutex
	client    Client
	newClient ClientFactory
	log       *log.Logger
}

// NewManager creates a manager that builds its client with newClient.
// A nil logger falls back to stderr.
func NewManager(newClient ClientFactory, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Manager{
		newClient: newClient,
		log:       logger,
	}
}

// Activate constructs the millet-ls client, starts it, registers the start
// handle with the host, and stores the client. The server command is the
// bundled binary under the host's install dir; the connection applies to
// local files in the sml language only.
//
// A second call while a client is stored logs a warning and does nothing
// else: no second client, no overwrite.
func (m *Manager) Activate(host Host) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		m.log.Printf("%v: error: cannot re-activate", ClientName)
		return
	}
	m.log.Printf("%v: activate", ClientName)

	opts := ServerOptions{
		Command: host.AbsPath(filepath.Join(ServerDir, ClientName)),
	}
	selector := protocol.DocumentSelector{
		{Scheme: "file", Language: LanguageID},
	}
	c := m.newClient(ClientName, opts, selector, true)
	host.Register(c.Start())
	m.client = c
}

// Deactivate stops the stored client, if any, and returns the outcome of
// that stop verbatim. With no stored client it returns nil immediately,
// which covers both "never activated" and "already deactivated".
//
// The handle is cleared before the stop is issued, so no client is ever
// stopped twice and the manager can be activated again afterwards.
func (m *Manager) Deactivate(ctx context.Context) error {
	m.mu.Lock()
	c := m.client
	m.client = nil
	m.mu.Unlock()

	if c == nil {
		return nil
	}
	return c.Stop(ctx)
}

// Active reports whether a client is currently stored.
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client != nil
}
