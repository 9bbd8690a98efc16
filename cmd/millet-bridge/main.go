package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/millet-lsp/millet-bridge/internal/bridge"
	"github.com/millet-lsp/millet-bridge/internal/bridge/config"
	"github.com/millet-lsp/millet-bridge/internal/lsp/client"
	"github.com/millet-lsp/millet-bridge/internal/lsp/protocol"
	"github.com/millet-lsp/millet-bridge/internal/mlroot"
)

const mainDoc = `The program millet-bridge connects an editor session to millet-ls,
the language server for Standard ML.

A Language Server implements the Language Server Protocol
(see https://langserver.org/), which provides language features
like diagnostics, go to definition, hover, etc. Millet-bridge owns
only the lifecycle of that connection: it executes the millet-ls binary
bundled under the install directory (or the one named by -server or the
configuration file), holds the single live connection to it, and shuts
the server down cleanly on exit. The language features themselves are
provided by millet-ls.

Millet-bridge is optionally configured using a TOML-based configuration
file located at UserConfigDir/millet-bridge/config.toml (the -showconfig
flag prints the exact location). The command line flags override the
configuration values.

Any path arguments that name local Standard ML source files (.sml, .sig,
.fun) are announced to the server, and their diagnostics are printed to
standard output until millet-bridge is interrupted. Unless -rootdir is
given, the workspace root is derived from the first path argument by
searching for a millet.toml or an ML Basis or CM group file.

	Usage: millet-bridge [flags] [path ...]
`

func usage() {
	os.Stderr.Write([]byte(mainDoc))
	fmt.Fprintf(os.Stderr, "\n")
	flag.PrintDefaults()
	os.Exit(2)
}

// hostContext implements bridge.Host for a bridge run as a standalone
// process: the install dir is the directory of the executable unless
// overridden, and disposables are drained when the process exits.
type hostContext struct {
	dir        string
	serverPath string // points the bundled server path somewhere else

	mu          sync.Mutex
	disposables []bridge.Disposable
}

func (h *hostContext) AbsPath(rel string) string {
	if h.serverPath != "" && rel == filepath.Join(bridge.ServerDir, bridge.ClientName) {
		return h.serverPath
	}
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(h.dir, rel)
}

func (h *hostContext) Register(d bridge.Disposable) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disposables = append(h.disposables, d)
}

func (h *hostContext) disposeAll() {
	h.mu.Lock()
	ds := h.disposables
	h.disposables = nil
	h.mu.Unlock()
	for _, d := range ds {
		if err := d.Dispose(); err != nil {
			log.Printf("dispose failed: %v", err)
		}
	}
}

func installDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func main() {
	flag.Usage = usage

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config file: %v", err)
	}
	extdir := flag.String("extdir", installDir(),
		"install directory that holds the bundled "+filepath.Join(bridge.ServerDir, bridge.ClientName))
	if err := cfg.ParseFlags(flag.CommandLine, os.Args[1:]); err != nil {
		// Unreached since flag.CommandLine uses flag.ExitOnError.
		log.Fatalf("failed to parse flags: %v", err)
	}
	if cfg.ShowConfig {
		config.Write(os.Stdout, cfg)
		os.Exit(0)
	}
	if cfg.Verbose {
		client.Debug = true
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if cfg.LogFile != "" {
		f, err := os.Create(cfg.LogFile)
		if err != nil {
			log.Fatalf("could not create LogFile: %v", err)
		}
		defer f.Close()
		logger = log.New(f, "", log.LstdFlags)
	}

	host := &hostContext{
		dir:        *extdir,
		serverPath: cfg.ServerPath,
	}
	if cfg.RootDirectory == config.Default().RootDirectory && flag.NArg() > 0 {
		cfg.RootDirectory = mlroot.RootDir(flag.Arg(0))
	}
	pcfg := &bridge.ProcessConfig{
		DiagWriter: os.Stdout,
		RootDir:    cfg.RootDirectory,
		StderrFile: cfg.StderrFile,
		HideDiag:   cfg.HideDiagnostics,
		RPCTrace:   cfg.RPCTrace,
	}
	var pc *bridge.ProcessClient
	factory := func(name string, opts bridge.ServerOptions, selector protocol.DocumentSelector, verbose bool) bridge.Client {
		pc = bridge.NewProcessClient(name, opts, selector, verbose, pcfg)
		return pc
	}

	m := bridge.NewManager(factory, logger)
	m.Activate(host)

	for _, name := range flag.Args() {
		octx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := pc.OpenFile(octx, name); err != nil {
			logger.Printf("%v: %v", name, err)
		}
		cancel()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = m.Deactivate(sctx)
	host.disposeAll()
	if err != nil {
		logger.Fatalf("deactivate failed: %v", err)
	}
}
