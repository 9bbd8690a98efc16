// Package config defines millet-bridge configuration.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// File represents the user configuration file for millet-bridge.
type File struct {
	// Path of the millet-ls binary to execute instead of the copy
	// bundled under the install directory.
	ServerPath string

	// Root directory used for LSP initialization.
	RootDirectory string

	// Write stderr of the server to this file.
	// If it's not an absolute path, it'll become relative to the cache directory.
	StderrFile string

	// Write bridge log messages to this file instead of stderr.
	// If it's not an absolute path, it'll become relative to the cache directory.
	LogFile string

	// Don't show diagnostics sent by the server.
	HideDiagnostics bool

	// Print to stderr the full rpc trace in lsp inspector format
	RPCTrace bool
}

// Config configures millet-bridge.
type Config struct {
	File

	// Show current configuration and exit
	ShowConfig bool

	// Print more messages to stderr
	Verbose bool
}

// Default returns the default Config.
func Default() *Config {
	rootDir := "/"
	switch runtime.GOOS {
	case "windows":
		rootDir = `C:\`
	}
	return &Config{
		File: File{
			RootDirectory: rootDir,
		},
	}
}

func userConfigFilename() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "millet-bridge/config.toml"), nil
}

// Load loads Config from file system, falling back to a default if it
// doesn't exist.
func Load() (*Config, error) {
	def := Default()

	filename, err := userConfigFilename()
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(filename)
	if os.IsNotExist(err) {
		return def, nil
	}

	cfg, err := load(filename)
	if err != nil {
		return nil, err
	}

	if cfg.File.RootDirectory == "" {
		cfg.File.RootDirectory = def.File.RootDirectory
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	cacheDir = filepath.Join(cacheDir, "millet-bridge")
	err = os.MkdirAll(cacheDir, 0700)
	if err != nil {
		return nil, err
	}
	if cfg.StderrFile != "" && !filepath.IsAbs(cfg.StderrFile) {
		cfg.StderrFile = filepath.Join(cacheDir, cfg.StderrFile)
	}
	if cfg.LogFile != "" && !filepath.IsAbs(cfg.LogFile) {
		cfg.LogFile = filepath.Join(cacheDir, cfg.LogFile)
	}
	return cfg, nil
}

func load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var f File
	err = toml.Unmarshal(b, &f)
	if err != nil {
		return nil, err
	}
	return &Config{File: f}, nil
}

// Write writes Config to writer w.
func Write(w io.Writer, cfg *Config) error {
	filename, err := userConfigFilename()
	if err == nil {
		fmt.Fprintf(w, "# Configuration file location: %v\n\n", filename)
	} else {
		fmt.Fprintf(w, "# Could not find configuration file location: %v\n\n", err)
	}
	return toml.NewEncoder(w).Encode(cfg.File)
}

// ParseFlags parses command line flags and updates Config.
func (cfg *Config) ParseFlags(f *flag.FlagSet, arguments []string) error {
	f.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose output")
	f.BoolVar(&cfg.ShowConfig, "showconfig", false, "show configuration values and exit")
	f.StringVar(&cfg.ServerPath, "server", cfg.ServerPath,
		"path of the millet-ls binary to execute instead of the bundled one")
	f.StringVar(&cfg.RootDirectory, "rootdir", cfg.RootDirectory,
		"root directory used for LSP initialization")
	f.BoolVar(&cfg.HideDiagnostics, "hidediag", cfg.HideDiagnostics,
		"hide diagnostics sent by the server")
	f.BoolVar(&cfg.RPCTrace, "rpc.trace", cfg.RPCTrace,
		"print the full rpc trace in lsp inspector format")
	return f.Parse(arguments)
}
