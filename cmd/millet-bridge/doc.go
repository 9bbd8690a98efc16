/*
The program millet-bridge connects an editor session to millet-ls,
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

	-extdir string
		install directory that holds the bundled out/millet-ls
	-hidediag
		hide diagnostics sent by the server
	-rootdir string
		root directory used for LSP initialization (default "/")
	-rpc.trace
		print the full rpc trace in lsp inspector format
	-server string
		path of the millet-ls binary to execute instead of the bundled one
	-showconfig
		show configuration values and exit
	-v	Verbose output
*/
package main
