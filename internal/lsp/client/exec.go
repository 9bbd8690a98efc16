package client

import (
	"context"
	"io"
	"net"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// Server is a language server process wired to a client connection through
// a pipe on its standard input and output.
type Server struct {
	cmd  *exec.Cmd
	conn net.Conn
	Conn *Conn
	wait chan error
}

// StartServer executes the language server command args and connects to it.
// The server's stderr is written to stderr if non-nil.
func StartServer(args []string, cfg *Config, stderr io.Writer) (*Server, error) {
	p0, p1 := net.Pipe()
	// TODO: use exec.CommandContext so a hung spawn can be cancelled.
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = p0
	cmd.Stdout = p0
	if stderr != nil {
		cmd.Stderr = stderr
	} else if Debug {
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "failed to execute language server")
	}
	wait := make(chan error, 1)
	go func() {
		wait <- cmd.Wait()
	}()
	c, err := New(p1, cfg)
	if err != nil {
		cmd.Process.Kill()
		return nil, errors.Wrapf(err, "failed to connect to language server %q", args)
	}
	return &Server{
		cmd:  cmd,
		conn: p1,
		Conn: c,
		wait: wait,
	}, nil
}

// Stop shuts the connection down and waits for the server process to exit.
// Waiting is bounded by ctx; when it expires the process is killed.
func (s *Server) Stop(ctx context.Context) error {
	err := s.Conn.Shutdown(ctx)
	s.conn.Close()
	select {
	case werr := <-s.wait:
		if err == nil && werr != nil {
			err = errors.Wrap(werr, "language server exited abnormally")
		}
	case <-ctx.Done():
		s.cmd.Process.Kill()
		if err == nil {
			err = errors.Wrap(ctx.Err(), "timed out waiting for language server to exit")
		}
	}
	return err
}

// Close tears the server connection down without the shutdown handshake.
func (s *Server) Close() {
	if s != nil {
		s.Conn.Close()
		s.conn.Close()
	}
}
