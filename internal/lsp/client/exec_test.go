package client

import (
	"io"
	"testing"
)

func TestStartServerMissingBinary(t *testing.T) {
	_, err := StartServer([]string{"/nonexistent/millet-ls"}, &Config{
		DiagWriter: io.Discard,
		RootDir:    "/",
	}, nil)
	if err == nil {
		t.Fatalf("StartServer with missing binary did not fail")
	}
}
