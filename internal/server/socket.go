package server

import (
	"os"
	"path/filepath"

	"github.com/taskbell/taskbell/common"
)

func socketPath() string {
	if path := os.Getenv(common.SocketPathEnv); path != "" {
		return path
	}
	return filepath.Join(os.TempDir(), "taskbell.sock")
}

// cleanupSocket removes the socket file. A missing file is not an error.
func cleanupSocket() error {
	if err := os.Remove(socketPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
