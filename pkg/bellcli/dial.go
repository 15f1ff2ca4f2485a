package bellcli

import (
	"fmt"
	"net"
)

// dialFunc is swappable in tests.
var dialFunc = net.Dial

// dial connects to the daemon over the Unix socket, falling back to TCP.
func dial() (net.Conn, error) {
	conn, unixErr := dialFunc("unix", socketPath())
	if unixErr != nil {
		conn, err := dialFunc("tcp", tcpAddress())
		if err != nil {
			return nil, fmt.Errorf("failed to connect: unix socket error: %v; tcp error: %w", unixErr, err)
		}
		return conn, nil
	}
	return conn, nil
}
