package bellcli

import (
	"net"
	"sync"

	"github.com/taskbell/taskbell/common"
)

// NewClientForTesting creates a Client with a custom connection, letting
// tests inject pipes without a daemon.
func NewClientForTesting(conn net.Conn) *Client {
	return &Client{
		conn: conn,
		mu:   &sync.RWMutex{},
		d: &Dispatcher{
			Handlers: make(map[common.UpdateType]Handler),
		},
	}
}
