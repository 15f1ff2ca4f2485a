package server

import (
	"encoding/json"

	"github.com/taskbell/taskbell/common"
)

// HandlerFunc handles one socket protocol request. It receives the
// synchronized connection, the watcher pool and the raw JSON message body,
// and returns the update type and payload for the response.
type HandlerFunc func(
	conn *SyncConn,
	pool *Pool,
	body json.RawMessage,
) (
	common.UpdateType,
	any,
	error,
)
