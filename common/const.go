package common

const (
	// MaxMessageSize caps a single framed message on the socket protocol.
	MaxMessageSize = 1 << 20

	// TCPHost is the loopback host used for the TCP fallback transport.
	TCPHost = "localhost"

	// DefaultPort is the TCP fallback port for the socket protocol. The
	// JSON-RPC endpoint binds one above it.
	DefaultPort = 4600
)

type UpdateType string

const (
	UPDATE_CREATE   UpdateType = "create"
	UPDATE_UPDATE   UpdateType = "update"
	UPDATE_DELETE   UpdateType = "delete"
	UPDATE_REORDER  UpdateType = "reorder"
	UPDATE_LIST     UpdateType = "list"
	UPDATE_FLUSH    UpdateType = "flush"
	UPDATE_ATTACH   UpdateType = "attach"
	UPDATE_VERSION  UpdateType = "version"
	UPDATE_REMINDER UpdateType = "reminder"
)
