// Package common provides shared types and constants used across the taskbell
// client-daemon communication layer.
package common

// Environment variable names for configuration.
const (
	// SocketPathEnv is the environment variable for custom socket path.
	SocketPathEnv = "TASKBELL_SOCKET_PATH"

	// TCPPortEnv is the environment variable for custom TCP port.
	TCPPortEnv = "TASKBELL_TCP_PORT"

	// RPCSecretEnv is the environment variable overriding the keyring-stored
	// JSON-RPC auth token.
	RPCSecretEnv = "TASKBELL_RPC_SECRET"

	// DataDirEnv is the environment variable for the daemon data directory.
	DataDirEnv = "TASKBELL_DATA_DIR"
)
