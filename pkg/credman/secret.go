// Package credman resolves the daemon's JSON-RPC auth secret: an
// explicit environment override wins, then the OS keyring, then a file
// under the data directory.
package credman

import (
	"os"

	"github.com/taskbell/taskbell/common"
	"github.com/taskbell/taskbell/pkg/credman/keyring"
)

type SecretManager struct {
	primary  keyring.SecretStore
	fallback keyring.SecretStore
}

// NewSecretManager builds the default resolver: OS keyring backed by a
// file store in dataDir.
func NewSecretManager(dataDir string) *SecretManager {
	return &SecretManager{
		primary:  keyring.NewKeyring(),
		fallback: keyring.NewFileSecretStore(dataDir),
	}
}

// NewSecretManagerWithStores lets tests inject store implementations.
func NewSecretManagerWithStores(primary, fallback keyring.SecretStore) *SecretManager {
	return &SecretManager{primary: primary, fallback: fallback}
}

// Resolve returns the RPC secret, generating and persisting one on first
// use. The TASKBELL_RPC_SECRET environment variable overrides every
// store, which also serves containerized setups with injected secrets.
func (m *SecretManager) Resolve() (string, error) {
	if env := os.Getenv(common.RPCSecretEnv); env != "" {
		return env, nil
	}
	secret, err := getOrCreate(m.primary)
	if err == nil {
		return secret, nil
	}
	return getOrCreate(m.fallback)
}

func getOrCreate(store keyring.SecretStore) (string, error) {
	secret, err := store.GetSecret()
	if err == nil && secret != "" {
		return secret, nil
	}
	return store.SetSecret()
}
