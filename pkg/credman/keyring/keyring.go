// Package keyring stores the daemon's JSON-RPC auth secret in the
// operating system keyring, with a file-based fallback for headless
// machines.
package keyring

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/zalando/go-keyring"
)

// SecretStore generates, retrieves and deletes the RPC auth secret.
type SecretStore interface {
	SetSecret() (string, error)
	GetSecret() (string, error)
	DeleteSecret() error
}

// Keyring stores the secret in the OS keyring service.
type Keyring struct {
	AppName     string
	SecretField string
}

var (
	keyringSet    = keyring.Set
	keyringGet    = keyring.Get
	keyringDelete = keyring.Delete
	randRead      = rand.Read
)

func NewKeyring() *Keyring {
	return &Keyring{
		AppName:     "taskbell",
		SecretField: "rpc-secret",
	}
}

// SetSecret generates a fresh 32-byte secret, stores its hex encoding in
// the keyring and returns it.
func (k *Keyring) SetSecret() (string, error) {
	raw := make([]byte, 32)
	if _, err := randRead(raw); err != nil {
		return "", err
	}
	secret := hex.EncodeToString(raw)
	if err := keyringSet(k.AppName, k.SecretField, secret); err != nil {
		return "", err
	}
	return secret, nil
}

func (k *Keyring) GetSecret() (string, error) {
	return keyringGet(k.AppName, k.SecretField)
}

func (k *Keyring) DeleteSecret() error {
	return keyringDelete(k.AppName, k.SecretField)
}

var _ SecretStore = (*Keyring)(nil)
