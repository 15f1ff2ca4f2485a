package keyring

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

const (
	secretFileName = "rpc.secret"
	secretFileMode = 0600
)

// FileSecretStore keeps the secret in a 0600 file under the data
// directory. Used when no keyring service is reachable, e.g. on servers
// without a desktop session.
type FileSecretStore struct {
	dataDir string
}

var (
	fileRandRead  = rand.Read
	fileWriteTemp = os.CreateTemp
	fileReadFile  = os.ReadFile
	fileRemove    = os.Remove
	fileRename    = os.Rename
	fileMkdirAll  = os.MkdirAll
)

func NewFileSecretStore(dataDir string) *FileSecretStore {
	return &FileSecretStore{dataDir: dataDir}
}

func (f *FileSecretStore) secretPath() string {
	return filepath.Join(f.dataDir, secretFileName)
}

// SetSecret generates a fresh 32-byte secret and writes its hex encoding
// atomically via a temp file and rename, so an interrupted write never
// leaves a truncated secret behind.
func (f *FileSecretStore) SetSecret() (string, error) {
	if err := fileMkdirAll(f.dataDir, 0755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := fileRandRead(raw); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	secret := hex.EncodeToString(raw)

	tmpFile, err := fileWriteTemp(f.dataDir, ".rpc.secret.tmp.*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.WriteString(secret); err != nil {
		tmpFile.Close()
		fileRemove(tmpPath)
		return "", fmt.Errorf("write secret: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		fileRemove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, secretFileMode); err != nil {
		fileRemove(tmpPath)
		return "", fmt.Errorf("set permissions: %w", err)
	}
	if err := fileRename(tmpPath, f.secretPath()); err != nil {
		fileRemove(tmpPath)
		return "", fmt.Errorf("rename secret file: %w", err)
	}
	return secret, nil
}

// GetSecret reads the stored secret. The value must decode as hex to a
// 32-byte key, guarding against a corrupted or hand-edited file.
func (f *FileSecretStore) GetSecret() (string, error) {
	data, err := fileReadFile(f.secretPath())
	if err != nil {
		return "", err
	}
	raw, err := hex.DecodeString(string(data))
	if err != nil {
		return "", fmt.Errorf("invalid secret format: %w", err)
	}
	if len(raw) != 32 {
		return "", fmt.Errorf("invalid secret length: expected 32, got %d", len(raw))
	}
	return string(data), nil
}

func (f *FileSecretStore) DeleteSecret() error {
	return fileRemove(f.secretPath())
}

var _ SecretStore = (*FileSecretStore)(nil)
