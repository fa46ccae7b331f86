// Package storage persists the authenticated session between runs: two keys,
// "token" (opaque bearer string) and "user" (JSON-serialized identity), kept
// as files under the state directory.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/miniairbnb/client/internal/models"
	"go.uber.org/zap"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

// Keystore is the file-backed key store for session state. The session store
// is its single writer.
type Keystore struct {
	dir    string
	logger *zap.Logger
}

// NewKeystore creates the state directory if needed and returns a store
// rooted there.
func NewKeystore(dir string, logger *zap.Logger) (*Keystore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &Keystore{dir: dir, logger: logger}, nil
}

// SaveToken persists the bearer token.
func (k *Keystore) SaveToken(token string) error {
	if err := os.WriteFile(k.path(tokenKey), []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Token returns the persisted bearer token, or an empty string when absent.
func (k *Keystore) Token() string {
	raw, err := os.ReadFile(k.path(tokenKey))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// SaveIdentity persists the identity under the "user" key.
func (k *Keystore) SaveIdentity(identity models.Identity) error {
	encoded, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}
	if err := os.WriteFile(k.path(userKey), encoded, 0o600); err != nil {
		return fmt.Errorf("failed to save identity: %w", err)
	}
	return nil
}

// Identity returns the persisted identity. Malformed stored data is treated
// as absent: the corrupt entry is removed and nil is returned, so a broken
// state file can never keep the client half-authenticated.
func (k *Keystore) Identity() *models.Identity {
	raw, err := os.ReadFile(k.path(userKey))
	if err != nil {
		return nil
	}

	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil || !identity.Role.Valid() {
		k.logger.Warn("removing corrupt persisted identity", zap.Error(err))
		os.Remove(k.path(userKey))
		return nil
	}
	return &identity
}

// Clear removes both persisted keys. Idempotent.
func (k *Keystore) Clear() {
	os.Remove(k.path(tokenKey))
	os.Remove(k.path(userKey))
}

func (k *Keystore) path(key string) string {
	return filepath.Join(k.dir, key)
}
