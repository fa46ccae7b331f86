package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/miniairbnb/client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestKeystore(t *testing.T) *Keystore {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	keystore, err := NewKeystore(t.TempDir(), logger)
	require.NoError(t, err)
	return keystore
}

func TestKeystore_TokenRoundTrip(t *testing.T) {
	keystore := newTestKeystore(t)

	assert.Empty(t, keystore.Token())
	require.NoError(t, keystore.SaveToken("bearer-token"))
	assert.Equal(t, "bearer-token", keystore.Token())
}

func TestKeystore_IdentityRoundTrip(t *testing.T) {
	keystore := newTestKeystore(t)

	assert.Nil(t, keystore.Identity())

	identity := models.Identity{ID: 3, Email: "host@example.com", Role: models.RoleHost}
	require.NoError(t, keystore.SaveIdentity(identity))

	loaded := keystore.Identity()
	require.NotNil(t, loaded)
	assert.Equal(t, identity, *loaded)
}

func TestKeystore_ClearRemovesBothKeys(t *testing.T) {
	keystore := newTestKeystore(t)
	require.NoError(t, keystore.SaveToken("tok"))
	require.NoError(t, keystore.SaveIdentity(models.Identity{ID: 1, Email: "a@b.c", Role: models.RoleGuest}))

	keystore.Clear()

	assert.Empty(t, keystore.Token())
	assert.Nil(t, keystore.Identity())

	// Idempotent.
	keystore.Clear()
}

func TestKeystore_CorruptIdentityRemoved(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"truncated json", `{"id":3,"email":"a@`},
		{"not json at all", `garbage`},
		{"valid json, unknown role", `{"id":3,"email":"a@b.c","role":"ROLE_WIZARD"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := zap.NewDevelopment()
			dir := t.TempDir()
			keystore, err := NewKeystore(dir, logger)
			require.NoError(t, err)

			userPath := filepath.Join(dir, "user")
			require.NoError(t, os.WriteFile(userPath, []byte(tt.raw), 0o600))

			assert.Nil(t, keystore.Identity())

			// The corrupt entry is removed, not retried.
			_, statErr := os.Stat(userPath)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}
