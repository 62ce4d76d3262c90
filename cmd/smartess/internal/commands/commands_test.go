package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnoutzw/Anenji-smartess/internal/session"
)

func writeTestConfig(t *testing.T, credsDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf("credentialsDir: %q\n", credsDir)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewClient(t *testing.T) {
	t.Run("session from a previous process is restored", func(t *testing.T) {
		credsDir := t.TempDir()

		store, err := session.NewStore(credsDir)
		require.NoError(t, err)
		require.NoError(t, store.Save(&session.Session{Token: "T", Secret: "S", UserID: "U1"}))

		globals := &Globals{Config: writeTestConfig(t, credsDir)}
		client, err := newClient(globals, false)
		require.NoError(t, err)

		assert.True(t, client.IsAuthenticated())
	})

	t.Run("fresh credentials dir starts unauthenticated", func(t *testing.T) {
		globals := &Globals{Config: writeTestConfig(t, t.TempDir())}
		client, err := newClient(globals, false)
		require.NoError(t, err)

		assert.False(t, client.IsAuthenticated())
	})
}
