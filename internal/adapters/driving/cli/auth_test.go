package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthCmd_HasSubcommands(t *testing.T) {
	commands := authCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "login")
	assert.Contains(t, commandNames, "logout")
	assert.Contains(t, commandNames, "status")
}

func TestAuthLoginCmd_StoresToken(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	tokenFile = filepath.Join(t.TempDir(), "nested", "token")

	out, err := runCmd(t, "auth", "login", "ya29.secret-token-value")

	require.NoError(t, err)
	assert.True(t, mocks.session.IsActive())
	assert.Equal(t, "ya29.secret-token-value", mocks.session.Credential().Token)
	assert.Contains(t, out, "ya29...alue")
	assert.NotContains(t, out, "secret-token")

	info, err := os.Stat(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	data, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, "ya29.secret-token-value\n", string(data))
}

func TestAuthLoginCmd_AcceptsMaxOneArg(t *testing.T) {
	_, err := runCmd(t, "auth", "login", "a", "b")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}

func TestAuthLoginCmd_RejectsBlankToken(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := runCmd(t, "auth", "login", "   ")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "access token is required")
	assert.False(t, mocks.session.IsActive())
}

func TestAuthLogoutCmd_RemovesToken(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	tokenFile = filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("tok"), 0o600))
	mocks.session.Set("tok")

	out, err := runCmd(t, "auth", "logout")

	require.NoError(t, err)
	assert.False(t, mocks.session.IsActive())
	assert.NoFileExists(t, tokenFile)
	assert.Contains(t, out, "Signed out")
}

func TestAuthLogoutCmd_MissingFileIsFine(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	tokenFile = filepath.Join(t.TempDir(), "absent")

	_, err := runCmd(t, "auth", "logout")

	assert.NoError(t, err)
}

func TestAuthStatusCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	t.Run("no token", func(t *testing.T) {
		out, err := runCmd(t, "auth", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "No active token.")
	})

	t.Run("active token", func(t *testing.T) {
		mocks.session.Set("ya29.abcdefghijkl")
		out, err := runCmd(t, "auth", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "ya29...ijkl")
		assert.Contains(t, out, "now")
	})
}

func TestAuthStatusCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	sessionService = nil

	_, err := runCmd(t, "auth", "status")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "session service not configured")
}
