package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/excel-azmin/roomcal/internal/ews"
)

// clearEnv blanks every variable Load reads so ambient environment and .env
// files cannot bleed into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"EXCHANGE_HOST", "EXCHANGE_USERNAME", "EXCHANGE_PASSWORD",
		"EXCHANGE_AUTH_TYPE", "EXCHANGE_MAX_CONNECTIONS", "EXCHANGE_INSECURE_TLS",
		"EXCHANGE_OAUTH_CLIENT_ID", "EXCHANGE_OAUTH_TENANT_ID", "EXCHANGE_OAUTH_CLIENT_SECRET",
		"ROOMCAL_ROOMS_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXCHANGE_HOST", "mail.example.com")
	t.Setenv("EXCHANGE_USERNAME", "CORP\\svc")
	t.Setenv("EXCHANGE_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mail.example.com", cfg.EWS.Host)
	assert.Equal(t, ews.AuthNTLM, cfg.EWS.AuthType, "ntlm is the default scheme")
	assert.Equal(t, "CORP\\svc", cfg.EWS.Credential.Username)
	assert.Equal(t, 0, cfg.EWS.MaxConnections)
	assert.False(t, cfg.EWS.InsecureTLS)
	assert.Empty(t, cfg.RoomsFile)
}

func TestLoadRequiresHost(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EXCHANGE_HOST")
}

func TestLoadAuthType(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXCHANGE_HOST", "mail.example.com")
	t.Setenv("EXCHANGE_AUTH_TYPE", "basic")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ews.AuthBasic, cfg.EWS.AuthType)

	t.Setenv("EXCHANGE_AUTH_TYPE", "kerberos")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EXCHANGE_AUTH_TYPE")
}

func TestLoadOAuthDefaultsHost(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXCHANGE_AUTH_TYPE", "oauth2")
	t.Setenv("EXCHANGE_OAUTH_CLIENT_ID", "app-id")
	t.Setenv("EXCHANGE_OAUTH_TENANT_ID", "tenant-id")
	t.Setenv("EXCHANGE_OAUTH_CLIENT_SECRET", "app-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "outlook.office365.com", cfg.EWS.Host)
	assert.Equal(t, ews.AuthOAuth2, cfg.EWS.AuthType)
	assert.Equal(t, "app-id", cfg.EWS.OAuth.ClientID)
}

func TestLoadNumericAndBoolValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("EXCHANGE_HOST", "mail.example.com")

	t.Setenv("EXCHANGE_MAX_CONNECTIONS", "8")
	t.Setenv("EXCHANGE_INSECURE_TLS", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.EWS.MaxConnections)
	assert.True(t, cfg.EWS.InsecureTLS)

	t.Setenv("EXCHANGE_MAX_CONNECTIONS", "-1")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("EXCHANGE_MAX_CONNECTIONS", "8")
	t.Setenv("EXCHANGE_INSECURE_TLS", "maybe")
	_, err = Load()
	assert.Error(t, err)
}

func writeRoomsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rooms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRooms(t *testing.T) {
	path := writeRoomsFile(t, `rooms:
  - email: room.aurora@example.com
    name: Aurora
  - email: room.borealis@example.com
    name: Borealis
`)

	rooms, err := LoadRooms(path)
	require.NoError(t, err)
	require.Len(t, rooms.Rooms, 2)
	assert.Equal(t, "Aurora", rooms.Rooms[0].Name)
	assert.Equal(t,
		[]string{"room.aurora@example.com", "room.borealis@example.com"},
		rooms.Addresses(), "addresses keep file order")
}

func TestLoadRoomsRejectsBadInventories(t *testing.T) {
	_, err := LoadRooms(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadRooms(writeRoomsFile(t, "rooms: []\n"))
	assert.Error(t, err, "an empty inventory is a configuration mistake")

	_, err = LoadRooms(writeRoomsFile(t, "rooms:\n  - name: Nameless\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no email")

	_, err = LoadRooms(writeRoomsFile(t, "rooms: {not valid"))
	assert.Error(t, err)
}
