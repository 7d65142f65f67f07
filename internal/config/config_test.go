package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load consults so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"FIREBASE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT",
		"FIREBASE_CREDENTIALS_PATH", "GOOGLE_APPLICATION_CREDENTIALS",
		"PORT", "ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.Firebase.ProjectID)
	assert.Empty(t, cfg.Firebase.CredentialsPath)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 20*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "application.yaml", `
firebase:
  project-id: demo-project
  credentials-path: /etc/secrets/service-account.json
server:
  port: "9090"
  allowed-origins:
    - https://eduverse.example.com
    - " http://localhost:5173 "
  read-timeout: 5s
log:
  level: debug
  format: console
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "demo-project", cfg.Firebase.ProjectID)
	assert.Equal(t, "/etc/secrets/service-account.json", cfg.Firebase.CredentialsPath)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://eduverse.example.com", "http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 20*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "application.yaml", `
firebase:
  project-id: from-file
server:
  port: "9090"
`)
	t.Setenv("FIREBASE_PROJECT_ID", "from-env")
	t.Setenv("FIREBASE_CREDENTIALS_PATH", "env:FIREBASE_SERVICE_ACCOUNT_JSON")
	t.Setenv("PORT", "7070")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Firebase.ProjectID)
	assert.Equal(t, "env:FIREBASE_SERVICE_ACCOUNT_JSON", cfg.Firebase.CredentialsPath)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
}

func TestLoadFallbackEnvNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "gcp-project")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/var/run/sa.json")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "gcp-project", cfg.Firebase.ProjectID)
	assert.Equal(t, "/var/run/sa.json", cfg.Firebase.CredentialsPath)
}

func TestLoadPortFlag(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7070")

	flags := pflag.NewFlagSet("api", pflag.ContinueOnError)
	flags.String("port", "8080", "listen port")

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port, "unset flag must not shadow env")

	require.NoError(t, flags.Set("port", "6060"))
	cfg, err = Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "6060", cfg.Server.Port)
}
