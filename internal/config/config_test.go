package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[app]
timezone = "America/New_York"
allowed_origins = ["https://booking.example.com"]

[database]
dbname = "visa"
user = "visa"

[auth]
jwt_secret = "0123456789abcdef0123"

[storage]
endpoint = "localhost:9000"
`

// chdir меняет рабочую директорию на время теста (аналог t.Chdir из Go 1.24)
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	chdir(t, dir) // .env ищется в рабочей директории
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "receipts", cfg.Storage.Bucket)
	assert.Equal(t, "@every 1m", cfg.Availability.RefreshSchedule)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, []string{"https://booking.example.com"}, cfg.App.AllowedOrigins)

	loc, err := cfg.App.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_SECRET", "env-secret-long-enough")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "env-secret-long-enough", cfg.Auth.JWTSecret)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), ".env"), []byte("MINIO_SECRET_KEY=from-dotenv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("MINIO_SECRET_KEY") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Storage.SecretKey)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"short jwt secret", sampleConfig + "\n"},
		{"bad timezone", `
[app]
timezone = "Mars/Olympus"
[database]
dbname = "visa"
[auth]
jwt_secret = "0123456789abcdef0123"
[storage]
endpoint = "localhost:9000"
`},
		{"notifications without url", sampleConfig + `
[notifications]
enabled = true
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if tt.name == "short jwt secret" {
				t.Setenv("JWT_SECRET", "short")
			}
			_, err := Load(path)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
