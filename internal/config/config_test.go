package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TimeslotService/pkg/sqlbuilder"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Postgres(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 8090

[database]
driver = "postgres"
host = "db"
port = 5432
user = "svc"
password = "secret"
dbname = "slots"
lock_timeout_ms = 2000

[booking]
max_attempts = 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, sqlbuilder.Postgres, cfg.Database.Dialect())
	assert.Equal(t, "postgres://svc:secret@db:5432/slots?sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 2*time.Second, cfg.Database.LockTimeout())
	assert.Equal(t, 5, cfg.Booking.MaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.Booking.RetryBackoff())
	assert.Equal(t, 100, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 500, cfg.Pagination.MaxLimit)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_SQLite(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "sqlite"
sqlite_path = "/var/lib/slots.db"
auto_migrate = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, sqlbuilder.SQLite, cfg.Database.Dialect())
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, sqlbuilder.SQLiteDSN("/var/lib/slots.db", 5*time.Second), cfg.Database.DSN())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown driver", "[database]\ndriver = \"mysql\"\n"},
		{"bad port", "[server]\nhttp_port = 70000\n"},
		{"negative lock timeout", "[database]\nlock_timeout_ms = -1\n"},
		{"limits inverted", "[pagination]\ndefault_limit = 50\nmax_limit = 10\n"},
		{"empty sqlite path", "[database]\ndriver = \"sqlite\"\nsqlite_path = \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
