package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORE_BACKEND", "STORE_NAMESPACE", "FIREBASE_SERVICE_ACCOUNT_KEY_PATH",
		"FIREBASE_DATABASE_URL", "SQLITE_PATH", "REDIS_ADDR",
		"PARTICIPANT_BOT_TOKEN", "ORGANISER_BOT_TOKEN", "CATALOG_PATH", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PARTICIPANT_BOT_TOKEN", "p-token")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, "corsicaTrip", cfg.StoreNamespace)
	assert.Equal(t, "tripbot.db", cfg.SQLitePath)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "p-token", cfg.ParticipantBotToken)
	assert.Empty(t, cfg.OrganiserBotToken)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("STORE_NAMESPACE", "test")
	t.Setenv("ORGANISER_BOT_TOKEN", "o-token")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CATALOG_PATH", "catalog.yaml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "test", cfg.StoreNamespace)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "catalog.yaml", cfg.CatalogPath)
}

func TestLoadInvalidLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("PARTICIPANT_BOT_TOKEN", "p-token")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "memory",
			cfg:  Config{StoreBackend: BackendMemory, ParticipantBotToken: "t"},
		},
		{
			name:    "no token",
			cfg:     Config{StoreBackend: BackendMemory},
			wantErr: true,
		},
		{
			name:    "firebase without key",
			cfg:     Config{StoreBackend: BackendFirebase, FirebaseDatabaseURL: "https://x", OrganiserBotToken: "t"},
			wantErr: true,
		},
		{
			name:    "firebase without url",
			cfg:     Config{StoreBackend: BackendFirebase, FirebaseServiceAccountKeyPath: "key.json", OrganiserBotToken: "t"},
			wantErr: true,
		},
		{
			name: "firebase",
			cfg: Config{
				StoreBackend:                  BackendFirebase,
				FirebaseServiceAccountKeyPath: "key.json",
				FirebaseDatabaseURL:           "https://x",
				OrganiserBotToken:             "t",
			},
		},
		{
			name:    "sqlite without path",
			cfg:     Config{StoreBackend: BackendSQLite, OrganiserBotToken: "t"},
			wantErr: true,
		},
		{
			name:    "redis without addr",
			cfg:     Config{StoreBackend: BackendRedis, OrganiserBotToken: "t"},
			wantErr: true,
		},
		{
			name:    "unknown backend",
			cfg:     Config{StoreBackend: "postgres", OrganiserBotToken: "t"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
