package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AppConfig
		wantErr bool
	}{
		{name: "defaults", cfg: AppConfig{Port: "3000", StoreBackend: "memory"}},
		{name: "directory", cfg: AppConfig{Port: "8080", StoreBackend: "directory"}},
		{name: "postgres", cfg: AppConfig{Port: "8080", StoreBackend: "postgres", PostgresDSN: "postgres://u:p@db/gallery"}},
		{name: "postgres without dsn", cfg: AppConfig{Port: "8080", StoreBackend: "postgres"}, wantErr: true},
		{name: "bad port", cfg: AppConfig{Port: "port", StoreBackend: "memory"}, wantErr: true},
		{name: "port out of range", cfg: AppConfig{Port: "70000", StoreBackend: "memory"}, wantErr: true},
		{name: "unknown backend", cfg: AppConfig{Port: "3000", StoreBackend: "redis"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("STORAGE_DIR", "/tmp/gallery")
	t.Setenv("STORE_BACKEND", "directory")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, "8081", cfg.Port)
	require.Equal(t, "/tmp/gallery", cfg.StorageDir)
	require.Equal(t, "directory", cfg.StoreBackend)
	require.Equal(t, defaultTopic, cfg.KafkaTopic)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "STORAGE_DIR", "STORE_BACKEND", "GIN_MODE", "KAFKA_BROKER"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, defaultPort, cfg.Port)
	require.Equal(t, defaultStorageDir, cfg.StorageDir)
	require.Equal(t, defaultBackend, cfg.StoreBackend)
	require.Empty(t, cfg.KafkaBroker)
}
