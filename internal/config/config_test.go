package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func validConfig() *Config {
	return &Config{
		Port:           5002,
		JWTSecret:      "secret",
		JWTTTL:         10 * time.Minute,
		MaxResumeBytes: 5 << 20,
		StorageBackend: BackendLocal,
	}
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5002, cfg.Port)
	assert.Equal(t, "http://localhost:5002", cfg.BaseURL)
	assert.Equal(t, 10*time.Minute, cfg.JWTTTL)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxResumeBytes)
	assert.Equal(t, BackendLocal, cfg.StorageBackend)
	assert.True(t, cfg.KeepLocalBackup)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("PORT", "8080")
	t.Setenv("BASE_URL", "https://api.hirenest.example")
	t.Setenv("STORAGE_BACKEND", "GCS")
	t.Setenv("GCS_BUCKET", "resumes")
	t.Setenv("JWT_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://api.hirenest.example", cfg.BaseURL)
	assert.Equal(t, BackendGCS, cfg.StorageBackend)
	assert.Equal(t, "resumes", cfg.GCSBucket)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
}

func TestLoadRequiresSecret(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestValidateBackends(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "local", mutate: func(c *Config) {}},
		{
			name:    "drive without folder",
			mutate:  func(c *Config) { c.StorageBackend = BackendDrive; c.DriveCredentialsFile = "sa.json" },
			wantErr: "GOOGLE_DRIVE_FOLDER_ID",
		},
		{
			name: "drive complete",
			mutate: func(c *Config) {
				c.StorageBackend = BackendDrive
				c.DriveCredentialsFile = "sa.json"
				c.DriveFolderID = "folder"
			},
		},
		{
			name:    "gcs without bucket",
			mutate:  func(c *Config) { c.StorageBackend = BackendGCS },
			wantErr: "GCS_BUCKET",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.StorageBackend = "s3" },
			wantErr: "unknown STORAGE_BACKEND",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "PORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadGmailFiles(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GMAIL_TOKEN_FILE", "/secrets/token.json")

	creds, token := LoadGmailFiles()
	assert.Equal(t, "credential.json", creds)
	assert.Equal(t, "/secrets/token.json", token)
}
