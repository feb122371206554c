package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Port:          8080,
		DatabaseURL:   "postgres://localhost/jobboard",
		MaxCandidates: 50,
		Upload: UploadConfig{
			Driver:   UploadDriverLocal,
			Dir:      "uploads",
			MaxBytes: 5 << 20,
		},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobboard")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://localhost/jobboard", cfg.DatabaseURL)
	assert.Equal(t, 50, cfg.MaxCandidates)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, UploadDriverLocal, cfg.Upload.Driver)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxBytes)
	assert.False(t, cfg.Debug)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("JOBBOARD_DATABASE_URL", "sqlite::memory:")
	t.Setenv("JOBBOARD_PORT", "9090")
	t.Setenv("JOBBOARD_MAX_CANDIDATES", "25")
	t.Setenv("JOBBOARD_DEBUG", "true")
	t.Setenv("JOBBOARD_UPLOAD_DRIVER", "gcs")
	t.Setenv("GCS_BUCKET", "resumes-bucket")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 25, cfg.MaxCandidates)
	assert.True(t, cfg.Debug)
	assert.Equal(t, UploadDriverGCS, cfg.Upload.Driver)
	assert.Equal(t, "resumes-bucket", cfg.Upload.Bucket)
	assert.True(t, cfg.IsSQLite())
}

func TestLoad_ConfigFile(t *testing.T) {
	content := `
database_url: postgres://db/jobs
port: 7000
log_json: true
upload:
  dir: /var/lib/jobboard
  public_base_url: https://cdn.example.com
`
	path := filepath.Join(t.TempDir(), "jobboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, "/var/lib/jobboard", cfg.Upload.Dir)
	assert.Equal(t, "https://cdn.example.com", cfg.Upload.PublicBaseURL)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/jobboard.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Port = 0 }, "port must be between"},
		{"port too large", func(c *Config) { c.Port = 70000 }, "port must be between"},
		{"missing database", func(c *Config) { c.DatabaseURL = " " }, "database_url is required"},
		{"non-positive candidates", func(c *Config) { c.MaxCandidates = 0 }, "max_candidates"},
		{"non-positive upload size", func(c *Config) { c.Upload.MaxBytes = 0 }, "upload.max_bytes"},
		{"unknown driver", func(c *Config) { c.Upload.Driver = "s3" }, "unknown upload driver"},
		{"gcs without bucket", func(c *Config) { c.Upload.Driver = UploadDriverGCS }, "upload.bucket is required"},
		{"local without dir", func(c *Config) { c.Upload.Dir = "" }, "upload.dir is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
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

func TestIsSQLiteURL(t *testing.T) {
	assert.True(t, IsSQLiteURL("sqlite:jobboard.db"))
	assert.True(t, IsSQLiteURL("file:jobboard.db?cache=shared"))
	assert.False(t, IsSQLiteURL("postgres://localhost/jobboard"))
	assert.Equal(t, "jobboard.db", SQLitePath("sqlite:jobboard.db"))
	assert.Equal(t, "file:x.db", SQLitePath("file:x.db"))
}
