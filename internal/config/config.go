// Package config provides configuration loading and validation for the service.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key read through viper.
const EnvPrefix = "JOBBOARD"

// Upload drivers.
const (
	UploadDriverLocal = "local"
	UploadDriverGCS   = "gcs"
)

// Config is the service configuration. Values come from defaults, an optional
// config file and the environment, in increasing precedence.
type Config struct {
	Port          int          `mapstructure:"port"`
	DatabaseURL   string       `mapstructure:"database_url"`
	LogJSON       bool         `mapstructure:"log_json"`
	Debug         bool         `mapstructure:"debug"`
	MaxCandidates int          `mapstructure:"max_candidates"` // postings handed to the scorer per request
	CORSOrigin    string       `mapstructure:"cors_origin"`
	Upload        UploadConfig `mapstructure:"upload"`
}

// UploadConfig configures where uploaded resumes are written.
type UploadConfig struct {
	Driver        string `mapstructure:"driver"` // "local" or "gcs"
	Bucket        string `mapstructure:"bucket"`
	Dir           string `mapstructure:"dir"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	MaxBytes      int64  `mapstructure:"max_bytes"`
}

// SetDefaults registers the default value of every key. Keys must be known to
// viper for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("database_url", "")
	v.SetDefault("log_json", false)
	v.SetDefault("debug", false)
	v.SetDefault("max_candidates", 50)
	v.SetDefault("cors_origin", "*")

	v.SetDefault("upload.driver", UploadDriverLocal)
	v.SetDefault("upload.bucket", "")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.public_base_url", "/uploads")
	v.SetDefault("upload.max_bytes", 5<<20)
}

// NewViper returns a viper instance wired to the environment. Besides the
// JOBBOARD_ prefixed keys, the conventional bare names are honoured.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("port", EnvPrefix+"_PORT", "PORT")
	_ = v.BindEnv("upload.bucket", EnvPrefix+"_UPLOAD_BUCKET", "GCS_BUCKET")

	SetDefaults(v)
	return v
}

// Load reads configuration from the environment and, when path is non-empty,
// from the given config file.
func Load(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals and validates configuration from v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.Newf("config error: port must be between 1 and 65535, got %d", c.Port)
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("config error: database_url is required")
	}
	if c.MaxCandidates < 1 {
		return errors.Newf("config error: max_candidates must be positive, got %d", c.MaxCandidates)
	}
	if c.Upload.MaxBytes < 1 {
		return errors.Newf("config error: upload.max_bytes must be positive, got %d", c.Upload.MaxBytes)
	}

	switch c.Upload.Driver {
	case UploadDriverLocal:
		if c.Upload.Dir == "" {
			return errors.New("config error: upload.dir is required for the local driver")
		}
	case UploadDriverGCS:
		if c.Upload.Bucket == "" {
			return errors.New("config error: upload.bucket is required for the gcs driver")
		}
	default:
		return errors.Newf("config error: unknown upload driver %q", c.Upload.Driver)
	}
	return nil
}

// IsSQLite reports whether DatabaseURL points at an embedded SQLite database
// rather than a Postgres server.
func (c *Config) IsSQLite() bool {
	return IsSQLiteURL(c.DatabaseURL)
}

// IsSQLiteURL reports whether url uses the sqlite: or file: scheme.
func IsSQLiteURL(url string) bool {
	return strings.HasPrefix(url, "sqlite:") || strings.HasPrefix(url, "file:")
}

// SQLitePath returns the data source name for the sqlite driver.
func SQLitePath(url string) string {
	return strings.TrimPrefix(url, "sqlite:")
}
