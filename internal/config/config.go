package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full tool configuration loaded from env / config file.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Chronicle ChronicleConfig `mapstructure:"chronicle"`
	Tracker   TrackerConfig   `mapstructure:"tracker"`
}

type AppConfig struct {
	Env string `mapstructure:"env"` // development | production
}

// AuthConfig locates the Google service-account credentials used for
// every API call.
type AuthConfig struct {
	CredentialsFile string   `mapstructure:"credentials_file"`
	Scopes          []string `mapstructure:"scopes"`
}

// ChronicleConfig identifies one Chronicle instance and how to reach it.
type ChronicleConfig struct {
	ProjectID  string `mapstructure:"project_id"`
	Location   string `mapstructure:"location"`
	InstanceID string `mapstructure:"instance_id"`
	// Bucket is the GCS bucket exports are written into (by the remote
	// service, never by this tool).
	Bucket string `mapstructure:"bucket"`
	// BaseURL overrides the regional default – useful for testing.
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type TrackerConfig struct {
	// How often the tracker polls an in-flight export for its stage.
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// InstanceBasePath is the versioned resource prefix under which all
// data-export resources of this instance live.
func (c ChronicleConfig) InstanceBasePath() string {
	return fmt.Sprintf("v1alpha/projects/%s/locations/%s/instances/%s",
		c.ProjectID, c.Location, c.InstanceID)
}

// ValidationError reports required settings that are absent. It is
// returned before any network call is attempted.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "config: missing required settings: " + strings.Join(e.Missing, ", ")
}

// Validate enforces the settings without which no API call can be
// addressed correctly.
func (c *Config) Validate() error {
	var missing []string
	if c.Chronicle.ProjectID == "" {
		missing = append(missing, "chronicle.project_id")
	}
	if c.Chronicle.InstanceID == "" {
		missing = append(missing, "chronicle.instance_id")
	}
	if c.Chronicle.Bucket == "" {
		missing = append(missing, "chronicle.bucket")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Load reads configuration from environment variables and optional config file.
// Environment variable prefix: SECOPS_
// Example: SECOPS_CHRONICLE_PROJECT_ID=my-project.
func Load() (*Config, error) {
	v := viper.New()

	// ---------- defaults ----------
	v.SetDefault("app.env", "development")

	v.SetDefault("auth.credentials_file", "")
	v.SetDefault("auth.scopes", []string{"https://www.googleapis.com/auth/cloud-platform"})

	v.SetDefault("chronicle.project_id", "")
	v.SetDefault("chronicle.location", "us")
	v.SetDefault("chronicle.instance_id", "")
	v.SetDefault("chronicle.bucket", "")
	v.SetDefault("chronicle.base_url", "")
	v.SetDefault("chronicle.request_timeout", "60s")

	v.SetDefault("tracker.poll_interval", "30s")

	// ---------- config file (optional) ----------
	v.SetConfigName("secops-export")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/secops-export")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	// ---------- env vars ----------
	v.SetEnvPrefix("SECOPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	// The API host is regional; derive it unless explicitly overridden.
	if cfg.Chronicle.BaseURL == "" {
		cfg.Chronicle.BaseURL = fmt.Sprintf("https://chronicle.%s.googleapis.com", cfg.Chronicle.Location)
	}

	return &cfg, nil
}
