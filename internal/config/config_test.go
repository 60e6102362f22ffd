package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SECOPS_CHRONICLE_PROJECT_ID", "proj-123")
	t.Setenv("SECOPS_CHRONICLE_INSTANCE_ID", "inst-abc")
	t.Setenv("SECOPS_CHRONICLE_BUCKET", "my-bucket")
	t.Setenv("SECOPS_CHRONICLE_LOCATION", "europe")
	t.Setenv("SECOPS_CHRONICLE_REQUEST_TIMEOUT", "10s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "proj-123", cfg.Chronicle.ProjectID)
	assert.Equal(t, "inst-abc", cfg.Chronicle.InstanceID)
	assert.Equal(t, "my-bucket", cfg.Chronicle.Bucket)
	assert.Equal(t, 10*time.Second, cfg.Chronicle.RequestTimeout)
	// Regional default host derived from location.
	assert.Equal(t, "https://chronicle.europe.googleapis.com", cfg.Chronicle.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Tracker.PollInterval)
}

func TestLoad_BaseURLOverrideWins(t *testing.T) {
	t.Setenv("SECOPS_CHRONICLE_BASE_URL", "http://localhost:9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.Chronicle.BaseURL)
}

func TestValidate(t *testing.T) {
	full := func() *Config {
		return &Config{Chronicle: ChronicleConfig{
			ProjectID:  "p",
			InstanceID: "i",
			Bucket:     "b",
		}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		missing []string
	}{
		{"all present", func(c *Config) {}, nil},
		{"missing project", func(c *Config) { c.Chronicle.ProjectID = "" }, []string{"chronicle.project_id"}},
		{"missing instance", func(c *Config) { c.Chronicle.InstanceID = "" }, []string{"chronicle.instance_id"}},
		{"missing bucket", func(c *Config) { c.Chronicle.Bucket = "" }, []string{"chronicle.bucket"}},
		{"missing everything", func(c *Config) { c.Chronicle = ChronicleConfig{} },
			[]string{"chronicle.project_id", "chronicle.instance_id", "chronicle.bucket"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.missing == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.missing, verr.Missing)
		})
	}
}

func TestInstanceBasePath(t *testing.T) {
	cfg := ChronicleConfig{ProjectID: "p1", Location: "us", InstanceID: "i1"}
	assert.Equal(t, "v1alpha/projects/p1/locations/us/instances/i1", cfg.InstanceBasePath())
}
