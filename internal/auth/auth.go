// Package auth builds the authenticated HTTP transport used for every
// Chronicle API call. Token acquisition and refresh are owned by
// golang.org/x/oauth2; the returned client is safe to reuse across all
// operations of one invocation.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/c-mac49/secops-dataexport-script/internal/config"
)

// ErrNoCredentials is returned when no credential file is configured.
var ErrNoCredentials = errors.New("auth: credentials file not configured (SECOPS_AUTH_CREDENTIALS_FILE)")

// NewClient loads the service-account key file and returns an
// *http.Client whose transport injects and refreshes OAuth tokens.
func NewClient(ctx context.Context, cfg config.AuthConfig) (*http.Client, error) {
	if cfg.CredentialsFile == "" {
		return nil, ErrNoCredentials
	}
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("auth: read credentials: %w", err)
	}
	jwtCfg, err := google.JWTConfigFromJSON(data, cfg.Scopes...)
	if err != nil {
		return nil, fmt.Errorf("auth: parse service account key: %w", err)
	}
	return oauth2.NewClient(ctx, jwtCfg.TokenSource(ctx)), nil
}
