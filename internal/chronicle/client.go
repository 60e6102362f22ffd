// Package chronicle is a client for the Chronicle data-export API
// (v1alpha long-running export operations).
//
// Key constraints:
//   - Exports are asynchronous: create returns immediately and the job
//     progresses server-side for minutes to hours.
//   - The remote service is the sole source of truth for job state;
//     the client never mutates a stage locally, it re-fetches.
//   - Cancellation is asynchronous too: a status fetch right after a
//     cancel may still report a non-terminal stage.
package chronicle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/c-mac49/secops-dataexport-script/internal/config"
)

const (
	timeLayout = "2006-01-02T15:04:05Z"

	defaultRequestTimeout = 60 * time.Second
)

// Client issues data-export operations for a single Chronicle instance
// over one authenticated transport.
type Client struct {
	baseURL      string
	instancePath string
	project      string
	location     string
	instance     string
	bucket       string
	timeout      time.Duration
	httpClient   *http.Client
	log          *zap.Logger

	// now is swapped in tests to pin the create-export time range.
	now func() time.Time
}

// NewClient creates a Client for a specific instance. httpClient must
// already carry authentication (see internal/auth).
func NewClient(cfg config.ChronicleConfig, httpClient *http.Client, log *zap.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		instancePath: cfg.InstanceBasePath(),
		project:      cfg.ProjectID,
		location:     cfg.Location,
		instance:     cfg.InstanceID,
		bucket:       cfg.Bucket,
		timeout:      timeout,
		httpClient:   httpClient,
		log:          log,
		now:          time.Now,
	}
}

// FetchServiceAccount returns the email of the service-managed account
// that must be granted write access on the target bucket.
func (c *Client) FetchServiceAccount(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/%s/dataExports:fetchServiceAccountForDataExport", c.baseURL, c.instancePath)

	// Older API revisions answered with "email" instead.
	var out struct {
		ServiceAccountEmail string `json:"serviceAccountEmail"`
		Email               string `json:"email"`
	}
	if err := c.do(ctx, "fetch service account", http.MethodGet, url, nil, &out); err != nil {
		return "", err
	}
	if out.ServiceAccountEmail != "" {
		return out.ServiceAccountEmail, nil
	}
	return out.Email, nil
}

// ListExports returns the instance's export jobs in service order
// (typically most-recent-first). An empty slice is a valid result.
func (c *Client) ListExports(ctx context.Context) ([]DataExport, error) {
	url := fmt.Sprintf("%s/%s/dataExports", c.baseURL, c.instancePath)

	var out struct {
		DataExports   []DataExport `json:"dataExports"`
		NextPageToken string       `json:"nextPageToken"`
	}
	if err := c.do(ctx, "list exports", http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}
	return out.DataExports, nil
}

type createRequest struct {
	StartTime       string   `json:"startTime"`
	EndTime         string   `json:"endTime"`
	GCSBucket       string   `json:"gcsBucket"`
	IncludeLogTypes []string `json:"includeLogTypes,omitempty"`
}

// CreateExport starts a new export covering the last daysBack days,
// ending now (UTC). logTypes, when non-empty, restricts the export to
// those log types; the caller's slice is not modified.
func (c *Client) CreateExport(ctx context.Context, daysBack int, logTypes []string) (*DataExport, error) {
	if daysBack < 0 {
		return nil, fmt.Errorf("chronicle: create export: negative day range %d", daysBack)
	}
	url := fmt.Sprintf("%s/%s/dataExports", c.baseURL, c.instancePath)

	end := c.now().UTC().Truncate(time.Second)
	start := end.AddDate(0, 0, -daysBack)

	payload := createRequest{
		StartTime: start.Format(timeLayout),
		EndTime:   end.Format(timeLayout),
		GCSBucket: c.bucket,
	}
	for _, lt := range logTypes {
		payload.IncludeLogTypes = append(payload.IncludeLogTypes,
			fmt.Sprintf("projects/%s/locations/%s/instances/%s/logTypes/%s",
				c.project, c.location, c.instance, lt))
	}

	var out DataExport
	if err := c.do(ctx, "create export", http.MethodPost, url, payload, &out); err != nil {
		return nil, err
	}
	c.log.Info("export created",
		zap.String("name", out.Name),
		zap.String("start", payload.StartTime),
		zap.String("end", payload.EndTime))
	return &out, nil
}

// CancelExport asks the service to cancel an in-flight export. The
// service cancels asynchronously; success here means the request was
// accepted, not that the job is already in CANCELLED.
func (c *Client) CancelExport(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/%s:cancel", c.baseURL, NormalizeExportID(id, c.instancePath))
	return c.do(ctx, "cancel export", http.MethodPost, url, nil, nil)
}

// GetExportStatus fetches the full current representation of one
// export. The returned DataExport carries the raw body in Raw.
func (c *Client) GetExportStatus(ctx context.Context, id string) (*DataExport, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, NormalizeExportID(id, c.instancePath))

	var out DataExport
	if err := c.do(ctx, "get export status", http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do runs one request/response cycle: marshal, execute under the
// configured timeout, classify non-2xx into *APIError, decode. out may
// be nil when the response body is irrelevant; a *DataExport out also
// retains the raw body.
func (c *Client) do(ctx context.Context, op, method, url string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("chronicle: %s: marshal request: %w", op, err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("chronicle: %s: new request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(op, resp)
	}
	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("chronicle: %s: read response: %w", op, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("chronicle: %s: decode response: %w", op, err)
	}
	if de, ok := out.(*DataExport); ok {
		de.Raw = raw
	}
	return nil
}
