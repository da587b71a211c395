// Package publicapi fetches the public API directory from the upstream service
// and optionally caches it in redis.
package publicapi

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"authsvc/internal/models"
)

const (
	entriesPath    = "/entries"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20 // 8 MB
)

// entriesResponse is the upstream payload of GET /entries.
type entriesResponse struct {
	Count   int                  `json:"count"`
	Entries []models.PublicEntry `json:"entries"`
}

// Options configure a Client.
type Options struct {
	BaseURL            string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Client reads the directory over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via publicapi.insecure_skip_verify
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout, Transport: transport},
	}
}

// Entries returns every entry of the upstream directory in upstream order.
func (c *Client) Entries(ctx context.Context) ([]models.PublicEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+entriesPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call upstream: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var payload entriesResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}
	if payload.Entries == nil {
		payload.Entries = []models.PublicEntry{}
	}
	return payload.Entries, nil
}
