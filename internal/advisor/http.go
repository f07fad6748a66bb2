package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout  = 2 * time.Second
	maxResponseSize = 64 << 10
)

// HTTPAdvisor POSTs a JSON Request to an endpoint and expects
// {"comment": "..."} back.
type HTTPAdvisor struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

type HTTPOption func(*HTTPAdvisor)

// WithClient replaces http.DefaultClient.
func WithClient(c *http.Client) HTTPOption {
	return func(a *HTTPAdvisor) { a.client = c }
}

// WithTimeout bounds each call. Zero keeps the default of two seconds.
func WithTimeout(d time.Duration) HTTPOption {
	return func(a *HTTPAdvisor) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// NewHTTP returns an advisor for endpoint.
func NewHTTP(endpoint string, opts ...HTTPOption) *HTTPAdvisor {
	a := &HTTPAdvisor{endpoint: endpoint, client: http.DefaultClient, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type commentResponse struct {
	Comment string `json:"comment"`
}

// Comment sends one request. Every call carries a fresh X-Request-Id.
func (a *HTTPAdvisor) Comment(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode advisor request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create advisor request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("advisor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return "", fmt.Errorf("advisor returned %s", resp.Status)
	}
	var cr commentResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&cr); err != nil {
		return "", fmt.Errorf("failed to decode advisor response: %w", err)
	}
	return strings.TrimSpace(cr.Comment), nil
}
