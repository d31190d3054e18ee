// Package geocode calls the enrichment function that resolves an imported
// appraisal's coordinates.
package geocode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const maxRetries = 2

type Client struct {
	url        string
	token      string
	httpClient *http.Client
	newBackOff func() backoff.BackOff
}

func NewClient(url, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		url:        url,
		token:      token,
		httpClient: httpClient,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 5 * time.Second
			return b
		},
	}
}

// WithBackOff replaces the retry policy.
func (c *Client) WithBackOff(newBackOff func() backoff.BackOff) *Client {
	c.newBackOff = newBackOff
	return c
}

type geocodeRequest struct {
	AppraisalID string `json:"appraisal_id"`
}

// GeocodeAppraisal asks the enrichment function to geocode one appraisal.
// Server errors and transport failures are retried; client errors are not.
func (c *Client) GeocodeAppraisal(ctx context.Context, appraisalID string) error {
	body, err := json.Marshal(geocodeRequest{AppraisalID: appraisalID})
	if err != nil {
		return fmt.Errorf("marshal geocode request: %w", err)
	}

	operation := func() error {
		return c.post(ctx, body)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), maxRetries), ctx)
	return backoff.Retry(operation, policy)
}

func (c *Client) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("build geocode request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("geocode returned %s", resp.Status)
	case resp.StatusCode >= 300:
		return backoff.Permanent(fmt.Errorf("geocode returned %s", resp.Status))
	}
	return nil
}
