// Package invite calls the external action that creates and invites a user.
package invite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domain "github.com/mohammadpnp/appraisal-import/internal/domain/roster"
)

const maxErrorBody = 4 << 10

var ErrInviteRejected = errors.New("invitation rejected")

type Client struct {
	url        string
	token      string
	httpClient *http.Client
}

func NewClient(url, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{url: url, token: token, httpClient: httpClient}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Invite makes exactly one call. A non-2xx response becomes an error carrying
// the action's own message when it sent one.
func (c *Client) Invite(ctx context.Context, in domain.InviteRequest) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal invite request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build invite request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invite request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInviteRejected, errorMessage(resp.Status, raw))
}

func errorMessage(status string, raw []byte) string {
	var decoded errorResponse
	if err := json.Unmarshal(raw, &decoded); err == nil {
		if decoded.Error != "" {
			return decoded.Error
		}
		if decoded.Message != "" {
			return decoded.Message
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 200 {
		return text
	}
	return status
}
