package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"digital-asset-gateway/internal/core/ports"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the external content-moderation collaborator. It is
// consulted only when minting an asset with embedded content, and the
// caller fails closed when the collaborator is unreachable.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	log        zerolog.Logger
}

// New creates a moderation client. A nil httpClient selects a default
// client with a 5s timeout.
func New(baseURL string, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, log: log}
}

type reviewRequest struct {
	Content string `json:"content"`
}

// Review submits content for moderation and returns the decision.
func (c *Client) Review(ctx context.Context, content string) (*ports.ModerationDecision, error) {
	body, err := json.Marshal(reviewRequest{Content: content})
	if err != nil {
		return nil, fmt.Errorf("marshal review request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/review", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build review request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moderation request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for the log, then discard
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn().Int("status", resp.StatusCode).Bytes("body", snippet).Msg("moderation returned non-200")
		return nil, fmt.Errorf("moderation returned status %d", resp.StatusCode)
	}

	var decision ports.ModerationDecision
	if err := json.NewDecoder(resp.Body).Decode(&decision); err != nil {
		return nil, fmt.Errorf("decode moderation response: %w", err)
	}
	return &decision, nil
}
