// Package embedding provides an HTTP client for a text-embedding
// inference service speaking the common /embed protocol (a JSON body
// of input strings, a JSON array of vectors back).
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tripgraph/tripgraph/vector"
)

// ErrEmptyResponse is returned when the service answers with no
// vectors for a non-empty request.
var ErrEmptyResponse = errors.New("embedding service returned no vectors")

const defaultTimeout = 30 * time.Second

// Client calls a text-embedding inference service over HTTP.
type Client struct {
	endpoint string
	httpc    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpc = h
	}
}

// NewClient creates a Client for the given service endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

type embedRequest struct {
	Inputs []string `json:"inputs"`
}

// Embed computes the embedding of a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Inputs: []string{text}})
	if err != nil {
		return nil, fmt.Errorf("embedding: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("embedding: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding: request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return nil, fmt.Errorf("embedding: service returned %s: %s", resp.Status, msg)
	}

	var vectors [][]float32

	err = json.NewDecoder(resp.Body).Decode(&vectors)
	if err != nil {
		return nil, fmt.Errorf("embedding: decode response: %w", err)
	}

	if len(vectors) == 0 {
		return nil, ErrEmptyResponse
	}

	return vectors[0], nil
}

var _ vector.Embedder = (*Client)(nil)
