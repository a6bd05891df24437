// ABOUTME: HTTP client for the exercise Record Store REST API.
// ABOUTME: One request per call, fixed timeout, no retries or caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultBaseURL is where the Record Store listens by default.
	DefaultBaseURL = "http://localhost:8080/api"

	// Timeout bounds every request.
	Timeout = 5 * time.Second
)

// Client calls the Record Store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *log.Logger
}

// NewClient creates a Client for baseURL. A nil logger discards output.
func NewClient(baseURL string, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: Timeout},
		log:        logger,
	}
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request and decodes a JSON response into out when out is
// non-nil and the response has a body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.log.Debug("request", "method", method, "path", path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = classify(method, path, err)
		c.log.Error("no response", "method", method, "path", path, "err", err)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = &NoResponseError{Method: method, Path: path, Err: err}
		c.log.Error("read response", "method", method, "path", path, "err", err)
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("error response", "method", method, "path", path,
			"status", resp.StatusCode, "body", strings.TrimSpace(string(respBody)))
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: string(respBody)}
	}

	c.log.Debug("response", "method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start).String())

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}
