// Package api is the HTTP client for the remote notes service.
//
// The service's exact REST convention is not guaranteed in advance, so every
// logical operation is attempted against an ordered list of candidate
// resource paths (primary, then namespaced). Each candidate is tried exactly
// once per call; there is no backoff and no retry beyond that list.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// requestTimeout bounds every individual request; on expiry the request is
// aborted via its context and treated like any other transport failure.
const requestTimeout = 15 * time.Second

// candidatePaths are the guessed REST resource prefixes, in the fixed order
// they are tried.
var candidatePaths = []string{"/notes", "/api/notes"}

// baseURLEnvVars are checked in order; the first non-empty value wins.
var baseURLEnvVars = []string{"NOTED_API_URL", "NOTES_API_URL"}

// ResolveBaseURL resolves the service base URL from the environment.
// Empty means "same origin" (bare candidate paths against the local host).
func ResolveBaseURL() string {
	for _, name := range baseURLEnvVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return strings.TrimRight(v, "/")
		}
	}
	return ""
}

type Client struct {
	base   string
	httpc  *http.Client
	logger *slog.Logger
}

func New(base string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		base:   strings.TrimRight(strings.TrimSpace(base), "/"),
		httpc:  &http.Client{},
		logger: logger,
	}
}

// BaseURL reports the resolved base URL for display (may be empty).
func (c *Client) BaseURL() string { return c.base }

// List fetches all notes. It accepts either a bare JSON array or an object
// with a "notes" array field; any other success shape degrades to an empty
// list rather than an error.
func (c *Client) List(ctx context.Context) ([]any, error) {
	res, err := c.attempt(ctx, http.MethodGet, "", nil)
	if err != nil {
		return nil, err
	}
	switch v := res.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if arr, ok := v["notes"].([]any); ok {
			return arr, nil
		}
	}
	return []any{}, nil
}

// Create posts a new note and returns the raw response body for
// normalization by the caller.
func (c *Client) Create(ctx context.Context, title, content string) (any, error) {
	return c.attempt(ctx, http.MethodPost, "", noteBody{Title: title, Content: content})
}

// Update puts new field values for an existing note. The id is path-escaped:
// backends are free to issue ids with reserved characters.
func (c *Client) Update(ctx context.Context, id, title, content string) (any, error) {
	return c.attempt(ctx, http.MethodPut, "/"+url.PathEscape(id), noteBody{Title: title, Content: content})
}

// Delete removes a note. Backends conventionally reply 204.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.attempt(ctx, http.MethodDelete, "/"+url.PathEscape(id), nil)
	return err
}

type noteBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// attempt walks the candidate paths in order, trying each exactly once.
// On failure the next candidate is tried; when all fail, the last error is
// the one surfaced.
func (c *Client) attempt(ctx context.Context, method, suffix string, body any) (any, error) {
	var lastErr error
	for _, p := range candidatePaths {
		res, err := c.do(ctx, method, p+suffix, body)
		if err == nil {
			return res, nil
		}
		lastErr = err
		c.logger.Debug("notes api candidate failed",
			"method", method,
			"path", p+suffix,
			"err", err)
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, method, path string, body any) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	if isJSONContentType(resp.Header.Get("Content-Type")) {
		var out any
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return out, nil
	}

	// Success without a JSON content type: pass raw text through so callers
	// can at least inspect it.
	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(text)) == 0 {
		return nil, nil
	}
	return map[string]any{"raw": string(text)}, nil
}

func isJSONContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	return strings.Contains(ct, "json")
}
