package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error is the single failure type for HTTP-level failures: a non-success
// status plus whatever detail could be recovered from the response body.
// Transport failures (network errors, the 15s timeout) stay plain wrapped
// errors with Status unset, so errors.As distinguishes the two.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Detail) == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
}

// maxDetailBytes caps how much of an error body we keep; HTML error pages
// from proxies can be large.
const maxDetailBytes = 4 << 10

func newStatusError(resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxDetailBytes))
	return &Error{Status: resp.StatusCode, Detail: extractDetail(body)}
}

// extractDetail pulls a human-readable message out of an error body,
// best-effort: a JSON "error"/"message"/"detail" field when the body parses,
// otherwise the trimmed text itself.
func extractDetail(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"error", "message", "detail"} {
			if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return text
}
