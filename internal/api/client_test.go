package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestResolveBaseURL_EnvOrderAndTrailingSlash(t *testing.T) {
	t.Setenv("NOTED_API_URL", "")
	t.Setenv("NOTES_API_URL", "")
	if got := ResolveBaseURL(); got != "" {
		t.Fatalf("expected empty base with no env; got %q", got)
	}

	t.Setenv("NOTES_API_URL", "https://fallback.example.com/")
	if got := ResolveBaseURL(); got != "https://fallback.example.com" {
		t.Fatalf("expected fallback var (slash stripped); got %q", got)
	}

	t.Setenv("NOTED_API_URL", "https://primary.example.com")
	if got := ResolveBaseURL(); got != "https://primary.example.com" {
		t.Fatalf("expected primary var to win; got %q", got)
	}
}

func TestList_AcceptsBareArrayAndNotesObject(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id":"a"},{"id":"b"}]`, 2},
		{"notes object", `{"notes":[{"id":"a"},{"id":"b"}]}`, 2},
		{"unrecognized shape", `{"records":[1,2,3]}`, 0},
		{"empty object", `{}`, 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			got, err := New(ts.URL, nil).List(context.Background())
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("expected %d records; got %d (%v)", tc.want, len(got), got)
			}
		})
	}
}

func TestList_FallsBackToNamespacedPath(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/api/notes" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":"a"}]`))
			return
		}
		http.NotFound(w, r)
	}))
	defer ts.Close()

	got, err := New(ts.URL, nil).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record from the fallback path; got %v", got)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(paths) != 2 || paths[0] != "/notes" || paths[1] != "/api/notes" {
		t.Fatalf("expected primary then namespaced attempt; got %v", paths)
	}
}

func TestCreate_BothCandidatesFailSurfacesLastError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/notes" {
			http.Error(w, "wrong place", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"upstream exploded"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).Create(context.Background(), "T", "C")
	if err == nil {
		t.Fatalf("expected an error when every candidate fails")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error; got %T (%v)", err, err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Fatalf("expected the last candidate's status (502); got %d", apiErr.Status)
	}
	if !strings.Contains(apiErr.Error(), "upstream exploded") {
		t.Fatalf("expected extracted detail in message; got %q", apiErr.Error())
	}
	if !strings.Contains(apiErr.Error(), "502") {
		t.Fatalf("expected status code in message; got %q", apiErr.Error())
	}
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept header: %q", got)
		}
		if r.Method == http.MethodPost {
			if got := r.Header.Get("Content-Type"); got != "application/json" {
				t.Errorf("Content-Type header: %q", got)
			}
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode body: %v", err)
			}
			if body["title"] != "T" || body["content"] != "C" {
				t.Errorf("unexpected body: %v", body)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, nil)
	if _, err := c.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if _, err := c.Create(context.Background(), "T", "C"); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestDelete_NoContentIsSuccess(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	if err := New(ts.URL, nil).Delete(context.Background(), "n1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestIDWithReservedCharactersIsPathEscaped(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var paths []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.EscapedPath())
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	if err := New(ts.URL, nil).Delete(context.Background(), "a/b c#d"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(paths) != 1 || paths[0] != "/notes/a%2Fb%20c%23d" {
		t.Fatalf("expected the id escaped into one path segment; got %v", paths)
	}
}

func TestUpdate_NonJSONSuccessWrappedAsRaw(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	res, err := New(ts.URL, nil).Update(context.Background(), "n1", "T", "C")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	m, ok := res.(map[string]any)
	if !ok || m["raw"] != "ok" {
		t.Fatalf("expected {raw: ok}; got %#v", res)
	}
}

func TestUpdate_EmptyTextSuccessIsNil(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	res, err := New(ts.URL, nil).Update(context.Background(), "n1", "T", "C")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil result for empty body; got %#v", res)
	}
}

func TestExtractDetail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		body string
		want string
	}{
		{`{"error":"nope"}`, "nope"},
		{`{"message":"try later"}`, "try later"},
		{`{"detail":"specifics"}`, "specifics"},
		{`plain text failure`, "plain text failure"},
		{`{"unrelated":true}`, `{"unrelated":true}`},
		{``, ""},
	}
	for _, tc := range cases {
		if got := extractDetail([]byte(tc.body)); got != tc.want {
			t.Fatalf("extractDetail(%q) = %q; want %q", tc.body, got, tc.want)
		}
	}
}
