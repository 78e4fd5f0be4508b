package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"noted-cli/internal/devserver"
	"noted-cli/internal/model"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := devserver.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(devserver.NewServer(store, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	want := map[string]bool{"list": false, "create": false, "save": false, "delete": false, "status": false, "serve": false}
	for _, c := range cmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing subcommand %q", name)
		}
	}
}

func TestListCmd_RoundTrip(t *testing.T) {
	ts := newBackend(t)

	out, err := runCommand(t, "create", "--api", ts.URL, "--title", "First", "--content", "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var created model.Note
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("create output not a note: %v\n%s", err, out)
	}
	if created.ID == "" || created.Title != "First" {
		t.Fatalf("unexpected created note: %+v", created)
	}

	out, err = runCommand(t, "list", "--api", ts.URL)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var notes []model.Note
	if err := json.Unmarshal([]byte(out), &notes); err != nil {
		t.Fatalf("list output not a note array: %v\n%s", err, out)
	}
	if len(notes) != 1 || notes[0].ID != created.ID {
		t.Fatalf("unexpected listing: %+v", notes)
	}

	out, err = runCommand(t, "delete", created.ID, "--api", ts.URL)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !strings.Contains(out, "deleted "+created.ID) {
		t.Fatalf("unexpected delete output: %q", out)
	}
}

func TestSaveCmd_UpdatesNote(t *testing.T) {
	ts := newBackend(t)

	out, err := runCommand(t, "create", "--api", ts.URL, "--title", "Draft")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var created model.Note
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("create output: %v", err)
	}

	out, err = runCommand(t, "save", created.ID, "--api", ts.URL, "--title", "Final", "--content", "done")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	var updated model.Note
	if err := json.Unmarshal([]byte(out), &updated); err != nil {
		t.Fatalf("save output: %v", err)
	}
	if updated.Title != "Final" || updated.Content != "done" {
		t.Fatalf("unexpected updated note: %+v", updated)
	}
}

func TestStatusCmd_ReportsUnreachable(t *testing.T) {
	out, err := runCommand(t, "status", "--api", "http://127.0.0.1:1")
	if err != nil {
		t.Fatalf("status must not fail on an unreachable service: %v", err)
	}
	var rep statusReport
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("status output: %v\n%s", err, out)
	}
	if rep.Reachable || rep.Error == "" {
		t.Fatalf("expected unreachable report: %+v", rep)
	}
}

func TestStatusCmd_CountsNotes(t *testing.T) {
	ts := newBackend(t)
	if _, err := runCommand(t, "create", "--api", ts.URL, "--title", "One"); err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := runCommand(t, "status", "--api", ts.URL)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var rep statusReport
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("status output: %v", err)
	}
	if !rep.Reachable || rep.NoteCount != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("NOTED_DEBUG", "TRUE")
	if !envBool("NOTED_DEBUG") {
		t.Fatalf("TRUE must parse as set")
	}
	t.Setenv("NOTED_DEBUG", "0")
	if envBool("NOTED_DEBUG") {
		t.Fatalf("0 must parse as unset")
	}
}
