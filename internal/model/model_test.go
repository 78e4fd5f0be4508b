package model

import (
	"testing"
	"time"
)

func TestNormalize_DiscardsRecordsWithoutIdentifier(t *testing.T) {
	t.Parallel()

	for _, raw := range []any{
		map[string]any{"title": "no id at all"},
		map[string]any{"id": nil, "title": "null id"},
		map[string]any{"id": "", "title": "empty id"},
		map[string]any{"id": true, "title": "bool id"},
		"not even an object",
		nil,
	} {
		if _, ok := Normalize(raw); ok {
			t.Fatalf("expected %v to be discarded", raw)
		}
	}
}

func TestNormalize_IdentifierAliasesAndTypes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  map[string]any
		want string
	}{
		{map[string]any{"id": "abc"}, "abc"},
		{map[string]any{"_id": "mongo-style"}, "mongo-style"},
		{map[string]any{"id": float64(7)}, "7"},
		{map[string]any{"_id": float64(42)}, "42"},
		// "id" wins over "_id" when both are present.
		{map[string]any{"id": "a", "_id": "b"}, "a"},
	}
	for _, tc := range cases {
		n, ok := Normalize(tc.raw)
		if !ok {
			t.Fatalf("expected %v to normalize", tc.raw)
		}
		if n.ID != tc.want {
			t.Fatalf("id: expected %q; got %q", tc.want, n.ID)
		}
	}
}

func TestNormalize_FieldDefaults(t *testing.T) {
	t.Parallel()

	n, ok := Normalize(map[string]any{"id": "x"})
	if !ok {
		t.Fatalf("expected record to normalize")
	}
	if n.Title != "" || n.Content != "" {
		t.Fatalf("expected empty title/content defaults; got %q / %q", n.Title, n.Content)
	}
	if n.CreatedAt != nil || n.UpdatedAt != nil {
		t.Fatalf("expected nil timestamps when absent")
	}
}

func TestNormalize_TimestampAliasesAndFormats(t *testing.T) {
	t.Parallel()

	n, ok := Normalize(map[string]any{
		"id":         "x",
		"created_at": "2024-01-02T03:04:05Z",
		"updatedAt":  "2024-06-01",
	})
	if !ok {
		t.Fatalf("expected record to normalize")
	}
	if n.CreatedAt == nil || !n.CreatedAt.Equal(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("created_at alias not parsed: %v", n.CreatedAt)
	}
	if n.UpdatedAt == nil || !n.UpdatedAt.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date-only updatedAt not parsed: %v", n.UpdatedAt)
	}

	// Epoch seconds and milliseconds.
	sec := float64(1700000000)
	n, _ = Normalize(map[string]any{"id": "x", "updatedAt": sec})
	if n.UpdatedAt == nil || n.UpdatedAt.Unix() != 1700000000 {
		t.Fatalf("epoch seconds not parsed: %v", n.UpdatedAt)
	}
	n, _ = Normalize(map[string]any{"id": "x", "updatedAt": sec * 1000})
	if n.UpdatedAt == nil || n.UpdatedAt.Unix() != 1700000000 {
		t.Fatalf("epoch millis not parsed: %v", n.UpdatedAt)
	}

	// Garbage timestamps are treated as absent, not as errors.
	n, ok = Normalize(map[string]any{"id": "x", "updatedAt": "yesterday-ish"})
	if !ok || n.UpdatedAt != nil {
		t.Fatalf("unparsable timestamp should be nil; got %v (ok=%v)", n.UpdatedAt, ok)
	}
}

func TestNormalizeAll_KeepsWireOrderAndDropsUnidentifiable(t *testing.T) {
	t.Parallel()

	raw := []any{
		map[string]any{"id": "b"},
		map[string]any{"title": "dropped"},
		map[string]any{"id": "a"},
	}
	notes := NormalizeAll(raw)
	if len(notes) != 2 || notes[0].ID != "b" || notes[1].ID != "a" {
		t.Fatalf("unexpected normalization result: %+v", notes)
	}
}

func tsPtr(t time.Time) *time.Time { return &t }

func TestSorted_DescendingEffectiveTimeThenTitle(t *testing.T) {
	t.Parallel()

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	notes := []Note{
		{ID: "1", Title: "banana", UpdatedAt: tsPtr(t1)},
		{ID: "2", Title: "Apple", UpdatedAt: tsPtr(t1)},
		{ID: "3", Title: "old, createdAt only", CreatedAt: tsPtr(t2)},
		{ID: "4", Title: "no timestamps at all"},
	}
	got := Sorted(notes)

	wantIDs := []string{"3", "2", "1", "4"}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Fatalf("position %d: expected id %q; got %q (order %+v)", i, want, got[i].ID, got)
		}
	}

	// Input (fetch order) must stay untouched; selection fallback depends on it.
	if notes[0].ID != "1" || notes[3].ID != "4" {
		t.Fatalf("Sorted mutated its input: %+v", notes)
	}
}

func TestSorted_TieBreakIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	notes := []Note{
		{ID: "1", Title: "zebra", UpdatedAt: tsPtr(ts)},
		{ID: "2", Title: "Alpha", UpdatedAt: tsPtr(ts)},
		{ID: "3", Title: "mango", UpdatedAt: tsPtr(ts)},
	}
	got := Sorted(notes)
	if got[0].ID != "2" || got[1].ID != "3" || got[2].ID != "1" {
		t.Fatalf("unexpected tie-break order: %+v", got)
	}
}
