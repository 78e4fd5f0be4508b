package model

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Note is the canonical post-normalization shape. Timestamps are optional:
// backends disagree on whether they exist at all, so nil means "not reported".
type Note struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// EffectiveTime is the sort key: updatedAt, falling back to createdAt,
// falling back to the epoch zero value.
func (n Note) EffectiveTime() time.Time {
	if n.UpdatedAt != nil {
		return *n.UpdatedAt
	}
	if n.CreatedAt != nil {
		return *n.CreatedAt
	}
	return time.Time{}
}

// Normalize maps a loosely-shaped wire record onto a Note.
//
// The identifier may arrive as "id" or "_id", as a string or a number; both
// forms are compared by their string rendering so mixed-type backends behave.
// Records without any recognizable identifier are rejected (ok == false) and
// silently dropped by callers.
func Normalize(raw any) (Note, bool) {
	m, isMap := raw.(map[string]any)
	if !isMap {
		return Note{}, false
	}

	id, hasID := idString(firstPresent(m, "id", "_id"))
	if !hasID {
		return Note{}, false
	}

	return Note{
		ID:        id,
		Title:     stringField(m, "title"),
		Content:   stringField(m, "content"),
		CreatedAt: parseTimestamp(firstPresent(m, "createdAt", "created_at")),
		UpdatedAt: parseTimestamp(firstPresent(m, "updatedAt", "updated_at")),
	}, true
}

// NormalizeAll admits the records that normalize cleanly, in wire order.
func NormalizeAll(raw []any) []Note {
	out := make([]Note, 0, len(raw))
	for _, r := range raw {
		if n, ok := Normalize(r); ok {
			out = append(out, n)
		}
	}
	return out
}

// Sorted returns a copy ordered by descending effective timestamp, with
// ascending case-insensitive title as the tie-break. The input order is the
// backend's fetch order and must stay untouched (selection fallback depends
// on it).
func Sorted(notes []Note) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].EffectiveTime(), out[j].EffectiveTime()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	return out
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func idString(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		id = strings.TrimSpace(id)
		return id, id != ""
	case float64:
		// encoding/json decodes all wire numbers as float64.
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	default:
		return "", false
	}
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// parseTimestamp accepts RFC3339 strings (with or without time/zone parts)
// and epoch-like numbers (seconds, or milliseconds when implausibly large
// for seconds). Anything unparsable is treated as absent.
func parseTimestamp(v any) *time.Time {
	switch ts := v.(type) {
	case string:
		ts = strings.TrimSpace(ts)
		if ts == "" {
			return nil
		}
		for _, layout := range []string{
			time.RFC3339Nano,
			"2006-01-02T15:04:05",
			"2006-01-02",
		} {
			if t, err := time.Parse(layout, ts); err == nil {
				return &t
			}
		}
		return nil
	case float64:
		if ts <= 0 {
			return nil
		}
		sec := int64(ts)
		if sec > 1e12 {
			// Epoch milliseconds.
			t := time.UnixMilli(sec).UTC()
			return &t
		}
		t := time.Unix(sec, 0).UTC()
		return &t
	default:
		return nil
	}
}
