package alfred

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSendEmitsItemsKey(t *testing.T) {
	buf := new(bytes.Buffer)
	fb := &Feedback{}
	if err := fb.Send(buf); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if _, ok := decoded["items"]; !ok {
		t.Error("Feedback JSON must always contain an items key")
	}
	if !strings.Contains(buf.String(), "[]") {
		t.Errorf("Empty feedback should emit an empty array, got %s", buf.String())
	}
}

func TestSendRoundTrip(t *testing.T) {
	buf := new(bytes.Buffer)
	fb := &Feedback{}
	fb.Add(Item{
		Title:    "Fix Workflows",
		Subtitle: "Replace broken library copies",
		Arg:      "fix",
		UID:      "fix",
		Valid:    true,
		Icon:     &Icon{Path: "icon.png"},
	})
	if err := fb.Send(buf); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	var decoded Feedback
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(decoded.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(decoded.Items))
	}
	item := decoded.Items[0]
	if item.Title != "Fix Workflows" || item.Arg != "fix" || !item.Valid {
		t.Errorf("Item did not round-trip: %+v", item)
	}
	if item.Icon == nil || item.Icon.Path != "icon.png" {
		t.Errorf("Icon did not round-trip: %+v", item.Icon)
	}
}

func TestFilter(t *testing.T) {
	items := []Item{
		{Title: "Dry Run"},
		{Title: "View Log File"},
		{Title: "Edit Blacklist"},
		{Title: "Fix Workflows"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Dry Run", "View Log File", "Edit Blacklist", "Fix Workflows"}},
		{"fix", []string{"Fix Workflows"}},
		{"FIX", []string{"Fix Workflows"}},
		{"log", []string{"View Log File"}},
		{"black", []string{"Edit Blacklist"}},
		{"run", []string{"Dry Run"}},
		{"xyz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := Filter(tt.query, items)
			if len(got) != len(tt.want) {
				t.Fatalf("Filter(%q) returned %d items, want %d", tt.query, len(got), len(tt.want))
			}
			for i, item := range got {
				if item.Title != tt.want[i] {
					t.Errorf("Filter(%q)[%d] = %q, want %q", tt.query, i, item.Title, tt.want[i])
				}
			}
		})
	}
}

func TestFilterRanksPrefixFirst(t *testing.T) {
	items := []Item{
		{Title: "View Workflows"},
		{Title: "Workflow Settings"},
	}

	got := Filter("work", items)
	if len(got) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(got))
	}
	if got[0].Title != "Workflow Settings" {
		t.Errorf("Prefix match should rank first, got %q", got[0].Title)
	}
}
