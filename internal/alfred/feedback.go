// Package alfred emits Script Filter feedback so the tool's actions can
// be listed and launched from inside Alfred.
package alfred

import (
	"encoding/json"
	"io"
	"strings"
)

// Item is a single Script Filter result row
type Item struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	Arg          string `json:"arg,omitempty"`
	UID          string `json:"uid,omitempty"`
	Valid        bool   `json:"valid"`
	Autocomplete string `json:"autocomplete,omitempty"`
	Icon         *Icon  `json:"icon,omitempty"`
}

// Icon is an item's icon
type Icon struct {
	Path string `json:"path"`
}

// Feedback collects items for one Script Filter response
type Feedback struct {
	Items []Item `json:"items"`
}

// Add appends items to the feedback
func (f *Feedback) Add(items ...Item) {
	f.Items = append(f.Items, items...)
}

// Send writes the feedback as Script Filter JSON
func (f *Feedback) Send(w io.Writer) error {
	// Alfred shows nothing for an absent items key, so always emit it
	if f.Items == nil {
		f.Items = []Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// Filter returns the items whose title matches query, most relevant
// first: prefix matches before word-prefix matches before substring
// matches. An empty query keeps everything. Matching is case
// insensitive.
func Filter(query string, items []Item) []Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}

	var prefix, wordPrefix, substring []Item
	for _, item := range items {
		title := strings.ToLower(item.Title)
		switch {
		case strings.HasPrefix(title, query):
			prefix = append(prefix, item)
		case wordStartsWith(title, query):
			wordPrefix = append(wordPrefix, item)
		case strings.Contains(title, query):
			substring = append(substring, item)
		}
	}

	matched := make([]Item, 0, len(prefix)+len(wordPrefix)+len(substring))
	matched = append(matched, prefix...)
	matched = append(matched, wordPrefix...)
	matched = append(matched, substring...)
	return matched
}

// wordStartsWith reports whether any word after the first starts with
// query
func wordStartsWith(title, query string) bool {
	words := strings.Fields(title)
	if len(words) < 2 {
		return false
	}
	for _, word := range words[1:] {
		if strings.HasPrefix(word, query) {
			return true
		}
	}
	return false
}
