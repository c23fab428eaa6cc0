package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ID identifies catalog entities. The API emits ids either as JSON strings or
// numbers; both decode to the same canonical string.
type ID string

// UnmarshalJSON accepts a JSON string, a JSON number or null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// String returns the string representation of ID
func (id ID) String() string {
	return string(id)
}

// Author is a reference to a catalog author
type Author struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Tag is a reference to a catalog tag
type Tag struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// CatalogItem is a single entry in the catalog as returned by the API
type CatalogItem struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Cover       string   `json:"cover"`       // cover image URL
	Description string   `json:"description"` // may contain HTML
	Views       int64    `json:"view"`
	Authors     []Author `json:"author"`
	Tags        []Tag    `json:"tag"`
	URL         string   `json:"url"` // content location handed to the viewer
}

// GetDisplayName returns the name, or the content URL when the name is blank
func (ci *CatalogItem) GetDisplayName() string {
	name := strings.Join(strings.Fields(ci.Name), " ")
	if name != "" {
		return name
	}
	return strings.TrimSpace(ci.URL)
}

// AuthorNames returns the author names in API order
func (ci *CatalogItem) AuthorNames() []string {
	names := make([]string, 0, len(ci.Authors))
	for _, a := range ci.Authors {
		if n := strings.TrimSpace(a.Name); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// HasContent reports whether the item can be handed to the viewer
func (ci *CatalogItem) HasContent() bool {
	return strings.TrimSpace(ci.URL) != ""
}

// DedupeItems drops items whose ID was already seen. The first occurrence
// wins and the relative order of kept items is preserved.
func DedupeItems(items []CatalogItem) []CatalogItem {
	if items == nil {
		return nil
	}
	seen := make(map[ID]struct{}, len(items))
	out := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}
