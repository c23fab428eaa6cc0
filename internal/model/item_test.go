package model

import (
	"encoding/json"
	"testing"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected ID
	}{
		{`"abc"`, "abc"},
		{`" 42 "`, "42"},
		{`42`, "42"},
		{`null`, ""},
	}

	for _, test := range tests {
		var id ID
		if err := json.Unmarshal([]byte(test.input), &id); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", test.input, err)
		}
		if id != test.expected {
			t.Errorf("Unmarshal(%s) = %q, expected %q", test.input, id, test.expected)
		}
	}

	var id ID
	if err := json.Unmarshal([]byte(`{}`), &id); err == nil {
		t.Error("Expected error for object id, got nil")
	}
}

func TestCatalogItem_Decode(t *testing.T) {
	payload := `{
		"id": 7,
		"name": "Meditations",
		"cover": "https://cdn.example/7.jpg",
		"description": "<p>Notes</p>",
		"view": 12,
		"author": [{"id": 1, "name": "Marcus Aurelius"}],
		"tag": [{"id": "stoic", "name": "Stoicism"}],
		"url": "https://read.example/7"
	}`

	var item CatalogItem
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if item.ID != "7" {
		t.Errorf("Expected ID '7', got '%s'", item.ID)
	}
	if item.Views != 12 {
		t.Errorf("Expected 12 views, got %d", item.Views)
	}
	if len(item.Authors) != 1 || item.Authors[0].Name != "Marcus Aurelius" {
		t.Errorf("Unexpected authors: %+v", item.Authors)
	}
	if len(item.Tags) != 1 || item.Tags[0].ID != "stoic" {
		t.Errorf("Unexpected tags: %+v", item.Tags)
	}
	if !item.HasContent() {
		t.Error("Expected item to have content")
	}
}

func TestCatalogItem_GetDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"Republic", "https://read.example/1", "Republic"},
		{"  The \n Republic ", "", "The Republic"},
		{"", "https://read.example/2", "https://read.example/2"},
	}

	for _, test := range tests {
		item := &CatalogItem{Name: test.name, URL: test.url}
		result := item.GetDisplayName()
		if result != test.expected {
			t.Errorf("GetDisplayName() with name='%s', url='%s' = '%s', expected '%s'",
				test.name, test.url, result, test.expected)
		}
	}
}

func TestDedupeItems(t *testing.T) {
	items := []CatalogItem{
		{ID: "a", Name: "first a"},
		{ID: "b", Name: "b"},
		{ID: "a", Name: "second a"},
		{ID: "c", Name: "c"},
		{ID: "b", Name: "second b"},
	}

	result := DedupeItems(items)

	expected := []string{"first a", "b", "c"}
	if len(result) != len(expected) {
		t.Fatalf("Expected %d items, got %d", len(expected), len(result))
	}
	for i, name := range expected {
		if result[i].Name != name {
			t.Errorf("Item %d: expected %s, got %s", i, name, result[i].Name)
		}
	}

	if DedupeItems(nil) != nil {
		t.Error("Expected nil for nil input")
	}
}

func TestNewCategorySection(t *testing.T) {
	cat := Category{ID: "fiction", Label: "Fiction"}
	items := []CatalogItem{
		{ID: "1"}, {ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "2"},
		{ID: "4"}, {ID: "5"}, {ID: "6"},
	}

	section := NewCategorySection(cat, items, DefaultSectionCap)

	if len(section.Items) != DefaultSectionCap {
		t.Fatalf("Expected %d items, got %d", DefaultSectionCap, len(section.Items))
	}
	for i, id := range []ID{"1", "2", "3", "4", "5"} {
		if section.Items[i].ID != id {
			t.Errorf("Item %d: expected %s, got %s", i, id, section.Items[i].ID)
		}
	}

	empty := NewCategorySection(cat, nil, DefaultSectionCap)
	if !empty.IsEmpty() || empty.Items == nil {
		t.Error("Expected empty non-nil section for nil items")
	}
}

func TestCategoryOptions(t *testing.T) {
	options := CategoryOptions([]Category{
		{ID: "all", Label: "Everything"},
		{ID: "poetry", Label: "Poetry"},
		{ID: "", Label: "Broken"},
	})

	if len(options) != 2 {
		t.Fatalf("Expected 2 options, got %d", len(options))
	}
	if !options[0].IsAll() || options[0].Label != "All Categories" {
		t.Errorf("Expected sentinel first, got %+v", options[0])
	}
	if options[1].ID != "poetry" {
		t.Errorf("Expected poetry second, got %+v", options[1])
	}
}

func TestParseSortMode(t *testing.T) {
	for _, mode := range SortModes() {
		parsed, err := ParseSortMode(mode.String())
		if err != nil || parsed != mode {
			t.Errorf("ParseSortMode(%s) = %s, %v", mode, parsed, err)
		}
	}

	if _, err := ParseSortMode("4"); err == nil {
		t.Error("Expected error for unknown sort mode")
	}
}

func TestHomeFeed_IsEmpty(t *testing.T) {
	feed := &HomeFeed{Sections: []CategorySection{{Category: Category{ID: "x"}, Items: []CatalogItem{}}}}
	if !feed.IsEmpty() {
		t.Error("Expected feed with empty sections to be empty")
	}

	feed.Latest = []CatalogItem{{ID: "1"}}
	if feed.IsEmpty() {
		t.Error("Expected feed with latest items to be non-empty")
	}
	if feed.ItemCount() != 1 {
		t.Errorf("Expected item count 1, got %d", feed.ItemCount())
	}
}
