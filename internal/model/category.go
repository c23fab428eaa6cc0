package model

import "fmt"

// AllCategoriesID is the sentinel category meaning "no category filter"
const AllCategoriesID ID = "all"

// Category is a server-provided catalog category
type Category struct {
	ID    ID     `json:"id"`
	Label string `json:"label"`
}

// AllCategories is the fixed option listed before server categories
var AllCategories = Category{ID: AllCategoriesID, Label: "All Categories"}

// IsAll reports whether the category is the "all" sentinel
func (c Category) IsAll() bool {
	return c.ID == AllCategoriesID
}

// CategoryOptions returns the selectable categories: the sentinel first,
// followed by the server categories in API order. A server category that
// reuses the sentinel id is skipped.
func CategoryOptions(server []Category) []Category {
	options := make([]Category, 0, len(server)+1)
	options = append(options, AllCategories)
	for _, c := range server {
		if c.IsAll() || c.ID == "" {
			continue
		}
		options = append(options, c)
	}
	return options
}

// SortMode is the closed set of server-side sort codes
type SortMode string

const (
	SortByTitle       SortMode = "1"
	SortByReleaseDate SortMode = "2"
	SortByPopularity  SortMode = "3"
)

// DefaultSortMode is used when a screen has not picked a sort yet
const DefaultSortMode = SortByTitle

// SortModes returns all sort modes in display order
func SortModes() []SortMode {
	return []SortMode{SortByTitle, SortByReleaseDate, SortByPopularity}
}

// ParseSortMode validates a sort code
func ParseSortMode(code string) (SortMode, error) {
	switch SortMode(code) {
	case SortByTitle, SortByReleaseDate, SortByPopularity:
		return SortMode(code), nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", code)
	}
}

// String returns the server sort code
func (sm SortMode) String() string {
	return string(sm)
}

// Label returns an English label for the sort selector
func (sm SortMode) Label() string {
	switch sm {
	case SortByTitle:
		return "Sort by Title"
	case SortByReleaseDate:
		return "Sort by Release Date"
	case SortByPopularity:
		return "Sort by Popularity"
	default:
		return "Unknown"
	}
}
