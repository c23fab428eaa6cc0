package model

// DefaultSectionCap is the number of items shown per category on the home feed
const DefaultSectionCap = 5

// CategorySection is one category row of the home feed
type CategorySection struct {
	Category Category      `json:"category"`
	Items    []CatalogItem `json:"items"`
}

// NewCategorySection dedupes items by id (first occurrence wins) and then
// truncates to limit. A limit <= 0 keeps every unique item.
func NewCategorySection(category Category, items []CatalogItem, limit int) CategorySection {
	unique := DedupeItems(items)
	if unique == nil {
		unique = []CatalogItem{}
	}
	if limit > 0 && len(unique) > limit {
		unique = unique[:limit]
	}
	return CategorySection{Category: category, Items: unique}
}

// IsEmpty reports whether the section has nothing to show
func (cs CategorySection) IsEmpty() bool {
	return len(cs.Items) == 0
}

// HomeFeed is the aggregate shown on the home screen
type HomeFeed struct {
	Highlight *CatalogItem      `json:"highlight,omitempty"`
	Featured  []CatalogItem     `json:"featured"`
	Latest    []CatalogItem     `json:"latest"`
	Sections  []CategorySection `json:"sections"`
}

// HasHighlight reports whether a highlight item is present
func (hf *HomeFeed) HasHighlight() bool {
	return hf.Highlight != nil && hf.Highlight.ID != ""
}

// IsEmpty reports whether the feed has no item at all
func (hf *HomeFeed) IsEmpty() bool {
	if hf.HasHighlight() || len(hf.Featured) > 0 || len(hf.Latest) > 0 {
		return false
	}
	for _, s := range hf.Sections {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}

// Section returns the section for a category id
func (hf *HomeFeed) Section(categoryID ID) (CategorySection, bool) {
	for _, s := range hf.Sections {
		if s.Category.ID == categoryID {
			return s, true
		}
	}
	return CategorySection{}, false
}

// ItemCount returns the number of items across all sections
func (hf *HomeFeed) ItemCount() int {
	n := len(hf.Featured) + len(hf.Latest)
	if hf.HasHighlight() {
		n++
	}
	for _, s := range hf.Sections {
		n += len(s.Items)
	}
	return n
}
