package model

// Query is the (category, sort, search term) triple identifying a catalog
// request. Two queries are equal iff all three fields are equal, so Query
// values can be compared with ==.
type Query struct {
	Category   ID
	Sort       SortMode
	SearchTerm string
}

// IsSearch reports whether the query carries a search term
func (q Query) IsSearch() bool {
	return q.SearchTerm != ""
}

// IsZero reports whether the query was never set
func (q Query) IsZero() bool {
	return q == Query{}
}
