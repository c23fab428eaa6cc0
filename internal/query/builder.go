package query

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/civitas/civitas-reader/internal/model"
)

// MaxSearchTermLength bounds the search term, in runes
const MaxSearchTermLength = 200

var (
	// ErrInvalidSort is returned when the sort code is not a known SortMode
	ErrInvalidSort = errors.New("query: invalid sort")

	// ErrInvalidQuery is returned for malformed category ids or search terms
	ErrInvalidQuery = errors.New("query: invalid query")
)

// Build composes a Query. An unset category falls back to the "all"
// sentinel and an unset sort to the default sort. The search term is
// trimmed and NFC-normalized; a blank term means "no search".
func Build(category, sort, searchTerm string) (model.Query, error) {
	cat := strings.TrimSpace(category)
	if cat == "" {
		cat = model.AllCategoriesID.String()
	}
	if strings.IndexFunc(cat, unicode.IsControl) >= 0 {
		return model.Query{}, fmt.Errorf("%w: category %q contains control characters", ErrInvalidQuery, cat)
	}

	mode := model.DefaultSortMode
	if s := strings.TrimSpace(sort); s != "" {
		parsed, err := model.ParseSortMode(s)
		if err != nil {
			return model.Query{}, fmt.Errorf("%w: %v", ErrInvalidSort, err)
		}
		mode = parsed
	}

	term, err := NormalizeTerm(searchTerm)
	if err != nil {
		return model.Query{}, err
	}

	return model.Query{
		Category:   model.ID(cat),
		Sort:       mode,
		SearchTerm: term,
	}, nil
}

// MustBuild is Build for compile-time constant arguments; it panics on error
func MustBuild(category, sort, searchTerm string) model.Query {
	q, err := Build(category, sort, searchTerm)
	if err != nil {
		panic(err)
	}
	return q
}

// NormalizeTerm trims and NFC-normalizes a search term. Inner whitespace is
// kept as typed; control characters other than surrounding whitespace are
// rejected.
func NormalizeTerm(term string) (string, error) {
	cleaned := norm.NFC.String(strings.TrimSpace(term))
	if strings.IndexFunc(cleaned, unicode.IsControl) >= 0 {
		return "", fmt.Errorf("%w: search term contains control characters", ErrInvalidQuery)
	}
	if utf8.RuneCountInString(cleaned) > MaxSearchTermLength {
		return "", fmt.Errorf("%w: search term longer than %d characters", ErrInvalidQuery, MaxSearchTermLength)
	}
	return cleaned, nil
}

// KindOf maps builder errors to the error taxonomy
func KindOf(err error) model.ErrorKind {
	switch {
	case err == nil:
		return model.ErrorKindNone
	case errors.Is(err, ErrInvalidSort):
		return model.ErrorKindInvalidSort
	default:
		return model.ErrorKindInvalidQuery
	}
}
