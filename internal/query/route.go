package query

import (
	"net/url"

	"github.com/civitas/civitas-reader/internal/model"
)

// Surface identifies the browsing screen a query is issued from
type Surface int

const (
	SurfaceHome Surface = iota
	SurfaceLibrary
	SurfaceCategory
	SurfaceSearch
)

// String returns the surface name used in logs
func (s Surface) String() string {
	switch s {
	case SurfaceHome:
		return "home"
	case SurfaceLibrary:
		return "library"
	case SurfaceCategory:
		return "category"
	case SurfaceSearch:
		return "search"
	default:
		return "unknown"
	}
}

// RouteKind selects the API listing a query is served from
type RouteKind int

const (
	RouteItems RouteKind = iota
	RoutePopular
	RouteSearch
	RouteHome
)

// API paths
const (
	PathItems      = "/items/0"
	PathHighlight  = "/item-highlight/0"
	PathFeatured   = "/items-featured/0"
	PathLatest     = "/items-latest/0"
	PathPopular    = "/items-popular/0"
	PathCategories = "/item-categories"
	PathSearch     = "/items-search/0"
	PathViewAdd    = "/view-add"
)

// Query parameter names
const (
	ParamCategory = "category"
	ParamSort     = "sort"
	ParamSearch   = "search"
)

// Route is a resolved API request for a query
type Route struct {
	Kind  RouteKind
	Query model.Query
}

// Resolve maps a query issued from a surface to its route. On the search
// surface a non-empty term selects the search listing and an empty term the
// popular listing; category and sort are ignored there.
func Resolve(surface Surface, q model.Query) Route {
	switch surface {
	case SurfaceSearch:
		if q.IsSearch() {
			return Route{Kind: RouteSearch, Query: model.Query{SearchTerm: q.SearchTerm}}
		}
		return Route{Kind: RoutePopular}
	case SurfaceHome:
		return Route{Kind: RouteHome, Query: q}
	default:
		return Route{Kind: RouteItems, Query: model.Query{Category: q.Category, Sort: q.Sort}}
	}
}

// Path returns the API path for the route
func (r Route) Path() string {
	switch r.Kind {
	case RoutePopular:
		return PathPopular
	case RouteSearch:
		return PathSearch
	default:
		return PathItems
	}
}

// Values returns the encoded query parameters for the route
func (r Route) Values() url.Values {
	v := url.Values{}
	switch r.Kind {
	case RouteSearch:
		v.Set(ParamSearch, r.Query.SearchTerm)
	case RouteItems, RouteHome:
		category := r.Query.Category
		if category == "" {
			category = model.AllCategoriesID
		}
		sort := r.Query.Sort
		if sort == "" {
			sort = model.DefaultSortMode
		}
		v.Set(ParamCategory, category.String())
		v.Set(ParamSort, sort.String())
	}
	return v
}
