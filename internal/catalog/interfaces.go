package catalog

import (
	"context"

	"github.com/civitas/civitas-reader/internal/model"
	"github.com/civitas/civitas-reader/internal/query"
)

// Fetcher defines the catalog API operations used by the presenters.
type Fetcher interface {
	Items(ctx context.Context, category model.ID, sort model.SortMode) ([]model.CatalogItem, error)
	Highlight(ctx context.Context) (*model.CatalogItem, error)
	Featured(ctx context.Context) ([]model.CatalogItem, error)
	Latest(ctx context.Context) ([]model.CatalogItem, error)
	Popular(ctx context.Context) ([]model.CatalogItem, error)
	Categories(ctx context.Context) ([]model.Category, error)
	Search(ctx context.Context, term string) ([]model.CatalogItem, error)

	// Fetch dispatches a resolved item-list route
	Fetch(ctx context.Context, route query.Route) ([]model.CatalogItem, error)

	// FetchHome assembles the home feed with at most sectionCap items per category
	FetchHome(ctx context.Context, sectionCap int) (model.HomeFeed, error)

	// RecordView reports a view of item without blocking the caller
	RecordView(item model.CatalogItem)
}

var _ Fetcher = (*Client)(nil)
