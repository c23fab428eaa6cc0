package screen

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/civitas/civitas-reader/internal/catalog"
	"github.com/civitas/civitas-reader/internal/model"
	"github.com/civitas/civitas-reader/internal/query"
	"github.com/civitas/civitas-reader/internal/reconcile"
)

// Category presents a single category opened from a home row
type Category struct {
	presenter[[]model.CatalogItem]
	category model.Category
	query    model.Query
}

// NewCategory creates the presenter for category, listed by release date
func NewCategory(fetcher catalog.Fetcher, conn Connectivity, category model.Category, logger *zap.Logger) (*Category, error) {
	q, err := query.Build(category.ID.String(), model.SortByReleaseDate.String(), "")
	if err != nil {
		return nil, fmt.Errorf("category screen: %w", err)
	}

	rec := reconcile.ForItems("category", func(ctx context.Context, q model.Query) ([]model.CatalogItem, error) {
		return fetcher.Fetch(ctx, query.Resolve(query.SurfaceCategory, q))
	}, logger)

	c := &Category{category: category, query: q}
	c.attach(rec, conn)
	return c, nil
}

// Load requests the category listing
func (c *Category) Load(ctx context.Context) {
	c.rec.Request(ctx, c.query)
}

// Category returns the presented category
func (c *Category) Category() model.Category {
	return c.category
}

// Query returns the category query
func (c *Category) Query() model.Query {
	return c.query
}
