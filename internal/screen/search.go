package screen

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/civitas/civitas-reader/internal/catalog"
	"github.com/civitas/civitas-reader/internal/model"
	"github.com/civitas/civitas-reader/internal/query"
	"github.com/civitas/civitas-reader/internal/reconcile"
)

// Search presents search results, or the popular listing while the term is blank
type Search struct {
	presenter[[]model.CatalogItem]

	mu    sync.Mutex
	query model.Query
}

// NewSearch creates the search presenter
func NewSearch(fetcher catalog.Fetcher, conn Connectivity, logger *zap.Logger) *Search {
	rec := reconcile.ForItems("search", func(ctx context.Context, q model.Query) ([]model.CatalogItem, error) {
		return fetcher.Fetch(ctx, query.Resolve(query.SurfaceSearch, q))
	}, logger)

	s := &Search{query: query.MustBuild("", "", "")}
	s.attach(rec, conn)
	return s
}

// Load requests results for the current term
func (s *Search) Load(ctx context.Context) {
	s.mu.Lock()
	q := s.query
	s.mu.Unlock()
	s.rec.Request(ctx, q)
}

// SetTerm normalizes term and requests its results
func (s *Search) SetTerm(ctx context.Context, term string) error {
	q, err := query.Build("", "", term)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	s.mu.Lock()
	s.query = q
	s.mu.Unlock()

	s.rec.Request(ctx, q)
	return nil
}

// Term returns the normalized current term
func (s *Search) Term() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query.SearchTerm
}

// Showing returns the listing the current term selects
func (s *Search) Showing() query.RouteKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.Resolve(query.SurfaceSearch, s.query).Kind
}
