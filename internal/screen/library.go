package screen

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/civitas/civitas-reader/internal/catalog"
	"github.com/civitas/civitas-reader/internal/layout"
	"github.com/civitas/civitas-reader/internal/logging"
	"github.com/civitas/civitas-reader/internal/model"
	"github.com/civitas/civitas-reader/internal/query"
	"github.com/civitas/civitas-reader/internal/reconcile"
)

// ViewMode selects how a listing is laid out
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Library presents the full catalog filtered by category and sorted
type Library struct {
	presenter[[]model.CatalogItem]

	fetcher catalog.Fetcher
	conn    Connectivity
	logger  *zap.Logger

	// reqMu orders query changes with the requests they issue
	reqMu sync.Mutex

	mu         sync.Mutex
	categories []model.Category
	loaded     bool
	query      model.Query
	view       ViewMode
}

// NewLibrary creates the library presenter. It starts on all categories
// sorted by title.
func NewLibrary(fetcher catalog.Fetcher, conn Connectivity, grid bool, logger *zap.Logger) *Library {
	rec := reconcile.ForItems("library", func(ctx context.Context, q model.Query) ([]model.CatalogItem, error) {
		return fetcher.Fetch(ctx, query.Resolve(query.SurfaceLibrary, q))
	}, logger)

	view := ViewList
	if grid {
		view = ViewGrid
	}
	l := &Library{
		fetcher:    fetcher,
		conn:       conn,
		logger:     logging.OrNop(logger).Named("library"),
		categories: model.CategoryOptions(nil),
		query:      query.MustBuild("", "", ""),
		view:       view,
	}
	l.attach(rec, conn)
	return l
}

// Load fetches the category options on first use and requests the listing.
// A failed category load keeps the "All Categories" option and is retried on
// the next Load or LoadCategories.
func (l *Library) Load(ctx context.Context) {
	l.LoadCategories(ctx)
	_ = l.update(ctx, func(cur model.Query) (model.Query, error) { return cur, nil })
}

// update derives the next query from the current one and requests it.
// Requests go out in the order the query changes.
func (l *Library) update(ctx context.Context, next func(cur model.Query) (model.Query, error)) error {
	l.reqMu.Lock()
	defer l.reqMu.Unlock()

	l.mu.Lock()
	q, err := next(l.query)
	if err != nil {
		l.mu.Unlock()
		return err
	}
	l.query = q
	l.mu.Unlock()

	l.rec.Request(ctx, q)
	return nil
}

// LoadCategories fetches the server categories unless they are already
// loaded or the monitor reports offline. It reports whether the options
// changed.
func (l *Library) LoadCategories(ctx context.Context) bool {
	l.mu.Lock()
	loaded := l.loaded
	l.mu.Unlock()
	if loaded || (l.conn != nil && !l.conn.Online()) {
		return false
	}

	server, err := l.fetcher.Categories(ctx)
	if err != nil {
		l.logger.Warn("category options unavailable", zap.String("kind", catalog.KindOf(err).String()), zap.Error(err))
		return false
	}

	l.mu.Lock()
	l.categories = model.CategoryOptions(server)
	l.loaded = true
	l.mu.Unlock()
	return true
}

// Categories returns the selectable categories, "All Categories" first
func (l *Library) Categories() []model.Category {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Category(nil), l.categories...)
}

// SelectCategory switches the category filter and re-requests
func (l *Library) SelectCategory(ctx context.Context, id model.ID) error {
	err := l.update(ctx, func(cur model.Query) (model.Query, error) {
		return query.Build(id.String(), cur.Sort.String(), "")
	})
	if err != nil {
		return fmt.Errorf("select category: %w", err)
	}
	return nil
}

// SelectSort switches the sort order and re-requests
func (l *Library) SelectSort(ctx context.Context, code string) error {
	err := l.update(ctx, func(cur model.Query) (model.Query, error) {
		return query.Build(cur.Category.String(), code, "")
	})
	if err != nil {
		return fmt.Errorf("select sort: %w", err)
	}
	return nil
}

// Query returns the current library query
func (l *Library) Query() model.Query {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// View returns the current view mode
func (l *Library) View() ViewMode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.view
}

// ToggleView switches between grid and list and returns the new mode
func (l *Library) ToggleView() ViewMode {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.view == ViewGrid {
		l.view = ViewList
	} else {
		l.view = ViewGrid
	}
	return l.view
}

// Placement lays out the current result for width
func (l *Library) Placement(width float32, bp layout.Breakpoints) layout.Placement {
	n := len(l.rec.State().Result)
	if l.View() == ViewList {
		return layout.ComputeList(n)
	}
	return layout.Compute(n, width, bp)
}
