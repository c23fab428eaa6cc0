package screen

import (
	"context"

	"go.uber.org/zap"

	"github.com/civitas/civitas-reader/internal/catalog"
	"github.com/civitas/civitas-reader/internal/model"
	"github.com/civitas/civitas-reader/internal/query"
	"github.com/civitas/civitas-reader/internal/reconcile"
)

// homeQuery is the fixed query of the home screen
var homeQuery = query.MustBuild(model.AllCategoriesID.String(), model.SortByReleaseDate.String(), "")

// Home presents the home feed
type Home struct {
	presenter[model.HomeFeed]
}

// NewHome creates the home presenter. sectionCap bounds each category row.
func NewHome(fetcher catalog.Fetcher, conn Connectivity, sectionCap int, logger *zap.Logger) *Home {
	rec := reconcile.New(func(ctx context.Context, _ model.Query) (model.HomeFeed, error) {
		return fetcher.FetchHome(ctx, sectionCap)
	}, reconcile.Options[model.HomeFeed]{
		Name:    "home",
		IsEmpty: func(f model.HomeFeed) bool { return f.IsEmpty() },
		Logger:  logger,
	})
	h := &Home{}
	h.attach(rec, conn)
	return h
}

// Load requests the feed
func (h *Home) Load(ctx context.Context) {
	h.rec.Request(ctx, homeQuery)
}

// Query returns the home query
func (h *Home) Query() model.Query {
	return homeQuery
}
