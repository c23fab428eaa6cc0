package catalog

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/civitas/civitas-reader/internal/model"
)

// maxSectionFetches bounds concurrent per-category requests of the home feed
const maxSectionFetches = 4

// FetchHome assembles the home feed. Highlight, featured, latest and the
// category list are required; any of them failing fails the feed. Each
// category row is then loaded by release date, deduped and capped. A failed
// row is kept empty and logged.
func (c *Client) FetchHome(ctx context.Context, sectionCap int) (model.HomeFeed, error) {
	if sectionCap <= 0 {
		sectionCap = model.DefaultSectionCap
	}

	var (
		feed       model.HomeFeed
		categories []model.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		item, err := c.Highlight(gctx)
		feed.Highlight = item
		return err
	})
	g.Go(func() error {
		items, err := c.Featured(gctx)
		feed.Featured = items
		return err
	})
	g.Go(func() error {
		items, err := c.Latest(gctx)
		feed.Latest = items
		return err
	})
	g.Go(func() error {
		list, err := c.Categories(gctx)
		categories = list
		return err
	})
	if err := g.Wait(); err != nil {
		return model.HomeFeed{}, err
	}

	rows := make([]model.Category, 0, len(categories))
	for _, cat := range categories {
		if cat.ID == "" || cat.IsAll() {
			continue
		}
		rows = append(rows, cat)
	}

	feed.Sections = make([]model.CategorySection, len(rows))
	var sections errgroup.Group
	sections.SetLimit(maxSectionFetches)
	for i, cat := range rows {
		sections.Go(func() error {
			items, err := c.Items(ctx, cat.ID, model.SortByReleaseDate)
			if err != nil {
				c.logger.Warn("home section unavailable", zap.String("category", cat.ID.String()), zap.Error(err))
				items = nil
			}
			feed.Sections[i] = model.NewCategorySection(cat, items, sectionCap)
			return nil
		})
	}
	_ = sections.Wait()

	if err := ctx.Err(); err != nil {
		return model.HomeFeed{}, networkError("home", err)
	}
	return feed, nil
}
