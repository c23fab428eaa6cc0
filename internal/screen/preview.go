package screen

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/civitas/civitas-reader/internal/catalog"
	"github.com/civitas/civitas-reader/internal/logging"
	"github.com/civitas/civitas-reader/internal/model"
	"github.com/civitas/civitas-reader/internal/platform"
)

// Detail is an item prepared for the preview screen
type Detail struct {
	Item        model.CatalogItem
	Title       string
	Description string // plain text
	Authors     []string
	Tags        []string
	Views       int64
	Viewer      platform.ViewerTarget
	CanRead     bool
}

// Preview prepares items for display and hands content to the viewer
type Preview struct {
	fetcher catalog.Fetcher
	client  *http.Client
	logger  *zap.Logger
}

// NewPreview creates the preview presenter. client is used to check the
// viewer URL; nil uses a default client.
func NewPreview(fetcher catalog.Fetcher, client *http.Client, logger *zap.Logger) *Preview {
	return &Preview{
		fetcher: fetcher,
		client:  client,
		logger:  logging.OrNop(logger).Named("preview"),
	}
}

// Open records a view of item and returns its detail
func (p *Preview) Open(item model.CatalogItem) Detail {
	p.fetcher.RecordView(item)

	d := Detail{
		Item:        item,
		Title:       item.GetDisplayName(),
		Description: platform.PlainText(item.Description),
		Authors:     item.AuthorNames(),
		Tags:        tagNames(item.Tags),
		Views:       item.Views,
	}

	target, err := platform.ViewerURLs(item.URL)
	if err != nil {
		p.logger.Debug("item cannot be read", zap.String("item_id", item.ID.String()), zap.Error(err))
		return d
	}
	d.Viewer = target
	d.CanRead = true
	return d
}

// ViewerURL resolves the URL to open for d
func (p *Preview) ViewerURL(ctx context.Context, d Detail) (string, error) {
	if !d.CanRead {
		return "", platform.ErrNoContent
	}
	return d.Viewer.Resolve(ctx, p.client), nil
}

func tagNames(tags []model.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		if n := strings.TrimSpace(t.Name); n != "" {
			names = append(names, n)
		}
	}
	return names
}
