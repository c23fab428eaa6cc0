package ui

import (
	"context"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/civitas/civitas-reader/internal/layout"
	"github.com/civitas/civitas-reader/internal/model"
)

// CardStyle selects how an ItemCard is drawn
type CardStyle int

const (
	CardGrid CardStyle = iota // cover on top, title below
	CardList                  // cover on the left, title and authors beside it
)

// ItemCard shows one catalog item and opens it when tapped
type ItemCard struct {
	widget.BaseWidget

	item   model.CatalogItem
	style  CardStyle
	covers *CoverLoader

	// UI components
	cover      *canvas.Image
	background *canvas.Rectangle
	title      *widget.Label
	authors    *widget.Label

	onTapped func(model.CatalogItem)
}

// NewItemCard creates a card for item. covers may be nil, in which case a
// placeholder icon is shown.
func NewItemCard(item model.CatalogItem, style CardStyle, covers *CoverLoader, onTapped func(model.CatalogItem)) *ItemCard {
	c := &ItemCard{
		style:    style,
		covers:   covers,
		onTapped: onTapped,
	}
	c.ExtendBaseWidget(c)
	c.createUI()
	c.SetItem(item)
	return c
}

func (c *ItemCard) createUI() {
	c.background = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	c.background.CornerRadius = theme.InputRadiusSize()

	c.cover = canvas.NewImageFromResource(theme.FileImageIcon())
	c.cover.FillMode = canvas.ImageFillContain

	c.title = widget.NewLabel("")
	c.title.TextStyle = fyne.TextStyle{Bold: true}
	c.title.Truncation = fyne.TextTruncateEllipsis

	c.authors = widget.NewLabel("")
	c.authors.Truncation = fyne.TextTruncateEllipsis
	c.authors.Importance = widget.LowImportance
}

// SetItem replaces the shown item
func (c *ItemCard) SetItem(item model.CatalogItem) {
	c.item = item
	c.title.SetText(item.GetDisplayName())
	c.authors.SetText(strings.Join(item.AuthorNames(), MiddleDotSeparator))

	c.cover.Resource = theme.FileImageIcon()
	c.cover.Refresh()
	if c.covers == nil || item.Cover == "" {
		return
	}
	id := item.ID
	c.covers.Load(context.Background(), item.Cover, func(res fyne.Resource) {
		if c.item.ID != id {
			return
		}
		c.cover.Resource = res
		c.cover.Refresh()
	})
}

// Item returns the shown item
func (c *ItemCard) Item() model.CatalogItem {
	return c.item
}

// Tapped opens the item
func (c *ItemCard) Tapped(*fyne.PointEvent) {
	if c.onTapped != nil {
		c.onTapped(c.item)
	}
}

// CreateRenderer creates the widget renderer
func (c *ItemCard) CreateRenderer() fyne.WidgetRenderer {
	r := &itemCardRenderer{card: c}
	r.createLayout()
	return r
}

// itemCardRenderer renders the item card widget
type itemCardRenderer struct {
	card   *ItemCard
	layout *fyne.Container
}

// Layout arranges the components
func (r *itemCardRenderer) Layout(size fyne.Size) {
	r.card.background.Resize(size)
	r.layout.Resize(size)
}

// MinSize returns the minimum size
func (r *itemCardRenderer) MinSize() fyne.Size {
	min := r.layout.MinSize()
	if r.card.style == CardList {
		return min.Max(fyne.NewSize(CardMinWidth, ListRowMinHeight))
	}
	_, coverH := layout.CellSize(CardMinWidth, 1, 0, layout.DefaultCoverAspect)
	return min.Max(fyne.NewSize(CardMinWidth, coverH+CardTitleHeight))
}

// Refresh refreshes the renderer
func (r *itemCardRenderer) Refresh() {
	r.card.background.FillColor = theme.Color(theme.ColorNameInputBackground)
	r.card.background.Refresh()
	r.layout.Refresh()
}

// Objects returns the container objects
func (r *itemCardRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.card.background, r.layout}
}

// Destroy cleans up the renderer
func (r *itemCardRenderer) Destroy() {}

func (r *itemCardRenderer) createLayout() {
	c := r.card
	text := container.NewVBox(c.title, c.authors)

	if c.style == CardList {
		c.cover.SetMinSize(fyne.NewSize(ListCoverWidth, ListCoverWidth*layout.DefaultCoverAspect))
		r.layout = container.NewBorder(nil, nil, c.cover, nil, text)
		return
	}

	w, h := layout.CellSize(CardMinWidth, 1, 0, layout.DefaultCoverAspect)
	c.cover.SetMinSize(fyne.NewSize(w, h))
	r.layout = container.NewBorder(nil, text, nil, nil, c.cover)
}

// newFillerSlot returns an invisible cell that pads the last grid row
func newFillerSlot() fyne.CanvasObject {
	rect := canvas.NewRectangle(color.Transparent)
	rect.SetMinSize(fyne.NewSize(CardMinWidth, 0))
	return rect
}
