package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/civitas/civitas-reader/internal/layout"
	"github.com/civitas/civitas-reader/internal/model"
)

// CategoryRow is one titled, horizontally scrolling row of the home screen
type CategoryRow struct {
	localization *Localization
	covers       *CoverLoader

	title string
	items []model.CatalogItem

	// UI components
	container *fyne.Container
	header    *widget.Label
	moreBtn   *widget.Button
	cards     *fyne.Container

	// Callbacks
	onOpen     func(model.CatalogItem)
	onViewMore func()
}

// NewCategoryRow creates a row titled title. onViewMore may be nil to hide
// the "View more" button.
func NewCategoryRow(title string, items []model.CatalogItem, localization *Localization, covers *CoverLoader,
	onOpen func(model.CatalogItem), onViewMore func()) *CategoryRow {
	cr := &CategoryRow{
		localization: localization,
		covers:       covers,
		title:        title,
		items:        items,
		onOpen:       onOpen,
		onViewMore:   onViewMore,
	}

	cr.createUI()
	return cr
}

// createUI creates the user interface for the row
func (cr *CategoryRow) createUI() {
	cr.header = widget.NewLabelWithStyle(cr.title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	cr.header.SizeName = theme.SizeNameSubHeadingText

	cr.moreBtn = widget.NewButton(cr.localization.GetText(KeyViewMore), func() {
		if cr.onViewMore != nil {
			cr.onViewMore()
		}
	})
	cr.moreBtn.Importance = widget.LowImportance
	if cr.onViewMore == nil {
		cr.moreBtn.Hide()
	}

	cr.cards = container.NewHBox()
	for _, item := range cr.items {
		card := NewItemCard(item, CardGrid, cr.covers, cr.onOpen)
		cr.cards.Add(container.NewGridWrap(cardSize(), card))
	}

	headerRow := container.NewBorder(nil, nil, nil, cr.moreBtn, cr.header)
	cr.container = container.NewVBox(headerRow, container.NewHScroll(cr.cards))
}

// Container returns the row container
func (cr *CategoryRow) Container() *fyne.Container {
	return cr.container
}

// Len returns the number of cards in the row
func (cr *CategoryRow) Len() int {
	return len(cr.cards.Objects)
}

// cardSize is the fixed size of a home row card
func cardSize() fyne.Size {
	w, h := layout.CellSize(HomeRowCardWidth, 1, 0, layout.DefaultCoverAspect)
	return fyne.NewSize(w, h+CardTitleHeight)
}
