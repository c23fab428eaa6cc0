package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/civitas/civitas-reader/internal/model"
	"github.com/civitas/civitas-reader/internal/reconcile"
)

// HomeView renders the home feed: highlight, featured, latest and one row
// per category
type HomeView struct {
	localization *Localization
	covers       *CoverLoader

	onOpen     func(model.CatalogItem)
	onCategory func(model.Category)

	rows []*CategoryRow

	// UI components
	feed    *fyne.Container
	scroll  *container.Scroll
	message *widget.Label
	spinner *widget.ProgressBarInfinite
	busy    *widget.ProgressBarInfinite
	content *fyne.Container
}

// NewHomeView creates an empty home view
func NewHomeView(localization *Localization, covers *CoverLoader, onOpen func(model.CatalogItem), onCategory func(model.Category)) *HomeView {
	v := &HomeView{
		localization: localization,
		covers:       covers,
		onOpen:       onOpen,
		onCategory:   onCategory,
	}

	v.feed = container.NewVBox()
	v.scroll = container.NewVScroll(v.feed)
	v.message = widget.NewLabel("")
	v.message.Alignment = fyne.TextAlignCenter
	v.message.Wrapping = fyne.TextWrapWord
	v.message.Hide()
	v.spinner = widget.NewProgressBarInfinite()
	v.spinner.Hide()
	v.busy = widget.NewProgressBarInfinite()
	v.busy.Hide()

	v.content = container.NewBorder(v.busy, nil, nil, nil,
		container.NewStack(v.scroll, container.NewCenter(v.spinner), container.NewCenter(v.message)))
	return v
}

// Container returns the root object of the view
func (v *HomeView) Container() fyne.CanvasObject {
	return v.content
}

// Rows returns the rows currently shown
func (v *HomeView) Rows() []*CategoryRow {
	return v.rows
}

// Render shows p. It must run on the UI goroutine.
func (v *HomeView) Render(p reconcile.Presentation[model.HomeFeed]) {
	switch p.Kind {
	case reconcile.KindContent:
		v.build(p.State.Result)
		v.message.Hide()
		v.spinner.Stop()
		v.spinner.Hide()
		v.scroll.Show()
	case reconcile.KindSpinner:
		v.message.Hide()
		v.scroll.Hide()
		v.spinner.Show()
		v.spinner.Start()
	default:
		v.build(model.HomeFeed{})
		v.message.SetText(v.localization.GetText(p.MessageKey))
		v.spinner.Stop()
		v.spinner.Hide()
		v.scroll.Hide()
		v.message.Show()
	}

	if p.Refreshing() {
		v.busy.Show()
		v.busy.Start()
	} else {
		v.busy.Stop()
		v.busy.Hide()
	}
}

func (v *HomeView) build(feed model.HomeFeed) {
	v.rows = v.rows[:0]
	objects := make([]fyne.CanvasObject, 0, len(feed.Sections)+3)

	if feed.HasHighlight() {
		objects = append(objects, v.highlight(*feed.Highlight))
	}
	if len(feed.Featured) > 0 {
		objects = append(objects, v.addRow(v.localization.GetText(KeyFeatured), feed.Featured, nil))
	}
	if len(feed.Latest) > 0 {
		objects = append(objects, v.addRow(v.localization.GetText(KeyLatest), feed.Latest, nil))
	}
	for _, section := range feed.Sections {
		if section.IsEmpty() {
			continue
		}
		category := section.Category
		objects = append(objects, v.addRow(category.Label, section.Items, func() {
			if v.onCategory != nil {
				v.onCategory(category)
			}
		}))
	}

	v.feed.Objects = objects
	v.feed.Refresh()
}

func (v *HomeView) addRow(title string, items []model.CatalogItem, onViewMore func()) fyne.CanvasObject {
	row := NewCategoryRow(title, items, v.localization, v.covers, v.onOpen, onViewMore)
	v.rows = append(v.rows, row)
	return row.Container()
}

func (v *HomeView) highlight(item model.CatalogItem) fyne.CanvasObject {
	header := widget.NewLabelWithStyle(v.localization.GetText(KeyHighlight), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	card := NewItemCard(item, CardList, v.covers, v.onOpen)
	return container.NewVBox(header, container.NewGridWrap(fyne.NewSize(HighlightHeight*2, HighlightHeight/2), card))
}
