package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	fynelayout "fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/civitas/civitas-reader/internal/layout"
	"github.com/civitas/civitas-reader/internal/model"
	"github.com/civitas/civitas-reader/internal/reconcile"
)

// widthTracker fills its objects to the container size and reports width
// changes
type widthTracker struct {
	onWidth func(float32)
	width   float32
}

func (t *widthTracker) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
	if size.Width != t.width {
		t.width = size.Width
		if t.onWidth != nil {
			t.onWidth(size.Width)
		}
	}
}

func (t *widthTracker) MinSize(objects []fyne.CanvasObject) fyne.Size {
	min := fyne.NewSize(0, 0)
	for _, o := range objects {
		min = min.Max(o.MinSize())
	}
	return min
}

// ListingView renders an item listing presentation as a responsive grid or
// a single-column list
type ListingView struct {
	localization *Localization
	covers       *CoverLoader
	breakpoints  func() layout.Breakpoints
	onOpen       func(model.CatalogItem)

	items     []model.CatalogItem
	shown     model.Query
	style     CardStyle
	width     float32
	placement layout.Placement

	// UI components
	body    *fyne.Container
	scroll  *container.Scroll
	message *widget.Label
	spinner *widget.ProgressBarInfinite
	busy    *widget.ProgressBarInfinite
	content *fyne.Container
}

// NewListingView creates an empty listing view
func NewListingView(localization *Localization, covers *CoverLoader, breakpoints func() layout.Breakpoints, onOpen func(model.CatalogItem)) *ListingView {
	v := &ListingView{
		localization: localization,
		covers:       covers,
		breakpoints:  breakpoints,
		onOpen:       onOpen,
		style:        CardGrid,
	}
	v.createUI()
	return v
}

func (v *ListingView) createUI() {
	v.body = container.NewGridWithColumns(layout.NarrowColumns)
	v.scroll = container.NewVScroll(v.body)

	v.message = widget.NewLabel("")
	v.message.Alignment = fyne.TextAlignCenter
	v.message.Wrapping = fyne.TextWrapWord
	v.message.Hide()

	v.spinner = widget.NewProgressBarInfinite()
	v.spinner.Hide()

	v.busy = widget.NewProgressBarInfinite()
	v.busy.Hide()

	tracked := container.New(&widthTracker{onWidth: v.setWidth}, v.scroll)
	v.content = container.NewBorder(v.busy, nil, nil, nil,
		container.NewStack(tracked, container.NewCenter(v.spinner), container.NewCenter(v.message)))
}

// Container returns the root object of the view
func (v *ListingView) Container() fyne.CanvasObject {
	return v.content
}

// SetStyle switches between grid and list cards
func (v *ListingView) SetStyle(style CardStyle) {
	if v.style == style {
		return
	}
	v.style = style
	v.rebuild()
}

// Placement returns the last computed placement
func (v *ListingView) Placement() layout.Placement {
	return v.placement
}

// Render shows p. It must run on the UI goroutine.
func (v *ListingView) Render(p reconcile.Presentation[[]model.CatalogItem]) {
	switch p.Kind {
	case reconcile.KindContent:
		v.items = p.State.Result
		v.rebuild()
		if p.State.Query != v.shown {
			v.shown = p.State.Query
			v.scroll.ScrollToTop()
		}
		v.message.Hide()
		v.spinner.Hide()
		v.spinner.Stop()
		v.scroll.Show()
	case reconcile.KindSpinner:
		v.message.Hide()
		v.scroll.Hide()
		v.spinner.Show()
		v.spinner.Start()
	default:
		v.items = nil
		v.rebuild()
		v.message.SetText(v.localization.GetText(p.MessageKey))
		v.spinner.Hide()
		v.spinner.Stop()
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

func (v *ListingView) setWidth(width float32) {
	v.width = width
	if v.style == CardList {
		return
	}
	if v.breakpointsNow().Columns(width) != v.placement.Columns {
		v.rebuild()
	}
}

func (v *ListingView) breakpointsNow() layout.Breakpoints {
	if v.breakpoints == nil {
		return layout.DefaultBreakpoints()
	}
	return v.breakpoints()
}

func (v *ListingView) rebuild() {
	if v.style == CardList {
		v.placement = layout.ComputeList(len(v.items))
	} else {
		v.placement = layout.Compute(len(v.items), v.width, v.breakpointsNow())
	}

	objects := make([]fyne.CanvasObject, 0, len(v.placement.Slots))
	for _, slot := range v.placement.Slots {
		if slot.Filler {
			objects = append(objects, newFillerSlot())
			continue
		}
		objects = append(objects, NewItemCard(v.items[slot.Index], v.style, v.covers, v.onOpen))
	}

	v.body.Layout = fynelayout.NewGridLayoutWithColumns(v.placement.Columns)
	v.body.Objects = objects
	v.body.Refresh()
}
