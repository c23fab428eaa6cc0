package ui

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/civitas/civitas-reader/internal/layout"
	"github.com/civitas/civitas-reader/internal/screen"
)

// PreviewView shows the detail of one item with a button to read it
type PreviewView struct {
	detail screen.Detail

	// UI components
	cover       *canvas.Image
	title       *widget.Label
	authors     *widget.Label
	tags        *widget.Label
	views       *widget.Label
	description *widget.Label
	readBtn     *widget.Button
	content     fyne.CanvasObject
}

// NewPreviewView builds the view for d. onRead is called when the reader
// asks to open the content.
func NewPreviewView(d screen.Detail, localization *Localization, covers *CoverLoader, landscape bool, onRead func(screen.Detail)) *PreviewView {
	v := &PreviewView{detail: d}

	v.cover = canvas.NewImageFromResource(theme.FileImageIcon())
	v.cover.FillMode = canvas.ImageFillContain
	w, h := layout.CellSize(HighlightHeight, 1, 0, layout.DefaultCoverAspect)
	v.cover.SetMinSize(fyne.NewSize(w, h))
	if covers != nil && d.Item.Cover != "" {
		covers.Load(context.Background(), d.Item.Cover, func(res fyne.Resource) {
			v.cover.Resource = res
			v.cover.Refresh()
		})
	}

	v.title = widget.NewLabelWithStyle(d.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	v.title.SizeName = theme.SizeNameHeadingText
	v.title.Wrapping = fyne.TextWrapWord

	v.authors = widget.NewLabel(joinOrDash(d.Authors))
	v.tags = widget.NewLabel(joinOrDash(d.Tags))
	v.tags.Importance = widget.LowImportance
	v.views = widget.NewLabel(fmt.Sprintf("%s %d %s", IconViews, d.Views, localization.GetText(KeyViews)))

	v.description = widget.NewLabel(d.Description)
	v.description.Wrapping = fyne.TextWrapWord

	v.readBtn = widget.NewButtonWithIcon(localization.GetText(KeyRead), theme.DocumentIcon(), func() {
		if onRead != nil {
			onRead(v.detail)
		}
	})
	v.readBtn.Importance = widget.HighImportance
	if !d.CanRead {
		v.readBtn.Disable()
	}

	info := container.NewVBox(
		v.title,
		widget.NewForm(
			widget.NewFormItem(localization.GetText(KeyAuthors), v.authors),
			widget.NewFormItem(localization.GetText(KeyTags), v.tags),
		),
		v.views,
		v.readBtn,
	)

	var top fyne.CanvasObject
	if landscape {
		top = container.NewBorder(nil, nil, v.cover, nil, info)
	} else {
		top = container.NewVBox(container.NewCenter(v.cover), info)
	}
	v.content = container.NewVScroll(container.NewVBox(top, widget.NewSeparator(), v.description))
	return v
}

// Container returns the root object of the view
func (v *PreviewView) Container() fyne.CanvasObject {
	return v.content
}

// ReadButton returns the read button
func (v *PreviewView) ReadButton() *widget.Button {
	return v.readBtn
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return DashPlaceholder
	}
	return strings.Join(values, MiddleDotSeparator)
}
