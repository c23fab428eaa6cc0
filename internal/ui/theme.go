package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// BrandColor is the reader's accent color
var BrandColor = color.RGBA{R: 154, G: 27, B: 47, A: 255}

// Denser than the default theme for the cover grids
const (
	ThemePadding  float32 = 3
	ThemeTextSize float32 = 13
)

// ReaderTheme is the default Fyne theme in the reader's colors, with a denser
// padding and text size for the cover grids
type ReaderTheme struct {
	fyne.Theme
}

// NewReaderTheme creates the application theme
func NewReaderTheme() fyne.Theme {
	return &ReaderTheme{Theme: theme.DefaultTheme()}
}

// Color returns the brand colors and falls back to the default palette
func (t *ReaderTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return BrandColor
	case theme.ColorNameHyperlink:
		if variant == theme.VariantDark {
			return color.RGBA{R: 230, G: 120, B: 135, A: 255}
		}
		return BrandColor
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 193, B: 7, A: 255} // offline banner
	}
	return t.Theme.Color(name, variant)
}

// Size returns the grid's padding and text size
func (t *ReaderTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return ThemePadding
	case theme.SizeNameText:
		return ThemeTextSize
	}
	return t.Theme.Size(name)
}
