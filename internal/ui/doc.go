package ui

// Package ui contains the Fyne user interface of the reader. It renders the
// presentations produced by the screen presenters: home rows, the library and
// category grids, search results and the item preview. All UI strings are
// localized via Localization.
