package layout

// Package layout computes responsive grid placement for catalog listings:
// column count from the available width, filler slots that keep the last
// row aligned, and cell sizing for cover images.
