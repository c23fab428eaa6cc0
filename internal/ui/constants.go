package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconViews = "👁"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Card sizing
const (
	CardMinWidth     float32 = 120
	CardTitleHeight  float32 = 40
	ListRowMinHeight float32 = 72
	ListCoverWidth   float32 = 54

	HomeRowCardWidth float32 = 140
	HighlightHeight  float32 = 220
)

// Cover loading
const (
	CoverFetchTimeout = 15 * time.Second
	CoverMaxBytes     = 4 << 20
	CoverCacheSize    = 256
)

// Delays
const (
	RefreshCooldown = 2 * time.Second
	SearchDebounce  = 250 * time.Millisecond
)
