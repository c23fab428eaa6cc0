package config

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"

	"github.com/civitas/civitas-reader/internal/layout"
	"github.com/civitas/civitas-reader/internal/model"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL       = "api_base_url"
	KeyBreakpointMedium = "breakpoint_medium"
	KeyBreakpointWide   = "breakpoint_wide"
	KeyRequestTimeout   = "request_timeout_seconds"
	KeyProbeInterval    = "probe_interval_seconds"
	KeySectionCap       = "home_section_cap"
	KeyGridView         = "grid_view"
	KeyLanguage         = "app_language"
)

// Default values
const (
	DefaultAPIBaseURL     = "http://localhost:8000/api"
	DefaultRequestTimeout = 10
	DefaultProbeInterval  = 10
	DefaultSectionCap     = model.DefaultSectionCap
	DefaultGridView       = true
	DefaultLanguage       = "system"
)

// Limits
const (
	MaxRequestTimeout = 60
	MaxProbeInterval  = 300
	MaxSectionCap     = 20
)

// Settings manages application configuration
type Settings struct {
	app      fyne.App
	defaults Environment
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app, defaults: Environment{APIBaseURL: DefaultAPIBaseURL}}
}

// NewSettingsWithDefaults creates a settings manager whose first-run values
// come from env
func NewSettingsWithDefaults(app fyne.App, env Environment) *Settings {
	if strings.TrimSpace(env.APIBaseURL) == "" {
		env.APIBaseURL = DefaultAPIBaseURL
	}
	return &Settings{app: app, defaults: env}
}

// GetAPIBaseURL returns the catalog API base URL
func (s *Settings) GetAPIBaseURL() string {
	base := strings.TrimSpace(s.app.Preferences().String(KeyAPIBaseURL))
	if base == "" {
		s.SetAPIBaseURL(s.defaults.APIBaseURL)
		return strings.TrimRight(s.defaults.APIBaseURL, "/")
	}
	return base
}

// SetAPIBaseURL sets the catalog API base URL
func (s *Settings) SetAPIBaseURL(base string) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = s.defaults.APIBaseURL
	}
	s.app.Preferences().SetString(KeyAPIBaseURL, base)
}

// GetBreakpoints returns the grid breakpoints
func (s *Settings) GetBreakpoints() layout.Breakpoints {
	bp := layout.Breakpoints{
		Medium: float32(s.app.Preferences().Float(KeyBreakpointMedium)),
		Wide:   float32(s.app.Preferences().Float(KeyBreakpointWide)),
	}
	if !bp.Valid() {
		bp = layout.DefaultBreakpoints()
		s.SetBreakpoints(bp)
	}
	return bp
}

// SetBreakpoints sets the grid breakpoints. Invalid pairs reset to defaults.
func (s *Settings) SetBreakpoints(bp layout.Breakpoints) {
	if !bp.Valid() {
		bp = layout.DefaultBreakpoints()
	}
	s.app.Preferences().SetFloat(KeyBreakpointMedium, float64(bp.Medium))
	s.app.Preferences().SetFloat(KeyBreakpointWide, float64(bp.Wide))
}

// GetRequestTimeout returns the catalog request timeout
func (s *Settings) GetRequestTimeout() time.Duration {
	value := s.app.Preferences().Int(KeyRequestTimeout)
	if value <= 0 {
		s.SetRequestTimeout(DefaultRequestTimeout)
		value = DefaultRequestTimeout
	}
	return time.Duration(value) * time.Second
}

// SetRequestTimeout sets the request timeout in seconds
func (s *Settings) SetRequestTimeout(seconds int) {
	s.app.Preferences().SetInt(KeyRequestTimeout, clamp(seconds, 1, MaxRequestTimeout))
}

// GetProbeInterval returns the connectivity probe interval
func (s *Settings) GetProbeInterval() time.Duration {
	value := s.app.Preferences().Int(KeyProbeInterval)
	if value <= 0 {
		s.SetProbeInterval(DefaultProbeInterval)
		value = DefaultProbeInterval
	}
	return time.Duration(value) * time.Second
}

// SetProbeInterval sets the probe interval in seconds
func (s *Settings) SetProbeInterval(seconds int) {
	s.app.Preferences().SetInt(KeyProbeInterval, clamp(seconds, 1, MaxProbeInterval))
}

// GetSectionCap returns the number of items per home category row
func (s *Settings) GetSectionCap() int {
	value := s.app.Preferences().Int(KeySectionCap)
	if value <= 0 {
		s.SetSectionCap(DefaultSectionCap)
		return DefaultSectionCap
	}
	return value
}

// SetSectionCap sets the number of items per home category row
func (s *Settings) SetSectionCap(count int) {
	s.app.Preferences().SetInt(KeySectionCap, clamp(count, 1, MaxSectionCap))
}

// GetGridView returns whether the library starts in grid view
func (s *Settings) GetGridView() bool {
	return s.app.Preferences().BoolWithFallback(KeyGridView, DefaultGridView)
}

// SetGridView sets whether the library starts in grid view
func (s *Settings) SetGridView(grid bool) {
	s.app.Preferences().SetBool(KeyGridView, grid)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"pt":     "Português",
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
