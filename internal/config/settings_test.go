package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/civitas/civitas-reader/internal/layout"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestAPIBaseURL(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if got := settings.GetAPIBaseURL(); got != DefaultAPIBaseURL {
		t.Errorf("Expected default API URL %s, got %s", DefaultAPIBaseURL, got)
	}

	// Trailing slashes are dropped
	settings.SetAPIBaseURL(" https://catalog.example.org/api/ ")
	if got := settings.GetAPIBaseURL(); got != "https://catalog.example.org/api" {
		t.Errorf("Expected trimmed API URL, got %s", got)
	}

	// Blank resets to default
	settings.SetAPIBaseURL("  ")
	if got := settings.GetAPIBaseURL(); got != DefaultAPIBaseURL {
		t.Errorf("Expected default API URL after reset, got %s", got)
	}
}

func TestAPIBaseURLFromEnvironment(t *testing.T) {
	app := test.NewApp()
	settings := NewSettingsWithDefaults(app, Environment{APIBaseURL: "https://env.example.org/api"})

	if got := settings.GetAPIBaseURL(); got != "https://env.example.org/api" {
		t.Errorf("Expected environment API URL, got %s", got)
	}

	// Stored preference wins over the environment afterwards
	settings.SetAPIBaseURL("https://user.example.org")
	if got := settings.GetAPIBaseURL(); got != "https://user.example.org" {
		t.Errorf("Expected stored API URL, got %s", got)
	}
}

func TestBreakpoints(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetBreakpoints(); got != layout.DefaultBreakpoints() {
		t.Errorf("Expected default breakpoints, got %+v", got)
	}

	settings.SetBreakpoints(layout.Breakpoints{Medium: 600, Wide: 900})
	if got := settings.GetBreakpoints(); got.Medium != 600 || got.Wide != 900 {
		t.Errorf("Expected 600/900, got %+v", got)
	}

	// Unordered pair falls back to defaults
	settings.SetBreakpoints(layout.Breakpoints{Medium: 900, Wide: 600})
	if got := settings.GetBreakpoints(); got != layout.DefaultBreakpoints() {
		t.Errorf("Expected default breakpoints, got %+v", got)
	}
}

func TestRequestTimeout(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetRequestTimeout(); got != DefaultRequestTimeout*time.Second {
		t.Errorf("Expected default timeout, got %v", got)
	}

	settings.SetRequestTimeout(0) // Should be clamped to 1
	if got := settings.GetRequestTimeout(); got != time.Second {
		t.Errorf("Expected timeout clamped to 1s, got %v", got)
	}

	settings.SetRequestTimeout(600) // Should be clamped to max
	if got := settings.GetRequestTimeout(); got != MaxRequestTimeout*time.Second {
		t.Errorf("Expected timeout clamped to max, got %v", got)
	}
}

func TestProbeInterval(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetProbeInterval(); got != DefaultProbeInterval*time.Second {
		t.Errorf("Expected default probe interval, got %v", got)
	}

	settings.SetProbeInterval(30)
	if got := settings.GetProbeInterval(); got != 30*time.Second {
		t.Errorf("Expected 30s, got %v", got)
	}
}

func TestSectionCap(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetSectionCap(); got != DefaultSectionCap {
		t.Errorf("Expected default section cap %d, got %d", DefaultSectionCap, got)
	}

	settings.SetSectionCap(50)
	if got := settings.GetSectionCap(); got != MaxSectionCap {
		t.Errorf("Expected section cap clamped to %d, got %d", MaxSectionCap, got)
	}
}

func TestGridView(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if !settings.GetGridView() {
		t.Error("Grid view should be on by default")
	}

	settings.SetGridView(false)
	if settings.GetGridView() {
		t.Error("Grid view should be off after SetGridView(false)")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("pt")
	if lang := settings.GetLanguage(); lang != "pt" {
		t.Errorf("Expected language pt, got %s", lang)
	}

	options := settings.GetLanguageOptions()
	for _, key := range []string{"system", "en", "pt"} {
		if _, ok := options[key]; !ok {
			t.Errorf("Language option %s should be available", key)
		}
	}
}

func TestLoadEnvironmentDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, t.TempDir())
	t.Setenv("CIVITAS_API_URL", "")
	t.Chdir(t.TempDir())

	env, err := LoadEnvironment()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if env.APIBaseURL != DefaultAPIBaseURL && env.APIBaseURL != "" {
		t.Errorf("Expected default API URL, got %s", env.APIBaseURL)
	}
}

func TestLoadEnvironmentFromEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, t.TempDir())
	t.Setenv("CIVITAS_API_URL", "https://env.example.org/api")
	t.Setenv("CIVITAS_LOG_LEVEL", "debug")

	env, err := LoadEnvironment()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if env.APIBaseURL != "https://env.example.org/api" {
		t.Errorf("Expected env API URL, got %s", env.APIBaseURL)
	}
	if env.LogLevel != "debug" {
		t.Errorf("Expected debug log level, got %s", env.LogLevel)
	}
}

func TestLoadEnvironmentFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "api_url: https://file.example.org/api\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigName+".yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv(EnvConfigPath, dir)
	t.Setenv("CIVITAS_API_URL", "")

	env, err := LoadEnvironment()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if env.APIBaseURL != "https://file.example.org/api" {
		t.Errorf("Expected file API URL, got %s", env.APIBaseURL)
	}
}
