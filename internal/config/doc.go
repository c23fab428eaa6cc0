package config

// Package config persists user settings in Fyne preferences and loads
// first-run defaults from CIVITAS_* environment variables or .civitas.yaml.
