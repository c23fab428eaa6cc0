package model

// Package model defines domain data structures used across the app: catalog
// items, categories, sort modes, queries and fetch status enums. Values are
// immutable once received from the API; a new fetch replaces the whole set.
