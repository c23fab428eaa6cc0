package platform

// Package platform contains OS/platform integration: handing catalog content
// to the system viewer and turning API-provided HTML into display text.
