package logging

// Package logging builds the zap logger shared by the app and provides the
// field helpers used to describe catalog requests in log lines.
