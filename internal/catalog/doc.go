package catalog

// Package catalog implements the HTTP client for the catalog API. It issues
// one request per call without retries, maps every failure to the error
// taxonomy in package model, and assembles the home feed aggregate.
