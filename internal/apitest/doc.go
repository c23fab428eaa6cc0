package apitest

// Package apitest serves an in-memory catalog API over httptest for tests of
// the catalog client, connectivity probe and screen presenters.
