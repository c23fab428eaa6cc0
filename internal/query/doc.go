package query

// Package query composes canonical catalog queries from the category, sort and
// search axes, and resolves them to the API route a screen should call.
// Everything here is pure; invalid input fails fast and never reaches the
// network.
