package connectivity

// Package connectivity tracks whether the catalog API is reachable. A single
// Monitor owns the online flag; screens subscribe to changes and never write.
