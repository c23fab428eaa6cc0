package screen

// Package screen holds one presenter per browsing surface. A presenter owns
// the reconciler of its screen, follows the connectivity monitor and turns
// user input into catalog queries.
