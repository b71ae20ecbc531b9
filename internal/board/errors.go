package board

import "errors"

var (
	// ErrUnknownMode indicates a game mode name that has no preset.
	ErrUnknownMode = errors.New("board: unknown game mode")
	// ErrCatalogMismatch indicates a catalog whose total differs from the polygon count.
	ErrCatalogMismatch = errors.New("board: tile catalog does not match polygon count")
	// ErrNegativeCount indicates a catalog entry below zero.
	ErrNegativeCount = errors.New("board: tile count must be non-negative")
	// ErrMismatchedCoordinates indicates x and y coordinate lists of different lengths.
	ErrMismatchedCoordinates = errors.New("board: coordinate lists differ in length")
	// ErrInvalidRows indicates an empty row list or a row without tiles.
	ErrInvalidRows = errors.New("board: row counts must be non-empty and positive")
	// ErrInvalidLikelihood indicates likelihoods that are negative or sum to zero.
	ErrInvalidLikelihood = errors.New("board: tile likelihoods must be non-negative with a positive sum")
)
