package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrWatershedNotFound indicates the HUC code matched no watershed in
	// the boundary dataset. Callers may fall back to a configured bounding
	// box instead of failing.
	ErrWatershedNotFound = errors.New("watershed not found")

	// ErrEmptyRaster indicates a raster with no bands or no pixels.
	ErrEmptyRaster = errors.New("raster contains no data")

	// ErrNoCredentials indicates Application Default Credentials could not
	// be resolved for the remote service.
	ErrNoCredentials = errors.New("no Google credentials available")
)
