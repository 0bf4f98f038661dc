package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict, e.g. an order that
	// is already paid or a webhook event id that was already recorded.
	ErrAlreadyExists = errors.New("already exists")
)
