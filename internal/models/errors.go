package models

import "errors"

var (
	// ErrNotFound indicates that no document matches the given identifier.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID indicates a malformed object identifier. It is always
	// detected before any database call.
	ErrInvalidID = errors.New("invalid id format")
)
