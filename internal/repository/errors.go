package repository

import "errors"

var (
	// ErrNotFound is returned when a requested document doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when inserting a document whose key already exists
	ErrDuplicate = errors.New("duplicate key")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
