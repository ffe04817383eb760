package db

import "errors"

var (
	// ErrNotFound is returned by repositories when a referenced document does
	// not exist. Services translate it into their own not-found sentinels.
	ErrNotFound = errors.New("document not found")
	// ErrAlreadyExists is returned when a Create collides with an existing
	// document ID.
	ErrAlreadyExists = errors.New("document already exists")
)
