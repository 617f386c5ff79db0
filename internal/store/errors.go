package store

import "errors"

// Sentinel errors returned by the generic entity operations.
// Entity-specific sentinels (ErrProductNotFound, ErrServerNotFound)
// live next to their operations.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
)
