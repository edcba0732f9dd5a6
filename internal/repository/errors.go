package repository

import "errors"

// ErrNotFound is returned when a lookup by id matches no row. The service
// layer translates it into app_errors.ErrNotFound.
var ErrNotFound = errors.New("repository: not found")
