package domain

import "errors"

// ErrDuplicate is returned by repositories when a write trips a unique
// index (users.email, products.name). Two racing creates are resolved by
// the database; the second one sees this error.
var ErrDuplicate = errors.New("duplicate unique field")

// ErrNotFound is returned by repository deletes that matched no row.
var ErrNotFound = errors.New("record not found")
