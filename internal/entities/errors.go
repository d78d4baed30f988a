package entities

import "errors"

// ErrNotFound is returned by repositories when an identifier does not resolve to a record.
var ErrNotFound = errors.New("record not found")
