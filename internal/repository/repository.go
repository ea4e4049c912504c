// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) inside this directory.
package repository

import "errors"

// ErrNotFound is returned by repositories when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAnchorNotFound is returned when a placement names an item that is not in
// the playlist.
var ErrAnchorNotFound = errors.New("placement item not found")

// ErrDuplicate is returned when a unique constraint rejects a write.
var ErrDuplicate = errors.New("duplicate record")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Page   int
	Limit  int
	Offset int
}

// NewPageQuery clamps page and limit: a negative page becomes 0, a non-positive limit
// becomes def and a limit above max becomes max.
func NewPageQuery(page, limit, def, max int) PageQuery {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return PageQuery{Page: page, Limit: limit, Offset: page * limit}
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
