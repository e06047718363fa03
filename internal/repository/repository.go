// Package repository defines the record store capability: one set of
// interfaces over users, applications, inquiries and the settings singleton,
// with swappable backends (Postgres here, JSON file in filedb).
package repository

import "errors"

// ErrNotFound is returned when an operation references a nonexistent record.
// Updates never insert implicitly.
var ErrNotFound = errors.New("record not found")
