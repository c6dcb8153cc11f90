// Package repositories holds sentinels shared by storage backends and
// the handlers that consume them.
package repositories

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrNotImplemented = errors.New("not implemented")
)
