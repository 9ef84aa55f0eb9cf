// Package storage defines the synchronous string-keyed store that backs
// carts between reloads.
package storage

import "errors"

// ErrQuotaExceeded is returned by a Set that would push a capacity-limited
// store past its limit.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Storage is a synchronous key-value store. Each call is a single atomic
// operation; there are no transactions spanning several calls.
type Storage interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}
