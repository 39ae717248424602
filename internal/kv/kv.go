// Package kv provides the key-value persistence backends the task store
// writes its serialized collection to.
package kv

import "errors"

// ErrClosed is returned by operations on a closed backend.
var ErrClosed = errors.New("kv: backend closed")

// Backend is a synchronous string-keyed value store.
// Get reports ok=false when the key has never been written.
type Backend interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Close() error
}
