// Package store is the document-store boundary. Every entity is owned by the
// backing store; callers hold only transient copies.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrUnavailable = errors.New("store not available")
)

const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpGet    = "get"
	OpList   = "list"
)

// PermissionError is returned when the backend's access control rejects an
// operation. It carries enough of the attempt to diagnose the rule that fired.
type PermissionError struct {
	Path      string      `json:"path"`
	Operation string      `json:"operation"`
	Data      interface{} `json:"requestResourceData,omitempty"`
	Err       error       `json:"-"`
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("missing or insufficient permissions: %s on %s", e.Operation, e.Path)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// IsPermission reports whether err is (or wraps) a PermissionError.
func IsPermission(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

type Query struct {
	Collection string
	OrderBy    string
	Descending bool
	Limit      int
}

// Snapshot is one complete read of a collection query.
type Snapshot struct {
	Collection string
	Size       int
	ReadAt     time.Time
	decode     func(out interface{}) error
}

// Decode fills out, which must be a pointer to a slice.
func (s Snapshot) Decode(out interface{}) error {
	if s.decode == nil {
		return nil
	}
	return s.decode(out)
}

// Store is implemented by MongoStore, SQLStore and MemoryStore.
type Store interface {
	Create(ctx context.Context, collection string, doc interface{}) (string, error)
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, collection, id string) error
	Get(ctx context.Context, collection, id string, out interface{}) error
	List(ctx context.Context, q Query, out interface{}) error
	// Subscribe emits a snapshot immediately and again after every change
	// to the collection. The channel is closed when ctx ends.
	Subscribe(ctx context.Context, q Query) (<-chan Snapshot, error)
	Close(ctx context.Context) error
}

func path(collection, id string) string {
	if id == "" {
		return collection
	}
	return collection + "/" + id
}

// publish replaces any unread snapshot so a slow reader only ever sees the latest.
func publish(ch chan Snapshot, snap Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
