// Package store persists finished outline results.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/dgallion1/docoutline/internal/outline"
)

// ErrNotFound is returned by Get and Delete when no record has the id.
var ErrNotFound = errors.New("outline record not found")

// Record is one processed document.
type Record struct {
	ID          string         `json:"id"`
	File        string         `json:"file"`
	ContentHash string         `json:"content_hash"`
	Result      outline.Result `json:"result"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Store is implemented by every result backend.
type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	// List returns up to limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Record, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
