package database

import (
	"context"
	"errors"
	"time"
)

// ErrDocumentNotFound is returned by GetOne and Update for a missing document.
var ErrDocumentNotFound = errors.New("document not found")

// Document is a raw stored document.
type Document struct {
	ID   string
	Data map[string]any
}

// Filter is an equality filter on a single field. The zero Filter matches
// every document in the collection.
type Filter struct {
	Field string
	Value any
}

// SnapshotFunc receives the full result set of a live query each time it
// changes. ctx is cancelled when the subscription is.
type SnapshotFunc func(ctx context.Context, docs []Document)

// DocumentStore is the remote document database addressed by
// (collection, document id).
type DocumentStore interface {
	// GetAll reads every document in a collection.
	GetAll(ctx context.Context, collection string) ([]Document, error)
	// Find reads the documents of a collection matching filter.
	Find(ctx context.Context, collection string, filter Filter) ([]Document, error)
	// GetOne reads one document, or returns ErrDocumentNotFound.
	GetOne(ctx context.Context, collection, id string) (*Document, error)
	// Create writes a new document and returns its store-assigned id.
	Create(ctx context.Context, collection string, fields map[string]any) (string, error)
	// Set writes a document under a caller-chosen id, replacing any existing one.
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	// Update merges fields into an existing document, or returns ErrDocumentNotFound.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
	// Subscribe starts a live query; fn gets the initial result set and every
	// later change until the returned Subscription is cancelled.
	Subscribe(ctx context.Context, collection string, filter Filter, fn SnapshotFunc) (*Subscription, error)
	// Ping checks connectivity.
	Ping(ctx context.Context) error
	Close() error
}

// withTimeout bounds ctx by timeout unless it already carries a deadline.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func copyFields(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
