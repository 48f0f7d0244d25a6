// Package docstore is a small document database on top of SQLite. Documents
// are JSON objects grouped by collection path; the store assigns ids, merges
// partial updates, runs multi-document transactions and pushes fresh
// snapshots to subscribers after every committed write.
package docstore

import (
	"context"
	"errors"
	"path"
)

// ErrNotFound is returned when a document id does not exist in its collection.
var ErrNotFound = errors.New("document not found")

// Document is a JSON object. Nested values follow encoding/json decoding rules
// (numbers are float64, objects are map[string]any).
type Document map[string]any

// Snapshot is a document together with its id.
type Snapshot struct {
	ID   string
	Data Document
}

// Tx is the set of document operations available both directly on a Store
// and inside a transaction.
type Tx interface {
	Create(ctx context.Context, collection string, doc Document) (string, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Update(ctx context.Context, collection, id string, patch Document) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, collection, orderBy string) ([]Snapshot, error)
}

// Store is the document store contract consumed by the shopping service.
type Store interface {
	Tx

	// Subscribe delivers the current snapshot of collection and then a new
	// one after every committed write touching it. The returned function
	// releases the subscription and may be called more than once.
	Subscribe(ctx context.Context, collection, orderBy string, onSnapshot func([]Snapshot), onError func(error)) func()

	// RunInTx runs fn atomically. Subscribers are only notified if fn
	// returns nil and the commit succeeds.
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
}

// Path joins the tenant namespace and a sub-collection name, e.g.
// Path("shared-shoplisl-user", "lists") == "users/shared-shoplisl-user/lists".
func Path(tenant, name string) string {
	return path.Join("users", tenant, name)
}
