package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLStore implements Store on the documents table.
type SQLStore struct {
	db       *sql.DB
	watchers *registry
	logger   *slog.Logger
	now      func() time.Time
}

func NewSQLStore(db *sql.DB, logger *slog.Logger) *SQLStore {
	s := &SQLStore{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
	s.watchers = newRegistry(s, logger)
	return s
}

func (s *SQLStore) Create(ctx context.Context, collection string, doc Document) (string, error) {
	var id string
	err := s.RunInTx(ctx, func(tx Tx) error {
		var err error
		id, err = tx.Create(ctx, collection, doc)
		return err
	})
	return id, err
}

func (s *SQLStore) Get(ctx context.Context, collection, id string) (Document, error) {
	return getDoc(ctx, s.db, collection, id)
}

func (s *SQLStore) Update(ctx context.Context, collection, id string, patch Document) error {
	return s.RunInTx(ctx, func(tx Tx) error {
		return tx.Update(ctx, collection, id, patch)
	})
}

func (s *SQLStore) Delete(ctx context.Context, collection, id string) error {
	return s.RunInTx(ctx, func(tx Tx) error {
		return tx.Delete(ctx, collection, id)
	})
}

func (s *SQLStore) Query(ctx context.Context, collection, orderBy string) ([]Snapshot, error) {
	return queryDocs(ctx, s.db, collection, orderBy)
}

func (s *SQLStore) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	tx := &txn{q: sqlTx, now: s.now, touched: make(map[string]struct{})}
	if err := fn(tx); err != nil {
		sqlTx.Rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	for collection := range tx.touched {
		s.watchers.notify(collection)
	}
	return nil
}

func (s *SQLStore) Subscribe(ctx context.Context, collection, orderBy string, onSnapshot func([]Snapshot), onError func(error)) func() {
	return s.watchers.add(ctx, collection, orderBy, onSnapshot, onError)
}

// txn runs document operations against a *sql.Tx and records which
// collections were written.
type txn struct {
	q       querier
	now     func() time.Time
	touched map[string]struct{}
}

func (t *txn) Create(ctx context.Context, collection string, doc Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	id := uuid.NewString()
	now := t.now().UTC()
	_, err = t.q.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		collection, id, string(data), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}
	t.touched[collection] = struct{}{}
	return id, nil
}

func (t *txn) Get(ctx context.Context, collection, id string) (Document, error) {
	return getDoc(ctx, t.q, collection, id)
}

func (t *txn) Update(ctx context.Context, collection, id string, patch Document) error {
	doc, err := getDoc(ctx, t.q, collection, id)
	if err != nil {
		return err
	}

	// Top-level merge; a nil value removes the field.
	for k, v := range patch {
		if v == nil {
			delete(doc, k)
			continue
		}
		doc[k] = v
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	_, err = t.q.ExecContext(ctx,
		`UPDATE documents SET data = ?, updated_at = ? WHERE collection = ? AND id = ?`,
		string(data), t.now().UTC(), collection, id,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	t.touched[collection] = struct{}{}
	return nil
}

func (t *txn) Delete(ctx context.Context, collection, id string) error {
	result, err := t.q.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if n, _ := result.RowsAffected(); n > 0 {
		t.touched[collection] = struct{}{}
	}
	return nil
}

func (t *txn) Query(ctx context.Context, collection, orderBy string) ([]Snapshot, error) {
	return queryDocs(ctx, t.q, collection, orderBy)
}

func getDoc(ctx context.Context, q querier, collection, id string) (Document, error) {
	var data string
	err := q.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	doc, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode document %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func queryDocs(ctx context.Context, q querier, collection, orderBy string) ([]Snapshot, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if orderBy == "" {
		rows, err = q.QueryContext(ctx,
			`SELECT id, data FROM documents WHERE collection = ? ORDER BY created_at ASC, id ASC`,
			collection,
		)
	} else {
		if !validField(orderBy) {
			return nil, fmt.Errorf("query documents: invalid order field %q", orderBy)
		}
		rows, err = q.QueryContext(ctx,
			`SELECT id, data FROM documents WHERE collection = ? ORDER BY json_extract(data, ?) ASC, id ASC`,
			collection, "$."+orderBy,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode document %s/%s: %w", collection, id, err)
		}
		snaps = append(snaps, Snapshot{ID: id, Data: doc})
	}
	return snaps, rows.Err()
}

func decode(data string) (Document, error) {
	doc := Document{}
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func validField(name string) bool {
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return name != ""
}

// SubscriberCount returns the number of live subscriptions.
func (s *SQLStore) SubscriberCount() int {
	return s.watchers.count()
}
