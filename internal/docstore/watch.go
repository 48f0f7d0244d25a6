package docstore

import (
	"context"
	"log/slog"
	"sync"
)

// watcher is one live subscription. Notifications coalesce: a pending signal
// means "re-query before the next delivery", so a slow subscriber sees the
// latest state instead of every intermediate one.
type watcher struct {
	collection string
	orderBy    string
	onSnapshot func([]Snapshot)
	onError    func(error)
	signal     chan struct{}
	done       chan struct{}
	once       sync.Once
}

func (w *watcher) stop() {
	w.once.Do(func() { close(w.done) })
}

// registry maintains the set of active watchers.
type registry struct {
	mu       sync.RWMutex
	watchers map[*watcher]struct{}
	store    *SQLStore
	logger   *slog.Logger
}

func newRegistry(store *SQLStore, logger *slog.Logger) *registry {
	return &registry{
		watchers: make(map[*watcher]struct{}),
		store:    store,
		logger:   logger,
	}
}

func (r *registry) add(ctx context.Context, collection, orderBy string, onSnapshot func([]Snapshot), onError func(error)) func() {
	w := &watcher{
		collection: collection,
		orderBy:    orderBy,
		onSnapshot: onSnapshot,
		onError:    onError,
		signal:     make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
	// Initial delivery.
	w.signal <- struct{}{}

	r.mu.Lock()
	r.watchers[w] = struct{}{}
	r.mu.Unlock()

	go r.run(ctx, w)

	return func() {
		r.remove(w)
	}
}

func (r *registry) remove(w *watcher) {
	r.mu.Lock()
	delete(r.watchers, w)
	r.mu.Unlock()
	w.stop()
}

// notify wakes every watcher of collection without blocking the writer.
func (r *registry) notify(collection string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for w := range r.watchers {
		if w.collection != collection {
			continue
		}
		select {
		case w.signal <- struct{}{}:
		default:
			// Already pending
		}
	}
}

// count returns the number of active watchers.
func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.watchers)
}

func (r *registry) run(ctx context.Context, w *watcher) {
	defer r.remove(w)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-w.signal:
		}

		snaps, err := queryDocs(ctx, r.store.db, w.collection, w.orderBy)

		select {
		case <-w.done:
			return
		default:
		}

		if err != nil {
			if ctx.Err() != nil {
				return
			}
			r.logger.Error("watch query failed", "collection", w.collection, "error", err)
			if w.onError != nil {
				w.onError(err)
			}
			continue
		}
		w.onSnapshot(snaps)
	}
}
