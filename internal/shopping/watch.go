package shopping

import (
	"context"

	"github.com/dukerupert/shoplisl/internal/docstore"
	"github.com/dukerupert/shoplisl/internal/model"
)

// WatchArticles calls fn with the catalog, ordered by name, now and after
// every change. The returned function stops the feed.
func (s *Service) WatchArticles(ctx context.Context, fn func([]model.Article), onError func(error)) func() {
	return s.store.Subscribe(ctx, s.articles(), "name", func(snaps []docstore.Snapshot) {
		articles := make([]model.Article, 0, len(snaps))
		for _, snap := range snaps {
			articles = append(articles, decodeArticle(snap.ID, snap.Data))
		}
		fn(articles)
	}, s.watchError("articles", onError))
}

// WatchLists is WatchArticles for lists.
func (s *Service) WatchLists(ctx context.Context, fn func([]model.ShoppingList), onError func(error)) func() {
	return s.store.Subscribe(ctx, s.lists(), "name", func(snaps []docstore.Snapshot) {
		lists := make([]model.ShoppingList, 0, len(snaps))
		for _, snap := range snaps {
			lists = append(lists, decodeList(snap.ID, snap.Data))
		}
		fn(lists)
	}, s.watchError("lists", onError))
}

func (s *Service) watchError(feed string, onError func(error)) func(error) {
	return func(err error) {
		err = storeErr("watch_"+feed, err)
		s.metrics.RecordOperation("watch_"+feed, resultLabel(err))
		if onError != nil {
			onError(err)
		}
	}
}
