// Package shopping keeps articles, lists and per-list item state mutually
// consistent. Every operation that reads and then writes runs inside one
// store transaction.
package shopping

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dukerupert/shoplisl/internal/docstore"
	"github.com/dukerupert/shoplisl/internal/matcher"
	"github.com/dukerupert/shoplisl/internal/metrics"
	"github.com/dukerupert/shoplisl/internal/model"
	"github.com/dukerupert/shoplisl/internal/names"
)

type Service struct {
	store   docstore.Store
	tenant  string
	matcher *matcher.Matcher
	logger  *slog.Logger
	metrics *metrics.Collector
	now     func() time.Time
}

// NewService returns a Service scoped to tenant. m is used by SeedList and
// defaults to the built-in alias table; mc may be nil.
func NewService(store docstore.Store, tenant string, m *matcher.Matcher, logger *slog.Logger, mc *metrics.Collector) *Service {
	if m == nil {
		m = matcher.New(matcher.DefaultAliases())
	}
	return &Service{
		store:   store,
		tenant:  tenant,
		matcher: m,
		logger:  logger.With("component", "shopping"),
		metrics: mc,
		now:     time.Now,
	}
}

func (s *Service) articles() string { return docstore.Path(s.tenant, "articles") }
func (s *Service) lists() string    { return docstore.Path(s.tenant, "lists") }

// finish records the outcome of op and converts store failures.
func (s *Service) finish(op string, err error) error {
	err = storeErr(op, err)
	s.metrics.RecordOperation(op, resultLabel(err))
	var unavailable *StoreUnavailableError
	if errors.As(err, &unavailable) {
		s.logger.Error("store operation failed", "op", op, "error", unavailable.Err)
	}
	return err
}

// --- Articles ---

func (s *Service) GetArticle(ctx context.Context, id string) (*model.Article, error) {
	doc, err := s.store.Get(ctx, s.articles(), id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get_article", err)
	}
	a := decodeArticle(id, doc)
	return &a, nil
}

// ListArticles returns the catalog ordered by name.
func (s *Service) ListArticles(ctx context.Context) ([]model.Article, error) {
	articles, err := queryArticles(ctx, s.store, s.articles())
	return articles, storeErr("list_articles", err)
}

func queryArticles(ctx context.Context, q docstore.Tx, collection string) ([]model.Article, error) {
	snaps, err := q.Query(ctx, collection, "name")
	if err != nil {
		return nil, err
	}
	articles := make([]model.Article, 0, len(snaps))
	for _, snap := range snaps {
		articles = append(articles, decodeArticle(snap.ID, snap.Data))
	}
	return articles, nil
}

// findDuplicate returns the first article other than exceptID whose name
// normalizes to the same value as name.
func findDuplicate(articles []model.Article, name, exceptID string) *model.Article {
	key := names.Normalize(name)
	for i := range articles {
		if articles[i].ID != exceptID && names.Normalize(articles[i].Name) == key {
			return &articles[i]
		}
	}
	return nil
}

// CreateArticle adds an article to the catalog. When draft.ListID is set
// the article is also added to that list; a missing list fails the whole
// operation and nothing is created.
func (s *Service) CreateArticle(ctx context.Context, draft model.ArticleDraft) (*model.Article, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return nil, s.finish("create_article", &ValidationError{Field: "name", Reason: "is required"})
	}

	now := s.now().UTC()
	a := model.Article{
		Name:             name,
		Amount:           strings.TrimSpace(draft.Amount),
		Notes:            strings.TrimSpace(draft.Notes),
		Icon:             draft.Icon,
		DepartmentID:     draft.DepartmentID,
		AvailableInShops: draft.AvailableInShops,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if a.Icon == "" {
		a.Icon = model.DefaultIcon
	}

	err := s.store.RunInTx(ctx, func(tx docstore.Tx) error {
		catalog, err := queryArticles(ctx, tx, s.articles())
		if err != nil {
			return err
		}
		if dup := findDuplicate(catalog, name, ""); dup != nil {
			return &DuplicateNameError{Name: name, ExistingID: dup.ID}
		}

		var (
			list    model.ShoppingList
			hasList bool
		)
		if draft.ListID != "" {
			doc, err := tx.Get(ctx, s.lists(), draft.ListID)
			if err != nil {
				return err
			}
			list, hasList = decodeList(draft.ListID, doc), true
		}

		a.ID, err = tx.Create(ctx, s.articles(), encodeArticle(a))
		if err != nil {
			return err
		}

		if hasList && addItem(&list, a.ID) {
			return tx.Update(ctx, s.lists(), list.ID, membershipPatch(list, now))
		}
		return nil
	})
	if err := s.finish("create_article", err); err != nil {
		return nil, err
	}

	s.logger.Info("article created", "id", a.ID, "name", a.Name, "list_id", draft.ListID)
	return &a, nil
}

// UpdateArticle applies patch. A rename is checked against the rest of the
// catalog.
func (s *Service) UpdateArticle(ctx context.Context, id string, patch model.ArticlePatch) (*model.Article, error) {
	var updated model.Article
	err := s.store.RunInTx(ctx, func(tx docstore.Tx) error {
		doc, err := tx.Get(ctx, s.articles(), id)
		if err != nil {
			return err
		}
		current := decodeArticle(id, doc)

		changes := docstore.Document{}
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return &ValidationError{Field: "name", Reason: "is required"}
			}
			if name != current.Name {
				catalog, err := queryArticles(ctx, tx, s.articles())
				if err != nil {
					return err
				}
				if dup := findDuplicate(catalog, name, id); dup != nil {
					return &DuplicateNameError{Name: name, ExistingID: dup.ID}
				}
				changes["name"] = name
			}
		}
		if patch.Amount != nil {
			changes["amount"] = strings.TrimSpace(*patch.Amount)
		}
		if patch.Notes != nil {
			changes["notes"] = strings.TrimSpace(*patch.Notes)
		}
		if patch.Icon != nil {
			icon := *patch.Icon
			if icon == "" {
				icon = model.DefaultIcon
			}
			changes["icon"] = icon
		}
		if patch.DepartmentID != nil {
			changes["departmentId"] = *patch.DepartmentID
			// Migrated articles drop the legacy field on their first edit.
			changes["categoryId"] = nil
		}
		if patch.AvailableInShops != nil {
			changes["availableInShops"] = append([]string{}, (*patch.AvailableInShops)...)
		}
		if patch.UsageCount != nil {
			changes["usageCount"] = *patch.UsageCount
		}
		changes["updatedAt"] = docstore.TimeValue(s.now())

		if err := tx.Update(ctx, s.articles(), id, changes); err != nil {
			return err
		}
		doc, err = tx.Get(ctx, s.articles(), id)
		if err != nil {
			return err
		}
		updated = decodeArticle(id, doc)
		return nil
	})
	if err := s.finish("update_article", err); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteArticle removes an article from the catalog and from every list
// that references it. It fails with *ArticleActiveInListsError, changing
// nothing, while the article is unchecked on any list.
func (s *Service) DeleteArticle(ctx context.Context, id string) error {
	err := s.store.RunInTx(ctx, func(tx docstore.Tx) error {
		if _, err := tx.Get(ctx, s.articles(), id); err != nil {
			return err
		}

		snaps, err := tx.Query(ctx, s.lists(), "name")
		if err != nil {
			return err
		}

		var active []string
		var referencing []model.ShoppingList
		for _, snap := range snaps {
			list := decodeList(snap.ID, snap.Data)
			if list.IsActive(id) {
				active = append(active, list.Name)
				continue
			}
			if list.Contains(id) || hasStateKey(snap.Data, id) {
				referencing = append(referencing, list)
			}
		}
		if len(active) > 0 {
			return &ArticleActiveInListsError{ArticleID: id, ListNames: active}
		}

		now := s.now().UTC()
		for i := range referencing {
			list := &referencing[i]
			removeItem(list, id)
			if err := tx.Update(ctx, s.lists(), list.ID, membershipPatch(*list, now)); err != nil {
				return err
			}
		}
		return tx.Delete(ctx, s.articles(), id)
	})
	if err := s.finish("delete_article", err); err != nil {
		return err
	}

	s.logger.Info("article deleted", "id", id)
	return nil
}

// --- Lists ---

func (s *Service) GetList(ctx context.Context, id string) (*model.ShoppingList, error) {
	doc, err := s.store.Get(ctx, s.lists(), id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("get_list", err)
	}
	l := decodeList(id, doc)
	return &l, nil
}

// ListLists returns all lists ordered by name.
func (s *Service) ListLists(ctx context.Context) ([]model.ShoppingList, error) {
	snaps, err := s.store.Query(ctx, s.lists(), "name")
	if err != nil {
		return nil, storeErr("list_lists", err)
	}
	lists := make([]model.ShoppingList, 0, len(snaps))
	for _, snap := range snaps {
		lists = append(lists, decodeList(snap.ID, snap.Data))
	}
	return lists, nil
}

func (s *Service) CreateList(ctx context.Context, draft model.ListDraft) (*model.ShoppingList, error) {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		return nil, s.finish("create_list", &ValidationError{Field: "name", Reason: "is required"})
	}

	now := s.now().UTC()
	l := model.ShoppingList{
		Name:       name,
		Color:      draft.Color,
		Icon:       draft.Icon,
		ShopID:     draft.ShopID,
		ArticleIDs: []string{},
		ItemStates: map[string]model.ListItemState{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	id, err := s.store.Create(ctx, s.lists(), encodeList(l))
	if err := s.finish("create_list", err); err != nil {
		return nil, err
	}
	l.ID = id

	s.logger.Info("list created", "id", id, "name", name)
	return &l, nil
}

func (s *Service) UpdateList(ctx context.Context, id string, patch model.ListPatch) (*model.ShoppingList, error) {
	var updated model.ShoppingList
	err := s.store.RunInTx(ctx, func(tx docstore.Tx) error {
		if _, err := tx.Get(ctx, s.lists(), id); err != nil {
			return err
		}

		changes := docstore.Document{"updatedAt": docstore.TimeValue(s.now())}
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return &ValidationError{Field: "name", Reason: "is required"}
			}
			changes["name"] = name
		}
		if patch.Color != nil {
			changes["color"] = *patch.Color
		}
		if patch.Icon != nil {
			changes["icon"] = *patch.Icon
		}
		if patch.ShopID != nil {
			changes["shopId"] = *patch.ShopID
		}
		if err := tx.Update(ctx, s.lists(), id, changes); err != nil {
			return err
		}

		doc, err := tx.Get(ctx, s.lists(), id)
		if err != nil {
			return err
		}
		updated = decodeList(id, doc)
		return nil
	})
	if err := s.finish("update_list", err); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteList(ctx context.Context, id string) error {
	err := s.store.RunInTx(ctx, func(tx docstore.Tx) error {
		if _, err := tx.Get(ctx, s.lists(), id); err != nil {
			return err
		}
		return tx.Delete(ctx, s.lists(), id)
	})
	if err := s.finish("delete_list", err); err != nil {
		return err
	}
	s.logger.Info("list deleted", "id", id)
	return nil
}
