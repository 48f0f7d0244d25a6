package shopping

import (
	"context"
	"slices"
	"strings"

	"github.com/dukerupert/shoplisl/internal/docstore"
	"github.com/dukerupert/shoplisl/internal/model"
)

// addItem appends articleID with a default unchecked state. It reports
// false if the article was already on the list.
func addItem(l *model.ShoppingList, articleID string) bool {
	if l.Contains(articleID) {
		return false
	}
	l.ArticleIDs = append(l.ArticleIDs, articleID)
	if l.ItemStates == nil {
		l.ItemStates = make(map[string]model.ListItemState)
	}
	l.ItemStates[articleID] = model.ListItemState{ArticleID: articleID}
	return true
}

// removeItem drops articleID from both articleIds and itemStates.
func removeItem(l *model.ShoppingList, articleID string) bool {
	_, hadState := l.ItemStates[articleID]
	delete(l.ItemStates, articleID)

	n := len(l.ArticleIDs)
	l.ArticleIDs = slices.DeleteFunc(l.ArticleIDs, func(id string) bool { return id == articleID })
	return hadState || len(l.ArticleIDs) != n
}

// mutateList loads a list, lets fn change it and writes the membership
// fields back if fn reports a change. The read and the write share one
// transaction.
func (s *Service) mutateList(ctx context.Context, op, listID string, fn func(tx docstore.Tx, l *model.ShoppingList) (bool, error)) (*model.ShoppingList, error) {
	var list model.ShoppingList
	err := s.store.RunInTx(ctx, func(tx docstore.Tx) error {
		doc, err := tx.Get(ctx, s.lists(), listID)
		if err != nil {
			return err
		}
		list = decodeList(listID, doc)

		changed, err := fn(tx, &list)
		if err != nil || !changed {
			return err
		}

		now := s.now().UTC()
		list.UpdatedAt = now
		return tx.Update(ctx, s.lists(), listID, membershipPatch(list, now))
	})
	if err := s.finish(op, err); err != nil {
		return nil, err
	}
	return &list, nil
}

// AddArticleToList puts an existing article on a list, unchecked. Adding an
// article that is already on the list changes nothing.
func (s *Service) AddArticleToList(ctx context.Context, listID, articleID string) (*model.ShoppingList, error) {
	return s.mutateList(ctx, "add_article_to_list", listID, func(tx docstore.Tx, l *model.ShoppingList) (bool, error) {
		if l.Contains(articleID) {
			return false, nil
		}
		if _, err := tx.Get(ctx, s.articles(), articleID); err != nil {
			return false, err
		}
		return addItem(l, articleID), nil
	})
}

// RemoveArticleFromList takes an article off a list together with its item
// state. Removing an absent article changes nothing.
func (s *Service) RemoveArticleFromList(ctx context.Context, listID, articleID string) (*model.ShoppingList, error) {
	return s.mutateList(ctx, "remove_article_from_list", listID, func(_ docstore.Tx, l *model.ShoppingList) (bool, error) {
		return removeItem(l, articleID), nil
	})
}

// ToggleItemChecked flips the checked state of an article on a list.
// Checking stamps checkedAt; unchecking clears it.
func (s *Service) ToggleItemChecked(ctx context.Context, listID, articleID string) (*model.ShoppingList, error) {
	return s.mutateList(ctx, "toggle_item_checked", listID, func(_ docstore.Tx, l *model.ShoppingList) (bool, error) {
		if !l.Contains(articleID) {
			return false, ErrNotFound
		}
		state := l.ItemStates[articleID]
		state.ArticleID = articleID
		state.IsChecked = !state.IsChecked
		if state.IsChecked {
			now := s.now().UTC()
			state.CheckedAt = &now
		} else {
			state.CheckedAt = nil
		}
		l.ItemStates[articleID] = state
		return true, nil
	})
}

// UpdateListItemAmount sets the list-local amount of an article. An empty
// amount falls back to the article's default.
func (s *Service) UpdateListItemAmount(ctx context.Context, listID, articleID, amount string) (*model.ShoppingList, error) {
	return s.mutateList(ctx, "update_list_item_amount", listID, func(_ docstore.Tx, l *model.ShoppingList) (bool, error) {
		if !l.Contains(articleID) {
			return false, ErrNotFound
		}
		state := l.ItemStates[articleID]
		state.ArticleID = articleID
		state.Amount = strings.TrimSpace(amount)
		l.ItemStates[articleID] = state
		return true, nil
	})
}

// ClearAllItemsFromList empties a list in a single update.
func (s *Service) ClearAllItemsFromList(ctx context.Context, listID string) (*model.ShoppingList, error) {
	return s.mutateList(ctx, "clear_all_items", listID, func(_ docstore.Tx, l *model.ShoppingList) (bool, error) {
		l.ArticleIDs = []string{}
		l.ItemStates = map[string]model.ListItemState{}
		return true, nil
	})
}

// ClearCheckedItems removes only the checked items of a list.
func (s *Service) ClearCheckedItems(ctx context.Context, listID string) (*model.ShoppingList, error) {
	return s.mutateList(ctx, "clear_checked_items", listID, func(_ docstore.Tx, l *model.ShoppingList) (bool, error) {
		var checked []string
		for _, id := range l.ArticleIDs {
			if l.ItemStates[id].IsChecked {
				checked = append(checked, id)
			}
		}
		for _, id := range checked {
			removeItem(l, id)
		}
		return len(checked) > 0, nil
	})
}

// UpdateListDepartmentOrder replaces the list's department order. Ids are
// not validated; unknown ones never match an article.
func (s *Service) UpdateListDepartmentOrder(ctx context.Context, listID string, order []string) (*model.ShoppingList, error) {
	return s.mutateList(ctx, "update_department_order", listID, func(_ docstore.Tx, l *model.ShoppingList) (bool, error) {
		l.DepartmentOrder = append([]string{}, order...)
		return true, nil
	})
}
