package shopping

import (
	"context"

	"github.com/dukerupert/shoplisl/internal/department"
	"github.com/dukerupert/shoplisl/internal/model"
)

// GroupedList is a list with its items arranged by department.
type GroupedList struct {
	List     model.ShoppingList   `json:"list"`
	Sections []department.Section `json:"sections"`
	Total    int                  `json:"total"`
	Checked  int                  `json:"checked"`
}

// Items resolves the articles on l against catalog. Ids with no catalog
// entry are skipped.
func Items(l model.ShoppingList, catalog []model.Article) []model.ListItem {
	byID := make(map[string]model.Article, len(catalog))
	for _, a := range catalog {
		byID[a.ID] = a
	}

	items := make([]model.ListItem, 0, len(l.ArticleIDs))
	for _, id := range l.ArticleIDs {
		a, ok := byID[id]
		if !ok {
			continue
		}
		state := l.ItemStates[id]
		amount := state.Amount
		if amount == "" {
			amount = a.Amount
		}
		items = append(items, model.ListItem{
			Article:   a,
			IsChecked: state.IsChecked,
			CheckedAt: state.CheckedAt,
			Amount:    amount,
		})
	}
	return items
}

// GroupedList returns the list's items grouped in its department order.
// It returns nil, nil if the list does not exist.
func (s *Service) GroupedList(ctx context.Context, listID string) (*GroupedList, error) {
	l, err := s.GetList(ctx, listID)
	if err != nil || l == nil {
		return nil, err
	}
	catalog, err := s.ListArticles(ctx)
	if err != nil {
		return nil, err
	}

	items := Items(*l, catalog)
	g := &GroupedList{
		List:     *l,
		Sections: department.Group(l.DepartmentOrder, items),
		Total:    len(items),
	}
	if g.Sections == nil {
		g.Sections = []department.Section{}
	}
	for _, item := range items {
		if item.IsChecked {
			g.Checked++
		}
	}
	return g, nil
}
