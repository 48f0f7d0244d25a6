package model

import "time"

// ListItemState is the per-list state of one article.
type ListItemState struct {
	ArticleID string     `json:"articleId"`
	IsChecked bool       `json:"isChecked"`
	CheckedAt *time.Time `json:"checkedAt,omitempty"`
	Amount    string     `json:"amount,omitempty"`
}

type ShoppingList struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	Color           string                   `json:"color,omitempty"`
	Icon            string                   `json:"icon,omitempty"`
	ShopID          string                   `json:"shopId,omitempty"`
	ArticleIDs      []string                 `json:"articleIds"`
	ItemStates      map[string]ListItemState `json:"itemStates"`
	DepartmentOrder []string                 `json:"departmentOrder,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// Contains reports whether articleID is on the list.
func (l *ShoppingList) Contains(articleID string) bool {
	for _, id := range l.ArticleIDs {
		if id == articleID {
			return true
		}
	}
	return false
}

// IsActive reports whether the article is on the list and not yet checked.
func (l *ShoppingList) IsActive(articleID string) bool {
	if !l.Contains(articleID) {
		return false
	}
	state, ok := l.ItemStates[articleID]
	return !ok || !state.IsChecked
}

type ListDraft struct {
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
	Icon   string `json:"icon,omitempty"`
	ShopID string `json:"shopId,omitempty"`
}

type ListPatch struct {
	Name   *string `json:"name,omitempty"`
	Color  *string `json:"color,omitempty"`
	Icon   *string `json:"icon,omitempty"`
	ShopID *string `json:"shopId,omitempty"`
}

// ListItem is an article as it appears on a particular list.
type ListItem struct {
	Article   Article    `json:"article"`
	IsChecked bool       `json:"isChecked"`
	CheckedAt *time.Time `json:"checkedAt,omitempty"`
	// Amount is the list override if set, otherwise the article default.
	Amount string `json:"amount,omitempty"`
}
