package model

import "testing"

func TestShoppingListIsActive(t *testing.T) {
	l := ShoppingList{
		ArticleIDs: []string{"a1", "a2", "a3"},
		ItemStates: map[string]ListItemState{
			"a1": {ArticleID: "a1", IsChecked: false},
			"a2": {ArticleID: "a2", IsChecked: true},
			"a4": {ArticleID: "a4", IsChecked: false},
		},
	}

	tests := []struct {
		id   string
		want bool
	}{
		{"a1", true},  // unchecked
		{"a2", false}, // checked
		{"a3", true},  // on list, no state
		{"a4", false}, // state but not on list
		{"a5", false}, // unknown
	}
	for _, tt := range tests {
		if got := l.IsActive(tt.id); got != tt.want {
			t.Errorf("IsActive(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
