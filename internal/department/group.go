package department

import (
	"sort"
	"strings"

	"github.com/dukerupert/shoplisl/internal/model"
)

// Section is one department's slice of a list.
type Section struct {
	Department model.Department `json:"department"`
	IconPath   string           `json:"iconPath"`
	Items      []model.ListItem `json:"items"`
}

// Group arranges items into sections following order. An empty order means
// DefaultOrder. Items whose department is unknown or absent from order are
// grouped under Misc, which is appended last if order does not place it.
// Within a section unchecked items come first, then by name.
func Group(order []string, items []model.ListItem) []Section {
	if len(order) == 0 {
		order = DefaultOrder()
	}

	inOrder := make(map[string]bool, len(order))
	for _, id := range order {
		inOrder[id] = true
	}

	buckets := make(map[string][]model.ListItem)
	for _, item := range items {
		id := item.Article.DepartmentID
		if _, known := byID[id]; !known || !inOrder[id] {
			id = Misc
		}
		buckets[id] = append(buckets[id], item)
	}

	if !inOrder[Misc] {
		order = append(append([]string(nil), order...), Misc)
	}

	var sections []Section
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if seen[id] {
			continue
		}
		seen[id] = true

		bucket := buckets[id]
		if len(bucket) == 0 {
			continue
		}
		sortItems(bucket)
		d, _ := Lookup(id)
		sections = append(sections, Section{
			Department: d,
			IconPath:   IconPath(id),
			Items:      bucket,
		})
	}
	return sections
}

func sortItems(items []model.ListItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsChecked != items[j].IsChecked {
			return !items[i].IsChecked
		}
		return strings.ToLower(items[i].Article.Name) < strings.ToLower(items[j].Article.Name)
	})
}
