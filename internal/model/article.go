package model

import "time"

// DefaultIcon is used for articles created without an icon.
const DefaultIcon = "📦"

type Article struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Amount           string    `json:"amount,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	Icon             string    `json:"icon"`
	DepartmentID     string    `json:"departmentId,omitempty"`
	AvailableInShops []string  `json:"availableInShops,omitempty"`
	UsageCount       int       `json:"usageCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ArticleDraft is the input for creating an article. When ListID is set the
// new article is also put on that list.
type ArticleDraft struct {
	Name             string   `json:"name" yaml:"name"`
	Amount           string   `json:"amount,omitempty" yaml:"amount,omitempty"`
	Notes            string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Icon             string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	DepartmentID     string   `json:"departmentId,omitempty" yaml:"departmentId,omitempty"`
	AvailableInShops []string `json:"availableInShops,omitempty" yaml:"availableInShops,omitempty"`
	ListID           string   `json:"listId,omitempty" yaml:"-"`
}

// ArticlePatch holds the fields to change; nil means unchanged.
type ArticlePatch struct {
	Name             *string   `json:"name,omitempty"`
	Amount           *string   `json:"amount,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	Icon             *string   `json:"icon,omitempty"`
	DepartmentID     *string   `json:"departmentId,omitempty"`
	AvailableInShops *[]string `json:"availableInShops,omitempty"`
	UsageCount       *int      `json:"usageCount,omitempty"`
}
