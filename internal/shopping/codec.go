package shopping

import (
	"time"

	"github.com/dukerupert/shoplisl/internal/docstore"
	"github.com/dukerupert/shoplisl/internal/model"
)

// Every stored shape is normalized here, right after it is read. Older
// documents may lack itemStates, carry itemStates entries without an
// articleId, repeat ids in articleIds, use categoryId instead of
// departmentId or have no icon. Decoding never writes back; the normalized
// shape is only persisted by the next explicit mutation.

func decodeArticle(id string, doc docstore.Document) model.Article {
	a := model.Article{
		ID:               id,
		Name:             docstore.String(doc, "name"),
		Amount:           docstore.String(doc, "amount"),
		Notes:            docstore.String(doc, "notes"),
		Icon:             docstore.String(doc, "icon"),
		DepartmentID:     docstore.String(doc, "departmentId"),
		AvailableInShops: docstore.Strings(doc, "availableInShops"),
		UsageCount:       docstore.Int(doc, "usageCount"),
		CreatedAt:        docstore.Time(doc, "createdAt"),
		UpdatedAt:        docstore.Time(doc, "updatedAt"),
	}
	if a.Icon == "" {
		a.Icon = model.DefaultIcon
	}
	if a.DepartmentID == "" {
		a.DepartmentID = docstore.String(doc, "categoryId")
	}
	return a
}

func encodeArticle(a model.Article) docstore.Document {
	doc := docstore.Document{
		"name":       a.Name,
		"icon":       a.Icon,
		"usageCount": a.UsageCount,
		"createdAt":  docstore.TimeValue(a.CreatedAt),
		"updatedAt":  docstore.TimeValue(a.UpdatedAt),
	}
	if a.Amount != "" {
		doc["amount"] = a.Amount
	}
	if a.Notes != "" {
		doc["notes"] = a.Notes
	}
	if a.DepartmentID != "" {
		doc["departmentId"] = a.DepartmentID
	}
	if len(a.AvailableInShops) > 0 {
		doc["availableInShops"] = a.AvailableInShops
	}
	return doc
}

func decodeList(id string, doc docstore.Document) model.ShoppingList {
	l := model.ShoppingList{
		ID:              id,
		Name:            docstore.String(doc, "name"),
		Color:           docstore.String(doc, "color"),
		Icon:            docstore.String(doc, "icon"),
		ShopID:          docstore.String(doc, "shopId"),
		DepartmentOrder: docstore.Strings(doc, "departmentOrder"),
		CreatedAt:       docstore.Time(doc, "createdAt"),
		UpdatedAt:       docstore.Time(doc, "updatedAt"),
	}

	seen := make(map[string]bool)
	l.ArticleIDs = []string{}
	for _, articleID := range docstore.Strings(doc, "articleIds") {
		if articleID == "" || seen[articleID] {
			continue
		}
		seen[articleID] = true
		l.ArticleIDs = append(l.ArticleIDs, articleID)
	}

	stored, _ := docstore.Object(doc, "itemStates")
	l.ItemStates = make(map[string]model.ListItemState, len(l.ArticleIDs))
	for _, articleID := range l.ArticleIDs {
		l.ItemStates[articleID] = decodeItemState(articleID, stored)
	}
	return l
}

// decodeItemState returns the state stored under articleID, or the default
// unchecked state. States for ids no longer in articleIds are dropped by
// the caller.
func decodeItemState(articleID string, states docstore.Document) model.ListItemState {
	state := model.ListItemState{ArticleID: articleID}
	raw, ok := docstore.Object(states, articleID)
	if !ok {
		return state
	}
	state.IsChecked = docstore.Bool(raw, "isChecked")
	state.Amount = docstore.String(raw, "amount")
	if t := docstore.Time(raw, "checkedAt"); !t.IsZero() {
		state.CheckedAt = &t
	}
	return state
}

func encodeItemStates(states map[string]model.ListItemState) map[string]any {
	out := make(map[string]any, len(states))
	for articleID, state := range states {
		entry := map[string]any{
			"articleId": articleID,
			"isChecked": state.IsChecked,
		}
		if state.CheckedAt != nil {
			entry["checkedAt"] = docstore.TimeValue(*state.CheckedAt)
		}
		if state.Amount != "" {
			entry["amount"] = state.Amount
		}
		out[articleID] = entry
	}
	return out
}

func encodeList(l model.ShoppingList) docstore.Document {
	doc := docstore.Document{
		"name":       l.Name,
		"articleIds": append([]string{}, l.ArticleIDs...),
		"itemStates": encodeItemStates(l.ItemStates),
		"createdAt":  docstore.TimeValue(l.CreatedAt),
		"updatedAt":  docstore.TimeValue(l.UpdatedAt),
	}
	if l.Color != "" {
		doc["color"] = l.Color
	}
	if l.Icon != "" {
		doc["icon"] = l.Icon
	}
	if l.ShopID != "" {
		doc["shopId"] = l.ShopID
	}
	if l.DepartmentOrder != nil {
		doc["departmentOrder"] = append([]string{}, l.DepartmentOrder...)
	}
	return doc
}

// membershipPatch is the update written by every list item mutation.
func membershipPatch(l model.ShoppingList, now time.Time) docstore.Document {
	patch := docstore.Document{
		"articleIds": append([]string{}, l.ArticleIDs...),
		"itemStates": encodeItemStates(l.ItemStates),
		"updatedAt":  docstore.TimeValue(now),
	}
	if l.DepartmentOrder != nil {
		patch["departmentOrder"] = append([]string{}, l.DepartmentOrder...)
	}
	return patch
}

// hasStateKey reports whether the stored itemStates map has a key for
// articleID, including keys whose id is no longer in articleIds.
func hasStateKey(doc docstore.Document, articleID string) bool {
	states, ok := docstore.Object(doc, "itemStates")
	if !ok {
		return false
	}
	_, ok = states[articleID]
	return ok
}
