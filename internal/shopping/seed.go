package shopping

import (
	"context"
	"strings"

	"github.com/dukerupert/shoplisl/internal/docstore"
	"github.com/dukerupert/shoplisl/internal/matcher"
	"github.com/dukerupert/shoplisl/internal/model"
	"github.com/dukerupert/shoplisl/internal/names"
)

// SeedRequest describes a list to build from free-text entries.
type SeedRequest struct {
	Name   string   `json:"name" yaml:"name"`
	Icon   string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color  string   `json:"color,omitempty" yaml:"color,omitempty"`
	ShopID string   `json:"shopId,omitempty" yaml:"shopId,omitempty"`
	Items  []string `json:"items" yaml:"items"`
}

// SeedMatch ties an entry to the catalog article it resolved to.
type SeedMatch struct {
	Input       string        `json:"input"`
	ArticleID   string        `json:"articleId"`
	ArticleName string        `json:"articleName"`
	Stage       matcher.Stage `json:"stage"`
}

type SeedReport struct {
	List      *model.ShoppingList `json:"list"`
	Matched   []SeedMatch         `json:"matched"`
	Unmatched []string            `json:"unmatched"`
}

// SeedList creates a list from free-text entries. Entries are resolved
// against the current catalog; matched articles go on the list already
// checked, unmatched entries are only reported. No articles are created.
func (s *Service) SeedList(ctx context.Context, req SeedRequest) (*SeedReport, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, s.finish("seed_list", &ValidationError{Field: "name", Reason: "is required"})
	}

	report := &SeedReport{Matched: []SeedMatch{}, Unmatched: []string{}}
	err := s.store.RunInTx(ctx, func(tx docstore.Tx) error {
		catalog, err := queryArticles(ctx, tx, s.articles())
		if err != nil {
			return err
		}

		now := s.now().UTC()
		list := model.ShoppingList{
			Name:       name,
			Color:      req.Color,
			Icon:       req.Icon,
			ShopID:     req.ShopID,
			ArticleIDs: []string{},
			ItemStates: map[string]model.ListItemState{},
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		for _, input := range req.Items {
			if strings.TrimSpace(input) == "" {
				continue
			}
			res, ok := s.matcher.Match(input, catalog)
			if !ok {
				report.Unmatched = append(report.Unmatched, input)
				continue
			}
			report.Matched = append(report.Matched, SeedMatch{
				Input:       input,
				ArticleID:   res.Article.ID,
				ArticleName: res.Article.Name,
				Stage:       res.Stage,
			})
			if addItem(&list, res.Article.ID) {
				checkedAt := now
				list.ItemStates[res.Article.ID] = model.ListItemState{
					ArticleID: res.Article.ID,
					IsChecked: true,
					CheckedAt: &checkedAt,
				}
			}
		}

		list.ID, err = tx.Create(ctx, s.lists(), encodeList(list))
		if err != nil {
			return err
		}
		report.List = &list
		return nil
	})
	if err := s.finish("seed_list", err); err != nil {
		return nil, err
	}

	logger := s.logger.With("list_id", report.List.ID, "list", name)
	for _, m := range report.Matched {
		logger.Info("seed matched", "input", m.Input, "article", m.ArticleName, "stage", m.Stage.String())
	}
	for _, u := range report.Unmatched {
		logger.Warn("seed unmatched", "input", u)
	}
	logger.Info("list seeded",
		"matched", len(report.Matched),
		"unmatched", len(report.Unmatched),
		"items", len(report.List.ArticleIDs),
	)
	return report, nil
}

type ImportReport struct {
	Created []model.Article `json:"created"`
	Skipped []string        `json:"skipped"`
}

// ImportArticles adds drafts to the catalog, skipping names that already
// exist (or repeat within drafts) under normalized comparison. ListID on a
// draft is ignored.
func (s *Service) ImportArticles(ctx context.Context, drafts []model.ArticleDraft) (*ImportReport, error) {
	report := &ImportReport{Created: []model.Article{}, Skipped: []string{}}
	err := s.store.RunInTx(ctx, func(tx docstore.Tx) error {
		catalog, err := queryArticles(ctx, tx, s.articles())
		if err != nil {
			return err
		}
		existing := make(map[string]bool, len(catalog))
		for _, a := range catalog {
			existing[names.Normalize(a.Name)] = true
		}

		now := s.now().UTC()
		for _, d := range drafts {
			name := strings.TrimSpace(d.Name)
			key := names.Normalize(name)
			if key == "" {
				continue
			}
			if existing[key] {
				report.Skipped = append(report.Skipped, name)
				continue
			}

			a := model.Article{
				Name:             name,
				Amount:           strings.TrimSpace(d.Amount),
				Notes:            strings.TrimSpace(d.Notes),
				Icon:             d.Icon,
				DepartmentID:     d.DepartmentID,
				AvailableInShops: d.AvailableInShops,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if a.Icon == "" {
				a.Icon = model.DefaultIcon
			}
			a.ID, err = tx.Create(ctx, s.articles(), encodeArticle(a))
			if err != nil {
				return err
			}
			existing[key] = true
			report.Created = append(report.Created, a)
		}
		return nil
	})
	if err := s.finish("import_articles", err); err != nil {
		return nil, err
	}

	s.logger.Info("articles imported", "created", len(report.Created), "skipped", len(report.Skipped))
	return report, nil
}
