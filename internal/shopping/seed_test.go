package shopping

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/dukerupert/shoplisl/internal/matcher"
	"github.com/dukerupert/shoplisl/internal/model"
)

func TestSeedList(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	apfel := mustCreateArticle(t, svc, "Äpfel")
	hack := mustCreateArticle(t, svc, "Hackfleisch (100% Rind)")

	report, err := svc.SeedList(ctx, SeedRequest{
		Name:  "Spar",
		Icon:  "🏪",
		Color: "#f44336",
		Items: []string{"Äpfel", "Hackfleisch", "UnknownThing123"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	l := mustGetList(t, svc, report.List.ID)
	if l.Name != "Spar" || l.Icon != "🏪" || l.Color != "#f44336" {
		t.Errorf("list = %+v", l)
	}
	if !reflect.DeepEqual(l.ArticleIDs, []string{apfel.ID, hack.ID}) {
		t.Errorf("articleIds = %v", l.ArticleIDs)
	}
	for _, id := range l.ArticleIDs {
		st := l.ItemStates[id]
		if !st.IsChecked || st.CheckedAt == nil {
			t.Errorf("item %s not pre-checked: %+v", id, st)
		}
	}

	if len(report.Matched) != 2 {
		t.Fatalf("matched = %+v", report.Matched)
	}
	if m := report.Matched[1]; m.Input != "Hackfleisch" || m.ArticleID != hack.ID || m.Stage != matcher.StageAlias {
		t.Errorf("hackfleisch match = %+v", m)
	}
	if !reflect.DeepEqual(report.Unmatched, []string{"UnknownThing123"}) {
		t.Errorf("unmatched = %v", report.Unmatched)
	}

	catalog, _ := svc.ListArticles(ctx)
	if len(catalog) != 2 {
		t.Errorf("catalog grew to %d articles", len(catalog))
	}
}

func TestSeedListDeduplicatesMatches(t *testing.T) {
	svc, _ := setupTestService(t)
	milch := mustCreateArticle(t, svc, "Milch")

	report, err := svc.SeedList(context.Background(), SeedRequest{
		Name:  "Sutterlütty",
		Items: []string{"Milch", "milch 2x", "", "Milch?"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Matched) != 3 {
		t.Errorf("matched = %d, want 3", len(report.Matched))
	}
	if !reflect.DeepEqual(report.List.ArticleIDs, []string{milch.ID}) {
		t.Errorf("articleIds = %v", report.List.ArticleIDs)
	}
}

func TestSeedListRequiresName(t *testing.T) {
	svc, _ := setupTestService(t)
	if _, err := svc.SeedList(context.Background(), SeedRequest{Items: []string{"x"}}); !errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestImportArticles(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()
	mustCreateArticle(t, svc, "Milch")

	report, err := svc.ImportArticles(ctx, []model.ArticleDraft{
		{Name: "Brot", DepartmentID: "bread"},
		{Name: "MILCH"},
		{Name: "brot "},
		{Name: "  "},
		{Name: "Käse", Icon: "🧀"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Created) != 2 || report.Created[0].Name != "Brot" || report.Created[1].Icon != "🧀" {
		t.Errorf("created = %+v", report.Created)
	}
	if !reflect.DeepEqual(report.Skipped, []string{"MILCH", "brot"}) {
		t.Errorf("skipped = %v", report.Skipped)
	}

	catalog, _ := svc.ListArticles(ctx)
	if len(catalog) != 3 {
		t.Errorf("catalog size = %d, want 3", len(catalog))
	}
}
