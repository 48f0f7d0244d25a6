package matcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dukerupert/shoplisl/internal/model"
)

func catalog(names ...string) []model.Article {
	articles := make([]model.Article, len(names))
	for i, n := range names {
		articles[i] = model.Article{ID: "a" + string(rune('0'+i)), Name: n}
	}
	return articles
}

func TestClean(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Milch", "Milch"},
		{"Brot?", "Brot"},
		{"Milch 2x", "Milch"},
		{"Eier 10", "Eier"},
		{"Ca 2.400g Rahm", "Rahm"},
		{"ca. 500g Mehl", "Mehl"},
		{"Bier und Pfand", "Bier"},
		{"Äpfel / Birnen", "Äpfel"},
		{"Hackfleisch (Rind) bio", "Hackfleisch bio"},
		{"Tomaten (rot) (groß)", "Tomaten (groß)"},
		{"  Salat   gemischt  ", "Salat gemischt"},
		{"Cashews", "Cashews"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Clean(tt.input); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMatchStages(t *testing.T) {
	m := New(DefaultAliases())
	items := catalog("Äpfel", "Hackfleisch (100% Rind)", "Vollmilch", "Creme Fraiche", "Brot serbisch Lepinja")

	tests := []struct {
		input     string
		wantName  string
		wantStage Stage
	}{
		{"äpfel", "Äpfel", StageExact},
		{"ÄPFEL 3x", "Äpfel", StageExact},
		{"Vollmilch?", "Vollmilch", StageExact},
		{"Milch", "Vollmilch", StageSubstring},
		{"Hackfleisch", "Hackfleisch (100% Rind)", StageAlias},
		{"Hackfleisch Rind", "Hackfleisch (100% Rind)", StageAlias},
		{"Creme friache", "Creme Fraiche", StageAlias},
		{"Lepinja", "Brot serbisch Lepinja", StageAlias},
		{"frische Fraiche", "Creme Fraiche", StageWordOverlap},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := m.Match(tt.input, items)
			if !ok {
				t.Fatalf("Match(%q) found nothing", tt.input)
			}
			if got.Article.Name != tt.wantName || got.Stage != tt.wantStage {
				t.Errorf("Match(%q) = %q via %s, want %q via %s",
					tt.input, got.Article.Name, got.Stage, tt.wantName, tt.wantStage)
			}
		})
	}
}

func TestMatchNoResult(t *testing.T) {
	m := New(DefaultAliases())
	items := catalog("Äpfel", "Hackfleisch (100% Rind)")

	for _, input := range []string{"UnknownThing123", "", "   ", "?", "ab"} {
		if got, ok := m.Match(input, items); ok {
			t.Errorf("Match(%q) = %q via %s, want no match", input, got.Article.Name, got.Stage)
		}
	}
	if _, ok := m.Match("Äpfel", nil); ok {
		t.Error("empty catalog must never match")
	}
}

func TestMatchFirstCatalogEntryWins(t *testing.T) {
	m := New(nil)
	items := catalog("Tomaten passiert", "Tomaten gehackt")

	got, ok := m.Match("Tomaten frisch", items)
	if !ok || got.Article.Name != "Tomaten passiert" || got.Stage != StageWordOverlap {
		t.Errorf("got %+v, %v", got, ok)
	}
}

// A short input only matches as a substring of a name it covers at least
// half of, so a closer name later in the catalog wins over an earlier long
// one. The long name is still reachable through word overlap.
func TestMatchSubstringNeedsCoverage(t *testing.T) {
	m := New(nil)

	got, ok := m.Match("Limo", catalog("Zitronenlimo Bio extra", "Limonade"))
	if !ok || got.Article.Name != "Limonade" || got.Stage != StageSubstring {
		t.Errorf("got %+v, %v; want Limonade via substring", got, ok)
	}

	got, ok = m.Match("Limo", catalog("Zitronenlimo Bio extra"))
	if !ok || got.Article.Name != "Zitronenlimo Bio extra" || got.Stage != StageWordOverlap {
		t.Errorf("got %+v, %v; want Zitronenlimo Bio extra via word overlap", got, ok)
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	m := New(DefaultAliases())
	items := catalog("Zitrone", "Limette", "Mayonnaise", "Brot", "Pudding vegan")
	inputs := []string{"Zitronen", "Limetten", "Mayo", "Toast", "Vegan Pudding", "Nichts"}

	first := make([]string, len(inputs))
	for i, in := range inputs {
		r, _ := m.Match(in, items)
		first[i] = r.Article.ID + "/" + r.Stage.String()
	}
	for run := 0; run < 5; run++ {
		for i, in := range inputs {
			r, _ := m.Match(in, items)
			if got := r.Article.ID + "/" + r.Stage.String(); got != first[i] {
				t.Fatalf("run %d: Match(%q) = %s, want %s", run, in, got, first[i])
			}
		}
	}
}

func TestMatchWithoutAliasesSkipsAliasStage(t *testing.T) {
	items := catalog("Brot")
	if _, ok := New(nil).Match("Toast", items); ok {
		t.Error("expected no match without alias table")
	}
	got, ok := New(DefaultAliases()).Match("Toast", items)
	if !ok || got.Stage != StageAlias {
		t.Errorf("got %+v, %v; want alias match", got, ok)
	}
}

func TestLoadAliases(t *testing.T) {
	src := `
- pattern: '^semmel$'
  target: Brötchen
- pattern: '^erdäpfel'
  target: kartoffel
`
	aliases, err := LoadAliases(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadAliases: %v", err)
	}
	if len(aliases) != 2 {
		t.Fatalf("len = %d, want 2", len(aliases))
	}
	if !aliases[0].Pattern.MatchString("SEMMEL") {
		t.Error("patterns must be case-insensitive")
	}

	items := catalog("Kartoffeln festkochend", "Brötchen")
	got, ok := New(aliases).Match("Semmel", items)
	if !ok || got.Article.Name != "Brötchen" || got.Stage != StageAlias {
		t.Errorf("got %+v, %v", got, ok)
	}
}

func TestLoadAliasesErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bad regex", "- pattern: '^(unclosed'\n  target: x\n"},
		{"missing target", "- pattern: '^x$'\n"},
		{"not a list", "pattern: x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadAliases(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDefaultAliasesCompile(t *testing.T) {
	aliases := DefaultAliases()
	if len(aliases) < 80 {
		t.Fatalf("built-in table has %d entries", len(aliases))
	}
	if aliases[0].Target != "hackfleisch (100% rind)" {
		t.Errorf("first alias target = %q", aliases[0].Target)
	}
}

func TestLoadAliasesFile(t *testing.T) {
	aliases, err := LoadAliasesFile("")
	if err != nil || len(aliases) != len(DefaultAliases()) {
		t.Fatalf("empty path: %d aliases, %v", len(aliases), err)
	}

	path := filepath.Join(t.TempDir(), "aliases.yaml")
	if err := os.WriteFile(path, []byte("- pattern: '^semmel$'\n  target: brötchen\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	aliases, err = LoadAliasesFile(path)
	if err != nil || len(aliases) != 1 {
		t.Fatalf("file: %d aliases, %v", len(aliases), err)
	}

	if _, err := LoadAliasesFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
