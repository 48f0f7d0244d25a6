// Package matcher resolves free-text list entries, as found on handwritten or
// exported shopping lists, to articles of an existing catalog.
package matcher

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dukerupert/shoplisl/internal/model"
	"github.com/dukerupert/shoplisl/internal/names"
)

// Stage identifies which matching strategy produced a result.
type Stage int

const (
	StageExact Stage = iota + 1
	StageSubstring
	StageAlias
	StageWordOverlap
)

func (s Stage) String() string {
	switch s {
	case StageExact:
		return "exact"
	case StageSubstring:
		return "substring"
	case StageAlias:
		return "alias"
	case StageWordOverlap:
		return "word-overlap"
	default:
		return "none"
	}
}

func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// minSubstringCoverage is the share of the longer name the shorter one has to
// cover before a substring hit counts. Short fragments such as "hackfleisch"
// against "hackfleisch (100% rind)" fall through to the alias table instead.
const minSubstringCoverage = 0.5

// Result is a successful match.
type Result struct {
	Article model.Article `json:"article"`
	Stage   Stage         `json:"stage"`
	Cleaned string        `json:"cleaned"`
}

// Matcher is safe for concurrent use; it holds no mutable state.
type Matcher struct {
	aliases []Alias
}

// New returns a Matcher using aliases in order. A nil slice disables the
// alias stage.
func New(aliases []Alias) *Matcher {
	return &Matcher{aliases: aliases}
}

// Match resolves input against catalog. Stages run in order and the first
// catalog entry satisfying a stage wins; ok is false when no stage matches.
func (m *Matcher) Match(input string, catalog []model.Article) (Result, bool) {
	cleaned := Clean(input)
	key := names.Normalize(cleaned)
	if key == "" || len(catalog) == 0 {
		return Result{}, false
	}

	keys := make([]string, len(catalog))
	for i := range catalog {
		keys[i] = names.Normalize(catalog[i].Name)
	}

	found := func(i int, stage Stage) (Result, bool) {
		return Result{Article: catalog[i], Stage: stage, Cleaned: cleaned}, true
	}

	for i, k := range keys {
		if k == key {
			return found(i, StageExact)
		}
	}

	for i, k := range keys {
		if substringHit(key, k) {
			return found(i, StageSubstring)
		}
	}

	for _, a := range m.aliases {
		if !a.Pattern.MatchString(key) {
			continue
		}
		target := names.Normalize(a.Target)
		for i, k := range keys {
			if strings.Contains(k, target) {
				return found(i, StageAlias)
			}
		}
	}

	words := significantWords(key)
	if len(words) > 0 {
		for i, k := range keys {
			if wordsOverlap(words, strings.Fields(k)) {
				return found(i, StageWordOverlap)
			}
		}
	}

	return Result{}, false
}

func substringHit(a, b string) bool {
	short, long := a, b
	if utf8.RuneCountInString(short) > utf8.RuneCountInString(long) {
		short, long = long, short
	}
	if short == "" || !strings.Contains(long, short) {
		return false
	}
	return float64(utf8.RuneCountInString(short)) >= minSubstringCoverage*float64(utf8.RuneCountInString(long))
}

// significantWords returns the words of s longer than two characters.
func significantWords(s string) []string {
	var words []string
	for _, w := range strings.Fields(s) {
		if utf8.RuneCountInString(w) > 2 {
			words = append(words, w)
		}
	}
	return words
}

func wordsOverlap(input, article []string) bool {
	for _, w := range input {
		for _, a := range article {
			if strings.Contains(a, w) || strings.Contains(w, a) {
				return true
			}
		}
	}
	return false
}

var (
	trailingQuestion = regexp.MustCompile(`\?$`)
	trailingMultiple = regexp.MustCompile(`\s*\d+x\s*$`)
	trailingNumber   = regexp.MustCompile(`\s*\d+\s*$`)
	approxWeight     = regexp.MustCompile(`(?i)^\s*ca\.?\s*[\d.,]+\s*g?\s+`)
	depositSuffix    = regexp.MustCompile(`(?i)\s*und\s*pfand\s*$`)
	afterSlash       = regexp.MustCompile(`\s*/.*$`)
	parenthesized    = regexp.MustCompile(`\s*\(.*?\)\s*`)
	spaces           = regexp.MustCompile(`\s+`)
)

// Clean strips list noise from an entry: a trailing "?", quantity suffixes
// like "2x" or "3", a leading "ca. 2.400g" weight, a trailing "und Pfand",
// anything after a slash and the first parenthesized group. Whitespace is
// collapsed and trimmed. Case is preserved.
func Clean(name string) string {
	s := trailingQuestion.ReplaceAllString(name, "")
	s = trailingMultiple.ReplaceAllString(s, "")
	s = trailingNumber.ReplaceAllString(s, "")
	s = approxWeight.ReplaceAllString(s, "")
	s = depositSuffix.ReplaceAllString(s, "")
	s = afterSlash.ReplaceAllString(s, "")
	s = replaceFirst(parenthesized, s, " ")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
