package matcher

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var defaultAliasesYAML []byte

// Alias maps entries matching Pattern to catalog names containing Target.
type Alias struct {
	Pattern *regexp.Regexp
	Target  string
}

type aliasEntry struct {
	Pattern string `yaml:"pattern"`
	Target  string `yaml:"target"`
}

// DefaultAliases returns the built-in alias table.
func DefaultAliases() []Alias {
	aliases, err := LoadAliases(bytes.NewReader(defaultAliasesYAML))
	if err != nil {
		panic(fmt.Sprintf("matcher: built-in aliases: %v", err))
	}
	return aliases
}

// LoadAliases reads a YAML list of {pattern, target} pairs. Patterns are
// compiled case-insensitively; order is preserved.
func LoadAliases(r io.Reader) ([]Alias, error) {
	var entries []aliasEntry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode aliases: %w", err)
	}

	aliases := make([]Alias, 0, len(entries))
	for i, e := range entries {
		if e.Pattern == "" || strings.TrimSpace(e.Target) == "" {
			return nil, fmt.Errorf("alias %d: pattern and target are required", i+1)
		}
		re, err := regexp.Compile("(?i)" + e.Pattern)
		if err != nil {
			return nil, fmt.Errorf("alias %d: compile %q: %w", i+1, e.Pattern, err)
		}
		aliases = append(aliases, Alias{Pattern: re, Target: e.Target})
	}
	return aliases, nil
}

// LoadAliasesFile reads aliases from path. An empty path yields the built-in
// table.
func LoadAliasesFile(path string) ([]Alias, error) {
	if path == "" {
		return DefaultAliases(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open aliases: %w", err)
	}
	defer f.Close()
	return LoadAliases(f)
}
