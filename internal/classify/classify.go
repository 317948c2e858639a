// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns research-topic categories to papers by
// case-insensitive substring matching against an ordered keyword map.
package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-organizer/pkg/types"
)

// Category is one entry of a keyword map: a folder-friendly name and the
// keywords that select it.
type Category struct {
	Name     string
	Keywords []string
}

// KeywordMap is an ordered category-to-keywords mapping. Order matters:
// the by-keyword reorganization strategy sends multi-category papers to
// the first matching category. The map is immutable once loaded.
type KeywordMap struct {
	Categories []Category
}

// Names returns the category names in map order.
func (m *KeywordMap) Names() []string {
	names := make([]string, len(m.Categories))
	for i, c := range m.Categories {
		names[i] = c.Name
	}
	return names
}

// LoadKeywordMap reads a YAML mapping of category name to keyword list,
// preserving the file's key order. Malformed entries (empty keyword
// list, empty keyword, duplicate category) are rejected up front so a
// bad map never reaches the scanner.
func LoadKeywordMap(path string) (*KeywordMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword map %s: %w", path, err)
	}
	m, err := ParseKeywordMap(data)
	if err != nil {
		return nil, fmt.Errorf("keyword map %s: %w", path, err)
	}
	return m, nil
}

// ParseKeywordMap parses keyword-map YAML. The top level must be a
// mapping; decoding goes through yaml.Node because a plain map[string]
// would lose the category order the by-keyword strategy depends on.
func ParseKeywordMap(data []byte) (*KeywordMap, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty keyword map")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("keyword map must be a mapping of category name to keyword list")
	}

	m := &KeywordMap{}
	seen := make(map[string]bool)

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valNode := root.Content[i], root.Content[i+1]
		name := strings.TrimSpace(keyNode.Value)
		if name == "" {
			return nil, fmt.Errorf("category name must not be empty (line %d)", keyNode.Line)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate category %q (line %d)", name, keyNode.Line)
		}
		seen[name] = true

		var keywords []string
		if err := valNode.Decode(&keywords); err != nil {
			return nil, fmt.Errorf("category %q: keywords must be a list of strings: %w", name, err)
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("category %q has an empty keyword list", name)
		}
		for j, kw := range keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				return nil, fmt.Errorf("category %q has an empty keyword", name)
			}
			keywords[j] = kw
		}

		m.Categories = append(m.Categories, Category{Name: name, Keywords: keywords})
	}

	if len(m.Categories) == 0 {
		return nil, fmt.Errorf("keyword map defines no categories")
	}
	return m, nil
}

// Classify returns the names of every category with at least one
// keyword hit against the paper's textual surface, in map order. The
// surface is the title, the filename, and the path components below
// root, all lowercased; matching is plain substring, unweighted, and a
// single hit qualifies the category. An empty result is valid.
func (m *KeywordMap) Classify(rec types.PaperRecord, root string) []string {
	surface := Surface(rec, root)

	var matched []string
	for _, cat := range m.Categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(surface, strings.ToLower(kw)) {
				matched = append(matched, cat.Name)
				break
			}
		}
	}
	return matched
}

// Surface builds the lowercased match text for one record: title,
// filename, and the relative path components.
func Surface(rec types.PaperRecord, root string) string {
	parts := []string{rec.Title, filepath.Base(rec.SourcePath)}
	if rel, err := filepath.Rel(root, rec.SourcePath); err == nil {
		dir := filepath.Dir(rel)
		if dir != "." {
			parts = append(parts, strings.Split(dir, string(filepath.Separator))...)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
