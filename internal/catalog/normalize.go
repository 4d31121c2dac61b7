package catalog

import (
	"strings"

	"github.com/Veraticus/roomcraft/internal/model"
)

type categoryRule struct {
	category model.Category
	keywords []string
}

// categoryRules are applied in order; the first keyword contained in the
// lower-cased label wins.
var categoryRules = []categoryRule{
	{category: model.CategorySofa, keywords: []string{"sofa", "sectional"}},
	{category: model.CategoryChair, keywords: []string{"chair"}},
	{category: model.CategoryTable, keywords: []string{"table"}},
	{category: model.CategoryBed, keywords: []string{"bed"}},
	{category: model.CategoryTable, keywords: []string{"desk"}},
	{category: model.CategoryStorage, keywords: []string{"storage", "cabinet"}},
}

// NormalizeCategory maps a free-form category, type or product name onto a
// canonical category. Unmatched labels become furniture.
func NormalizeCategory(label string) model.Category {
	lower := strings.ToLower(label)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return model.CategoryFurniture
}

// containsEither reports whether a contains b or b contains a, case-insensitively.
func containsEither(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// MatchesCategory reports whether the product category matches any requested
// category by bidirectional containment.
func MatchesCategory(category model.Category, requested []string) bool {
	for _, r := range requested {
		if r == "" {
			continue
		}
		if containsEither(string(category), r) {
			return true
		}
	}
	return false
}

func collectionKey(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// MatchesCollection reports whether any tag matches any requested collection.
// Underscores are treated as spaces on both sides.
func MatchesCollection(tags []string, requested []string) bool {
	for _, r := range requested {
		if r == "" {
			continue
		}
		want := collectionKey(r)
		for _, tag := range tags {
			if tag == "" {
				continue
			}
			if containsEither(collectionKey(tag), want) {
				return true
			}
		}
	}
	return false
}
