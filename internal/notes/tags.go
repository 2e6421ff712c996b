package notes

import (
	"regexp"
	"sort"
	"strings"
)

var (
	wsRegex     = regexp.MustCompile(`\s+`)
	hyphenRegex = regexp.MustCompile(`-+`)
)

// NormalizeTag normalizes a tag for note frontmatter: whitespace becomes
// hyphens, & becomes "and", # is stripped, / is preserved for hierarchy.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "#")
	tag = strings.TrimSpace(tag)

	if tag == "" {
		return ""
	}

	tag = strings.ReplaceAll(tag, "&", "and")
	tag = strings.ReplaceAll(tag, "#", "")
	tag = wsRegex.ReplaceAllString(tag, "-")
	tag = hyphenRegex.ReplaceAllString(tag, "-")
	tag = strings.Trim(tag, "-")

	return tag
}

// CategoryTags converts game categories into hierarchical category/* tags.
// Returns a sorted, deduplicated slice.
func CategoryTags(categories []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(categories))

	for _, category := range categories {
		normalized := NormalizeTag(category)
		if normalized == "" {
			continue
		}
		tag := "category/" + strings.ToLower(normalized)
		if !seen[tag] {
			seen[tag] = true
			result = append(result, tag)
		}
	}

	sort.Strings(result)
	return result
}
