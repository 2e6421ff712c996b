package notes

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jlaasanen/meeple/internal/normalize"
)

// GameNote holds the catalog-relevant values parsed from a markdown note.
// Pointer fields are nil when the note does not carry the value.
type GameNote struct {
	Title        string
	Publisher    *string
	Year         *int
	MinPlayers   *int
	MaxPlayers   *int
	PlayTimeMin  *int
	PlayTimeMax  *int
	SuggestedAge *int
	BGGRating    *float64
	BGGRank      *int
	Categories   []string
	Description  *string
}

// ParseNote parses markdown content with YAML frontmatter into a GameNote.
// Values that fail validation are dropped rather than failing the parse.
func ParseNote(content []byte) (*GameNote, error) {
	trimmed := bytes.TrimSpace(content)
	if !bytes.HasPrefix(trimmed, []byte("---")) {
		return nil, fmt.Errorf("invalid note format: missing opening frontmatter delimiter")
	}

	parts := bytes.SplitN(trimmed, []byte("---"), 3)
	if len(parts) < 3 {
		return nil, fmt.Errorf("invalid note format: missing closing frontmatter delimiter")
	}

	var fm map[string]any
	if err := yaml.Unmarshal(parts[1], &fm); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	title := normalize.TrimmedString(fm["title"])
	if title == nil {
		return nil, fmt.Errorf("invalid note: missing title")
	}

	note := &GameNote{
		Title:        *title,
		Publisher:    normalize.TrimmedString(fm["publisher"]),
		Year:         normalize.PositiveInt(fm["year"]),
		SuggestedAge: normalize.IntInRange(fm["suggested_age"], 1, 21),
		BGGRating:    normalize.DecimalInRange(fm["bgg_rating"], 0, 10, 1),
		BGGRank:      normalize.PositiveInt(fm["bgg_rank"]),
		Categories:   normalize.StringList(fm["categories"]),
	}

	note.MinPlayers, note.MaxPlayers = parseRange(normalize.TrimmedString(fm["players"]))
	note.PlayTimeMin, note.PlayTimeMax = parseRange(normalize.TrimmedString(fm["playtime"]))

	if description := noteBody(parts[2]); description != "" {
		note.Description = &description
	}

	return note, nil
}

// ParseNoteFile reads and parses a markdown note from disk.
func ParseNoteFile(path string) (*GameNote, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read note: %w", err)
	}
	return ParseNote(content)
}

// parseRange parses a "2-4", "30-45 min" or bare "3" value back into a
// min/max pair. A single number fills both ends.
func parseRange(value *string) (*int, *int) {
	if value == nil {
		return nil, nil
	}

	s := strings.TrimSuffix(strings.TrimSpace(*value), " min")
	low, high, found := strings.Cut(s, "-")
	if !found {
		high = low
	}

	min := parsePositive(low)
	max := parsePositive(high)
	if min == nil || max == nil {
		return nil, nil
	}
	return min, max
}

func parsePositive(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// noteBody extracts the description from the note body: everything before
// the first callout block, since callouts hold review text.
func noteBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if idx := strings.Index(text, ">[!"); idx >= 0 {
		text = strings.TrimSpace(text[:idx])
	}
	return text
}
