package fileutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownBuilderBasicNote(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddTitle("Azul").
		AddType("boardgame").
		AddYear(2017).
		AddField("publisher", "Plan B Games").
		AddField("bgg_rating", 7.8).
		AddPlayerCount(2, 4).
		AddPlayTime(30, 45).
		AddTags("boardgame", "category/abstract").
		AddParagraph("Tile drafting for the royal palace of Evora.").
		Build()

	assert.True(t, strings.HasPrefix(doc, "---\n"))
	assert.Contains(t, doc, "title: \"Azul\"\n")
	assert.Contains(t, doc, "type: boardgame\n")
	assert.Contains(t, doc, "year: 2017\n")
	assert.Contains(t, doc, "publisher: \"Plan B Games\"\n")
	assert.Contains(t, doc, "bgg_rating: 7.8\n")
	assert.Contains(t, doc, "players: 2-4\n")
	assert.Contains(t, doc, "playtime: 30-45 min\n")
	assert.Contains(t, doc, "tags:\n  - boardgame\n  - category/abstract\n")
	assert.Contains(t, doc, "---\n\nTile drafting")
}

func TestMarkdownBuilderSkipsEmptyValues(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddTitle("Unknown Game").
		AddYear(0).
		AddField("publisher", "").
		AddPlayerCount(0, 0).
		AddPlayTime(0, 0).
		AddStringArray("categories", nil).
		AddParagraph("").
		Build()

	assert.NotContains(t, doc, "year:")
	assert.NotContains(t, doc, "publisher:")
	assert.NotContains(t, doc, "players:")
	assert.NotContains(t, doc, "playtime:")
	assert.NotContains(t, doc, "categories:")
}

func TestMarkdownBuilderKeepsZeroRating(t *testing.T) {
	// A rating of zero is a real value and must survive export.
	doc := NewMarkdownBuilder().
		AddField("bgg_rating", 0.0).
		Build()

	assert.Contains(t, doc, "bgg_rating: 0.0\n")
}

func TestMarkdownBuilderEscapesQuotes(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddTitle(`7 Wonders: "Duel"`).
		AddField("publisher", `Repos "Production"`).
		AddStringArray("categories", []string{`Card "Drafting"`}).
		Build()

	assert.Contains(t, doc, `title: "7 Wonders: \"Duel\""`+"\n")
	assert.Contains(t, doc, `publisher: "Repos \"Production\""`+"\n")
	assert.Contains(t, doc, `  - "Card \"Drafting\""`+"\n")
}

func TestMarkdownBuilderStringArray(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddStringArray("categories", []string{"Strategy", " Family ", ""}).
		Build()

	assert.Contains(t, doc, "categories:\n  - \"Strategy\"\n  - \"Family\"\n")
}

func TestMarkdownBuilderCallout(t *testing.T) {
	doc := NewMarkdownBuilder().
		AddCallout("info", "Review", "Great with two players.\nDrags with four.").
		Build()

	assert.Contains(t, doc, ">[!info]- Review\n")
	assert.Contains(t, doc, "> Great with two players.\n> Drags with four.\n")
}

func TestGetDecadeTag(t *testing.T) {
	mb := NewMarkdownBuilder()

	tests := []struct {
		year     int
		expected string
	}{
		{2023, "year/2020s"},
		{2017, "year/2010s"},
		{1995, "year/1990s"},
		{1935, "year/pre-1950s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mb.GetDecadeTag(tt.year))
	}
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "2-4", FormatRange(2, 4))
	assert.Equal(t, "2", FormatRange(2, 2))
	assert.Equal(t, "30", FormatRange(30, 0))
	assert.Equal(t, "60", FormatRange(0, 60))
}
