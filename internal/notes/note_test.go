package notes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlaasanen/meeple/internal/catalog"
	"github.com/jlaasanen/meeple/internal/testutil"
)

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func fullGame() catalog.LibraryGame {
	return catalog.LibraryGame{
		Game: catalog.Game{
			ID:           1,
			Title:        "Azul",
			Publisher:    strPtr("Plan B Games"),
			Year:         intPtr(2017),
			MinPlayers:   intPtr(2),
			MaxPlayers:   intPtr(4),
			PlayTimeMin:  intPtr(30),
			PlayTimeMax:  intPtr(45),
			Description:  strPtr("Tile drafting for the royal palace of Evora."),
			Categories:   []string{"Abstract Strategy", "Family"},
			BGGRating:    floatPtr(7.8),
			BGGRank:      intPtr(67),
			SuggestedAge: intPtr(8),
		},
		PlayCount: 12,
		Rating:    intPtr(4),
		Review:    strPtr("Great with two players."),
	}
}

func TestRenderFullGame(t *testing.T) {
	doc := Render(fullGame())

	assert.Contains(t, doc, "title: \"Azul\"\n")
	assert.Contains(t, doc, "type: boardgame\n")
	assert.Contains(t, doc, "year: 2017\n")
	assert.Contains(t, doc, "publisher: \"Plan B Games\"\n")
	assert.Contains(t, doc, "players: 2-4\n")
	assert.Contains(t, doc, "playtime: 30-45 min\n")
	assert.Contains(t, doc, "suggested_age: 8\n")
	assert.Contains(t, doc, "bgg_rating: 7.8\n")
	assert.Contains(t, doc, "bgg_rank: 67\n")
	assert.Contains(t, doc, "play_count: 12\n")
	assert.Contains(t, doc, "rating: 4\n")
	assert.Contains(t, doc, "  - year/2010s\n")
	assert.Contains(t, doc, "  - category/abstract-strategy\n")
	assert.Contains(t, doc, "Tile drafting for the royal palace of Evora.")
	assert.Contains(t, doc, ">[!quote]- Review\n> Great with two players.")
}

func TestRenderSparseGame(t *testing.T) {
	doc := Render(catalog.LibraryGame{Game: catalog.Game{Title: "Mystery Box"}})

	assert.Contains(t, doc, "title: \"Mystery Box\"\n")
	assert.NotContains(t, doc, "year:")
	assert.NotContains(t, doc, "players:")
	assert.NotContains(t, doc, "bgg_rating:")
	assert.NotContains(t, doc, ">[!quote]")
}

func TestRenderParseRoundTrip(t *testing.T) {
	game := fullGame()
	note, err := ParseNote([]byte(Render(game)))
	require.NoError(t, err)

	assert.Equal(t, "Azul", note.Title)
	assert.Equal(t, "Plan B Games", *note.Publisher)
	assert.Equal(t, 2017, *note.Year)
	assert.Equal(t, 2, *note.MinPlayers)
	assert.Equal(t, 4, *note.MaxPlayers)
	assert.Equal(t, 30, *note.PlayTimeMin)
	assert.Equal(t, 45, *note.PlayTimeMax)
	assert.Equal(t, 8, *note.SuggestedAge)
	assert.Equal(t, 7.8, *note.BGGRating)
	assert.Equal(t, 67, *note.BGGRank)
	assert.Equal(t, []string{"Abstract Strategy", "Family"}, note.Categories)
	assert.Equal(t, "Tile drafting for the royal palace of Evora.", *note.Description)
}

func TestRenderParseRoundTripQuotedTitle(t *testing.T) {
	game := catalog.LibraryGame{Game: catalog.Game{Title: `7 Wonders: "Duel"`}}
	note, err := ParseNote([]byte(Render(game)))
	require.NoError(t, err)

	assert.Equal(t, `7 Wonders: "Duel"`, note.Title)
}

func TestRenderParseRoundTripZeroRating(t *testing.T) {
	game := catalog.LibraryGame{Game: catalog.Game{
		Title:     "Dud",
		BGGRating: floatPtr(0),
	}}
	doc := Render(game)
	assert.Contains(t, doc, "bgg_rating: 0.0\n")

	note, err := ParseNote([]byte(doc))
	require.NoError(t, err)
	require.NotNil(t, note.BGGRating)
	assert.Equal(t, 0.0, *note.BGGRating)
}

func TestExportWritesAndSkips(t *testing.T) {
	env := testutil.NewTestEnv(t)
	games := []catalog.LibraryGame{
		fullGame(),
		{Game: catalog.Game{Title: "Ticket to Ride: Europe"}},
	}

	result, err := Export(games, env.RootDir(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Written)
	assert.Equal(t, 0, result.Skipped)

	// Colon in the title must be sanitized out of the filename.
	env.RequireFileExists("Ticket to Ride - Europe.md")
	env.AssertFileContains("Azul.md", "title: \"Azul\"")

	result, err = Export(games, env.RootDir(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Written)
	assert.Equal(t, 2, result.Skipped)

	result, err = Export(games, env.RootDir(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Written)
}

func TestListNoteFiles(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("Azul.md", "x")
	env.WriteFileString("notes.txt", "x")
	env.MkdirAll("attachments")

	files, err := ListNoteFiles(env.RootDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"Azul.md"}, files)
}

func TestRenderGolden(t *testing.T) {
	golden := testutil.NewGoldenHelper(t, "testdata")
	golden.AssertGoldenString("azul.md", Render(fullGame()))
}

func TestRenderOmitsEmptyReview(t *testing.T) {
	game := fullGame()
	game.Review = nil
	doc := Render(game)

	assert.False(t, strings.Contains(doc, ">[!quote]"))
}
