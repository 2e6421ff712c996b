// Package notes renders library entries as markdown notes with YAML
// frontmatter and parses those notes back for re-import.
package notes

import (
	"fmt"
	"os"
	"strings"

	"github.com/jlaasanen/meeple/internal/catalog"
	"github.com/jlaasanen/meeple/internal/fileutil"
)

// ExportResult summarizes an export run.
type ExportResult struct {
	Written int
	Skipped int
}

// Render builds the markdown note for a single library entry.
func Render(game catalog.LibraryGame) string {
	mb := fileutil.NewMarkdownBuilder()

	mb.AddTitle(game.Title).AddType("boardgame")

	if game.Year != nil {
		mb.AddYear(*game.Year)
	}
	if game.Publisher != nil {
		mb.AddField("publisher", *game.Publisher)
	}

	minPlayers, maxPlayers := intOrZero(game.MinPlayers), intOrZero(game.MaxPlayers)
	mb.AddPlayerCount(minPlayers, maxPlayers)
	mb.AddPlayTime(intOrZero(game.PlayTimeMin), intOrZero(game.PlayTimeMax))

	if game.SuggestedAge != nil {
		mb.AddField("suggested_age", *game.SuggestedAge)
	}
	if game.BGGRating != nil {
		mb.AddField("bgg_rating", *game.BGGRating)
	}
	if game.BGGRank != nil {
		mb.AddField("bgg_rank", *game.BGGRank)
	}
	mb.AddStringArray("categories", game.Categories)

	mb.AddField("play_count", game.PlayCount)
	if game.Rating != nil {
		mb.AddField("rating", *game.Rating)
	}

	tags := []string{"boardgame"}
	if game.Year != nil {
		tags = append(tags, mb.GetDecadeTag(*game.Year))
	}
	tags = append(tags, CategoryTags(game.Categories)...)
	mb.AddTags(tags...)

	if game.Description != nil {
		mb.AddParagraph(*game.Description)
	}
	if game.Review != nil {
		mb.AddCallout("quote", "Review", *game.Review)
	}

	return mb.Build()
}

// Export writes one note per library entry into directory. Existing notes
// are skipped unless overwrite is set.
func Export(games []catalog.LibraryGame, directory string, overwrite bool) (ExportResult, error) {
	var result ExportResult

	for _, game := range games {
		path := fileutil.NotePath(game.Title, directory)
		written, err := fileutil.WriteFileWithOverwrite(path, []byte(Render(game)), 0644, overwrite)
		if err != nil {
			return result, fmt.Errorf("failed to write note for %q: %w", game.Title, err)
		}
		if written {
			result.Written++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}

// ListNoteFiles returns the markdown files directly under directory.
func ListNoteFiles(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".md") {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
