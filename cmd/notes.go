package cmd

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/jlaasanen/meeple/internal/catalog"
	"github.com/jlaasanen/meeple/internal/config"
	"github.com/jlaasanen/meeple/internal/notes"
)

// ExportCmd represents the export command
type ExportCmd struct {
	Output string `short:"o" help:"Directory for markdown notes (defaults to MarkdownOutputDir from config)"`
}

func (e *ExportCmd) Run() error {
	ctx := context.Background()

	dir := e.Output
	if dir == "" {
		dir = viper.GetString("MarkdownOutputDir")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	games, err := store.ListLibrary(ctx)
	if err != nil {
		return err
	}

	result, err := notes.Export(games, dir, config.OverwriteNotes)
	if err != nil {
		return err
	}

	slog.Info("Notes exported", "written", result.Written, "skipped", result.Skipped, "directory", dir)
	return nil
}

// ImportNotesCmd represents the import-notes command
type ImportNotesCmd struct {
	Input string `short:"d" help:"Directory containing markdown notes (defaults to MarkdownOutputDir from config)"`
}

func (i *ImportNotesCmd) Run() error {
	ctx := context.Background()

	dir := i.Input
	if dir == "" {
		dir = viper.GetString("MarkdownOutputDir")
	}

	files, err := notes.ListNoteFiles(dir)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var added, updated, unchanged int
	for _, name := range files {
		note, err := notes.ParseNoteFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("Skipping unparseable note", "file", name, "error", err)
			continue
		}

		game, err := store.FindByTitle(ctx, note.Title)
		if err != nil {
			return err
		}

		if game == nil {
			if _, err := store.AddGame(ctx, gameFromNote(note)); err != nil {
				return err
			}
			added++
			continue
		}

		filled, err := fillMissingFields(ctx, store, game, note)
		if err != nil {
			return err
		}
		if filled > 0 {
			updated++
		} else {
			unchanged++
		}
	}

	slog.Info("Notes imported", "added", added, "updated", updated, "unchanged", unchanged)
	return nil
}

// fillMissingFields writes note values into catalog fields that are still
// unset. Existing values are never touched, so re-import is idempotent.
func fillMissingFields(ctx context.Context, store *catalog.Store, game *catalog.Game, note *notes.GameNote) (int, error) {
	writes := map[catalog.Field]any{}

	if game.SuggestedAge == nil && note.SuggestedAge != nil {
		writes[catalog.FieldSuggestedAge] = *note.SuggestedAge
	}
	if game.BGGRating == nil && note.BGGRating != nil {
		writes[catalog.FieldBGGRating] = *note.BGGRating
	}
	if game.BGGRank == nil && note.BGGRank != nil {
		writes[catalog.FieldBGGRank] = *note.BGGRank
	}
	if (game.Description == nil || *game.Description == "") && note.Description != nil {
		writes[catalog.FieldDescription] = *note.Description
	}
	if len(game.Categories) == 0 && len(note.Categories) > 0 {
		writes[catalog.FieldCategories] = note.Categories
	}

	for field, value := range writes {
		if err := store.SetField(ctx, game.ID, field, value); err != nil {
			return 0, err
		}
	}
	return len(writes), nil
}

// gameFromNote builds a catalog row for a note whose game is not in the
// library yet.
func gameFromNote(note *notes.GameNote) *catalog.Game {
	return &catalog.Game{
		Title:        note.Title,
		Publisher:    note.Publisher,
		Year:         note.Year,
		MinPlayers:   note.MinPlayers,
		MaxPlayers:   note.MaxPlayers,
		PlayTimeMin:  note.PlayTimeMin,
		PlayTimeMax:  note.PlayTimeMax,
		Description:  note.Description,
		Categories:   note.Categories,
		BGGRating:    note.BGGRating,
		BGGRank:      note.BGGRank,
		SuggestedAge: note.SuggestedAge,
	}
}
