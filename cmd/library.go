package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jlaasanen/meeple/internal/cache"
	"github.com/jlaasanen/meeple/internal/catalog"
	"github.com/jlaasanen/meeple/internal/enrichment/ai"
	"github.com/jlaasanen/meeple/internal/fileutil"
)

// AddCmd represents the add command
type AddCmd struct {
	Title string `arg:"" help:"Game title to look up and add"`
}

func (a *AddCmd) Run() error {
	ctx := context.Background()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	existing, err := store.FindByTitle(ctx, a.Title)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%q is already in the library", existing.Title)
	}

	fields, err := fetchLookup(ctx, a.Title)
	if err != nil {
		return err
	}

	game := gameFromFields(a.Title, fields)
	id, err := store.AddGame(ctx, game)
	if err != nil {
		return err
	}

	slog.Info("Game added to library", "id", id, "title", game.Title)
	printGame(game, fields.Confidence)
	return nil
}

// IdentifyCmd represents the identify command
type IdentifyCmd struct {
	Photo string `arg:"" type:"existingfile" help:"Path to a box-art photo"`
	Title string `help:"Optional title hint for the photo"`
}

func (i *IdentifyCmd) Run() error {
	ctx := context.Background()

	dataURL, err := ai.PreparePhotoFile(i.Photo, 0)
	if err != nil {
		return err
	}

	client, err := newAIClient()
	if err != nil {
		return err
	}

	raw, err := client.IdentifyPhoto(ctx, dataURL, i.Title)
	if err != nil {
		return err
	}

	fields := ai.ParseFields(raw)
	if fields.Title == nil {
		return fmt.Errorf("could not identify a game from %s", i.Photo)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	existing, err := store.FindByTitle(ctx, *fields.Title)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%q is already in the library", existing.Title)
	}

	game := gameFromFields(*fields.Title, fields)
	id, err := store.AddGame(ctx, game)
	if err != nil {
		return err
	}

	slog.Info("Game identified and added", "id", id, "title", game.Title, "confidence", fields.Confidence)
	printGame(game, fields.Confidence)
	return nil
}

// LookupCmd represents the lookup command
type LookupCmd struct {
	Title string `arg:"" help:"Game title to look up"`
}

func (l *LookupCmd) Run() error {
	ctx := context.Background()

	fields, err := fetchLookup(ctx, l.Title)
	if err != nil {
		return err
	}

	printGame(gameFromFields(l.Title, fields), fields.Confidence)
	return nil
}

// ListCmd represents the list command
type ListCmd struct{}

func (l *ListCmd) Run() error {
	ctx := context.Background()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	games, err := store.ListLibrary(ctx)
	if err != nil {
		return err
	}

	if len(games) == 0 {
		fmt.Println("Library is empty.")
		return nil
	}

	for _, game := range games {
		line := game.Title
		if game.Year != nil {
			line += fmt.Sprintf(" (%d)", *game.Year)
		}
		if game.MinPlayers != nil || game.MaxPlayers != nil {
			line += fmt.Sprintf(", %s players", fileutil.FormatRange(intOrZero(game.MinPlayers), intOrZero(game.MaxPlayers)))
		}
		line += fmt.Sprintf(" - %d plays", game.PlayCount)
		if game.Rating != nil {
			line += fmt.Sprintf(", rated %d/5", *game.Rating)
		}
		fmt.Println(line)
	}
	return nil
}

// LogPlayCmd represents the log-play command
type LogPlayCmd struct {
	Title string `arg:"" help:"Game title to record a play for"`
}

func (l *LogPlayCmd) Run() error {
	ctx := context.Background()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	game, err := findGame(ctx, store, l.Title)
	if err != nil {
		return err
	}

	if err := store.LogPlay(ctx, game.ID); err != nil {
		return err
	}

	slog.Info("Play logged", "title", game.Title)
	return nil
}

// RateCmd represents the rate command
type RateCmd struct {
	Title  string `arg:"" help:"Game title to rate"`
	Stars  int    `short:"s" required:"" help:"Personal rating from 1 to 5 stars"`
	Review string `help:"Optional short review"`
}

func (r *RateCmd) Run() error {
	ctx := context.Background()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	game, err := findGame(ctx, store, r.Title)
	if err != nil {
		return err
	}

	if err := store.Rate(ctx, game.ID, r.Stars, r.Review); err != nil {
		return err
	}

	slog.Info("Game rated", "title", game.Title, "stars", r.Stars)
	return nil
}

// fetchLookup performs an AI game lookup through the cache, falling back to
// a direct call when the cache cannot be opened.
func fetchLookup(ctx context.Context, title string) (ai.Fields, error) {
	client, err := newAIClient()
	if err != nil {
		return ai.Fields{}, err
	}

	cacheDB, err := openCache()
	if err != nil {
		slog.Warn("Lookup cache unavailable", "error", err)
		raw, err := client.LookupGame(ctx, title)
		if err != nil {
			return ai.Fields{}, err
		}
		return ai.ParseFields(raw), nil
	}
	defer func() { _ = cacheDB.Close() }()

	raw, cached, err := cache.GetOrFetch(cacheDB, "lookup", title, cacheTTL(), func() (string, error) {
		return client.LookupGame(ctx, title)
	})
	if err != nil {
		return ai.Fields{}, err
	}
	if cached {
		slog.Debug("Lookup served from cache", "title", title)
	}

	return ai.ParseFields(raw), nil
}

// gameFromFields builds a catalog row from parsed AI fields, preferring the
// canonical title from the response over the user's input.
func gameFromFields(title string, fields ai.Fields) *catalog.Game {
	game := &catalog.Game{
		Title:        title,
		Publisher:    fields.Publisher,
		Year:         fields.Year,
		MinPlayers:   fields.MinPlayers,
		MaxPlayers:   fields.MaxPlayers,
		PlayTimeMin:  fields.PlayTimeMin,
		PlayTimeMax:  fields.PlayTimeMax,
		Description:  fields.Description,
		Categories:   fields.Categories,
		BGGRating:    fields.BGGRating,
		BGGRank:      fields.BGGRank,
		SuggestedAge: fields.SuggestedAge,
	}
	if fields.Title != nil {
		game.Title = *fields.Title
	}
	return game
}

func findGame(ctx context.Context, store *catalog.Store, title string) (*catalog.Game, error) {
	game, err := store.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("%q is not in the library", title)
	}
	return game, nil
}

func printGame(game *catalog.Game, confidence ai.Confidence) {
	fmt.Printf("%-13s %s\n", "Title:", game.Title)
	if game.Year != nil {
		fmt.Printf("%-13s %d\n", "Year:", *game.Year)
	}
	if game.Publisher != nil {
		fmt.Printf("%-13s %s\n", "Publisher:", *game.Publisher)
	}
	if game.MinPlayers != nil || game.MaxPlayers != nil {
		fmt.Printf("%-13s %s\n", "Players:", fileutil.FormatRange(intOrZero(game.MinPlayers), intOrZero(game.MaxPlayers)))
	}
	if game.PlayTimeMin != nil || game.PlayTimeMax != nil {
		fmt.Printf("%-13s %s min\n", "Play time:", fileutil.FormatRange(intOrZero(game.PlayTimeMin), intOrZero(game.PlayTimeMax)))
	}
	if game.SuggestedAge != nil {
		fmt.Printf("%-13s %d+\n", "Age:", *game.SuggestedAge)
	}
	if game.BGGRating != nil {
		fmt.Printf("%-13s %.1f/10\n", "BGG rating:", *game.BGGRating)
	}
	if game.BGGRank != nil {
		fmt.Printf("%-13s #%d\n", "BGG rank:", *game.BGGRank)
	}
	if len(game.Categories) > 0 {
		fmt.Printf("%-13s %s\n", "Categories:", strings.Join(game.Categories, ", "))
	}
	if game.Description != nil {
		fmt.Printf("%-13s %s\n", "Description:", *game.Description)
	}
	fmt.Printf("%-13s %s\n", "Confidence:", confidence)
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
