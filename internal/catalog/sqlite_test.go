package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestAddAndFindGame(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	game := &Game{
		Title:      "Catan",
		Publisher:  strPtr("Kosmos"),
		Year:       intPtr(1995),
		MinPlayers: intPtr(3),
		MaxPlayers: intPtr(4),
		Categories: []string{"Strategy", "Negotiation"},
	}
	id, err := store.AddGame(ctx, game)
	require.NoError(t, err)
	assert.Equal(t, id, game.ID)

	found, err := store.FindByTitle(ctx, "catan") // case-insensitive
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Catan", found.Title)
	assert.Equal(t, "Kosmos", *found.Publisher)
	assert.Equal(t, 1995, *found.Year)
	assert.Equal(t, []string{"Strategy", "Negotiation"}, found.Categories)
	assert.Nil(t, found.SuggestedAge)
}

func TestFindByTitleMissing(t *testing.T) {
	store := newTestStore(t)

	found, err := store.FindByTitle(context.Background(), "Nope")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDuplicateTitleRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddGame(ctx, &Game{Title: "Azul"})
	require.NoError(t, err)

	_, err = store.AddGame(ctx, &Game{Title: "Azul"})
	require.Error(t, err)
}

func TestListMissingOrderAndExclusion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddGame(ctx, &Game{Title: "Wingspan"})
	require.NoError(t, err)
	_, err = store.AddGame(ctx, &Game{Title: "azul"})
	require.NoError(t, err)
	withAge := &Game{Title: "Catan", SuggestedAge: intPtr(10)}
	_, err = store.AddGame(ctx, withAge)
	require.NoError(t, err)

	records, err := store.ListMissing(ctx, FieldSuggestedAge)
	require.NoError(t, err)

	// Only records missing the field, in case-insensitive title order.
	require.Len(t, records, 2)
	assert.Equal(t, "azul", records[0].Title)
	assert.Equal(t, "Wingspan", records[1].Title)
}

func TestListMissingTreatsEmptyTextAsMissing(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	game := &Game{Title: "Azul"}
	id, err := store.AddGame(ctx, game)
	require.NoError(t, err)
	require.NoError(t, store.SetField(ctx, id, FieldDescription, ""))

	records, err := store.ListMissing(ctx, FieldDescription)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestSetFieldRemovesFromWorkList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	game := &Game{Title: "Azul"}
	id, err := store.AddGame(ctx, game)
	require.NoError(t, err)

	require.NoError(t, store.SetField(ctx, id, FieldSuggestedAge, 8))

	records, err := store.ListMissing(ctx, FieldSuggestedAge)
	require.NoError(t, err)
	assert.Empty(t, records)

	loaded, err := store.GetGame(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, loaded.SuggestedAge)
	assert.Equal(t, 8, *loaded.SuggestedAge)
}

func TestSetFieldIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddGame(ctx, &Game{Title: "Azul"})
	require.NoError(t, err)

	require.NoError(t, store.SetField(ctx, id, FieldSuggestedAge, 8))
	require.NoError(t, store.SetField(ctx, id, FieldSuggestedAge, 8))

	loaded, err := store.GetGame(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 8, *loaded.SuggestedAge)
}

func TestSetFieldCategories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddGame(ctx, &Game{Title: "Azul"})
	require.NoError(t, err)

	require.NoError(t, store.SetField(ctx, id, FieldCategories, []string{"Abstract", "Tile Placement"}))

	loaded, err := store.GetGame(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Abstract", "Tile Placement"}, loaded.Categories)
}

func TestSetFieldUnknownGame(t *testing.T) {
	store := newTestStore(t)

	err := store.SetField(context.Background(), 999, FieldSuggestedAge, 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSetFieldInvalidField(t *testing.T) {
	store := newTestStore(t)

	err := store.SetField(context.Background(), 1, Field("title; DROP TABLE games"), "x")
	require.Error(t, err)
}

func TestLogPlayAndRate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddGame(ctx, &Game{Title: "Azul"})
	require.NoError(t, err)

	require.NoError(t, store.LogPlay(ctx, id))
	require.NoError(t, store.LogPlay(ctx, id))
	require.NoError(t, store.Rate(ctx, id, 5, "Great tile game."))

	library, err := store.ListLibrary(ctx)
	require.NoError(t, err)
	require.Len(t, library, 1)
	assert.Equal(t, 2, library[0].PlayCount)
	require.NotNil(t, library[0].Rating)
	assert.Equal(t, 5, *library[0].Rating)
	require.NotNil(t, library[0].Review)
	assert.Equal(t, "Great tile game.", *library[0].Review)
}

func TestRateValidatesStars(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddGame(ctx, &Game{Title: "Azul"})
	require.NoError(t, err)

	require.Error(t, store.Rate(ctx, id, 0, ""))
	require.Error(t, store.Rate(ctx, id, 6, ""))
}

func TestParseField(t *testing.T) {
	tests := []struct {
		name    string
		want    Field
		wantErr bool
	}{
		{name: "age", want: FieldSuggestedAge},
		{name: "rating", want: FieldBGGRating},
		{name: "rank", want: FieldBGGRank},
		{name: "description", want: FieldDescription},
		{name: "categories", want: FieldCategories},
		{name: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, err := ParseField(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, field)
		})
	}
}
