// Package catalog stores the shared game catalog and the per-user library in
// a local SQLite database.
package catalog

import "fmt"

// Game is a shared, de-duplicated catalog entry, independent of any user.
// Pointer fields are nil when the value is unknown; the backfill pipeline
// exists to fill them in.
type Game struct {
	ID           int64
	Title        string
	Publisher    *string
	Year         *int
	MinPlayers   *int
	MaxPlayers   *int
	PlayTimeMin  *int
	PlayTimeMax  *int
	Description  *string
	Categories   []string
	BGGRating    *float64
	BGGRank      *int
	SuggestedAge *int
}

// LibraryGame is the display view of a library entry: the catalog row joined
// with the user's personal data.
type LibraryGame struct {
	Game
	PlayCount int
	Rating    *int // personal rating, 1-5 stars
	Review    *string
}

// MissingRecord identifies a catalog row whose target field is still unset.
type MissingRecord struct {
	ID    int64
	Title string
}

// Field names a backfillable catalog column. Only the fields enumerated here
// can be written through SetField, so a caller can never inject an arbitrary
// column name.
type Field string

const (
	FieldSuggestedAge Field = "suggested_age"
	FieldBGGRating    Field = "bgg_rating"
	FieldBGGRank      Field = "bgg_rank"
	FieldDescription  Field = "description"
	FieldCategories   Field = "categories"
)

// textField reports whether the column is textual, where an empty string
// counts as missing alongside NULL.
func (f Field) textField() bool {
	return f == FieldDescription || f == FieldCategories
}

func (f Field) valid() bool {
	switch f {
	case FieldSuggestedAge, FieldBGGRating, FieldBGGRank, FieldDescription, FieldCategories:
		return true
	}
	return false
}

// ParseField maps a user-facing field name to its catalog Field.
func ParseField(name string) (Field, error) {
	switch name {
	case "age":
		return FieldSuggestedAge, nil
	case "rating":
		return FieldBGGRating, nil
	case "rank":
		return FieldBGGRank, nil
	case "description":
		return FieldDescription, nil
	case "categories":
		return FieldCategories, nil
	default:
		return "", fmt.Errorf("unknown field %q (want age, rating, rank, description or categories)", name)
	}
}
