package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL UNIQUE,
	publisher TEXT,
	year INTEGER,
	min_players INTEGER,
	max_players INTEGER,
	play_time_min INTEGER,
	play_time_max INTEGER,
	description TEXT,
	categories TEXT,
	bgg_rating REAL,
	bgg_rank INTEGER,
	suggested_age INTEGER,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS library (
	game_id INTEGER PRIMARY KEY REFERENCES games(id) ON DELETE CASCADE,
	play_count INTEGER NOT NULL DEFAULT 0,
	rating INTEGER,
	review TEXT,
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// Store provides access to the catalog database.
type Store struct {
	db *sql.DB
}

// NewStore opens (and if necessary creates) the catalog database at the
// given path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to catalog database: %w", err), closeErr)
	}

	if _, err := db.Exec(schema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create catalog tables: %w", err), closeErr)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddGame inserts a catalog row along with its library row and returns the
// new identifier.
func (s *Store) AddGame(ctx context.Context, game *Game) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO games (title, publisher, year, min_players, max_players,
			play_time_min, play_time_max, description, categories,
			bgg_rating, bgg_rank, suggested_age)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.Title, game.Publisher, game.Year, game.MinPlayers, game.MaxPlayers,
		game.PlayTimeMin, game.PlayTimeMax, game.Description, marshalCategories(game.Categories),
		game.BGGRating, game.BGGRank, game.SuggestedAge,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert game: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO library (game_id) VALUES (?)`, id); err != nil {
		return 0, fmt.Errorf("failed to insert library entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	game.ID = id
	return id, nil
}

const gameColumns = `id, title, publisher, year, min_players, max_players,
	play_time_min, play_time_max, description, categories, bgg_rating, bgg_rank, suggested_age`

// FindByTitle returns the game with the given title, or nil when no such
// game exists. Titles match case-insensitively.
func (s *Store) FindByTitle(ctx context.Context, title string) (*Game, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE title = ? COLLATE NOCASE`, title)
	game, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up game %q: %w", title, err)
	}
	return game, nil
}

// GetGame returns the game with the given id.
func (s *Store) GetGame(ctx context.Context, id int64) (*Game, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, id)
	game, err := scanGame(row)
	if err != nil {
		return nil, fmt.Errorf("failed to load game %d: %w", id, err)
	}
	return game, nil
}

// ListMissing returns the id and title of every game whose target field is
// still unset, ordered by title ascending. The ordering is stable so backfill
// runs process records deterministically.
func (s *Store) ListMissing(ctx context.Context, field Field) ([]MissingRecord, error) {
	if !field.valid() {
		return nil, fmt.Errorf("invalid field %q", field)
	}

	condition := fmt.Sprintf("%s IS NULL", field)
	if field.textField() {
		condition = fmt.Sprintf("(%s IS NULL OR %s = '')", field, field)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, title FROM games WHERE %s ORDER BY title COLLATE NOCASE ASC`, condition))
	if err != nil {
		return nil, fmt.Errorf("failed to list games missing %s: %w", field, err)
	}
	defer func() { _ = rows.Close() }()

	var records []MissingRecord
	for rows.Next() {
		var rec MissingRecord
		if err := rows.Scan(&rec.ID, &rec.Title); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SetField persists one field value on one game. The write is idempotent:
// setting the same value twice has the same effect as once.
func (s *Store) SetField(ctx context.Context, id int64, field Field, value any) error {
	if !field.valid() {
		return fmt.Errorf("invalid field %q", field)
	}

	if ss, ok := value.([]string); ok {
		value = marshalCategories(ss)
	}

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE games SET %s = ? WHERE id = ?`, field), value, id)
	if err != nil {
		return fmt.Errorf("failed to set %s on game %d: %w", field, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("game %d not found", id)
	}
	return nil
}

// LogPlay increments the play counter for a game.
func (s *Store) LogPlay(ctx context.Context, gameID int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE library SET play_count = play_count + 1, updated_at = datetime('now')
		WHERE game_id = ?`, gameID)
	if err != nil {
		return fmt.Errorf("failed to log play: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("game %d has no library entry", gameID)
	}
	return nil
}

// Rate sets the personal rating (1-5 stars) and optional review for a game.
func (s *Store) Rate(ctx context.Context, gameID int64, stars int, review string) error {
	if stars < 1 || stars > 5 {
		return fmt.Errorf("rating must be between 1 and 5 stars, got %d", stars)
	}

	var reviewValue any
	if review != "" {
		reviewValue = review
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE library SET rating = ?, review = COALESCE(?, review), updated_at = datetime('now')
		WHERE game_id = ?`, stars, reviewValue, gameID)
	if err != nil {
		return fmt.Errorf("failed to rate game: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("game %d has no library entry", gameID)
	}
	return nil
}

// ListLibrary returns the full library view: every catalog row joined with
// its per-user data, ordered by title ascending.
func (s *Store) ListLibrary(ctx context.Context) ([]LibraryGame, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT g.id, g.title, g.publisher, g.year, g.min_players, g.max_players,
			g.play_time_min, g.play_time_max, g.description, g.categories,
			g.bgg_rating, g.bgg_rank, g.suggested_age,
			l.play_count, l.rating, l.review
		FROM games g
		JOIN library l ON l.game_id = g.id
		ORDER BY g.title COLLATE NOCASE ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list library: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []LibraryGame
	for rows.Next() {
		var entry LibraryGame
		var categories, review sql.NullString
		var publisher sql.NullString
		var year, minPlayers, maxPlayers, playMin, playMax, rank, age, rating sql.NullInt64
		var bggRating sql.NullFloat64
		var description sql.NullString

		if err := rows.Scan(&entry.ID, &entry.Title, &publisher, &year, &minPlayers, &maxPlayers,
			&playMin, &playMax, &description, &categories, &bggRating, &rank, &age,
			&entry.PlayCount, &rating, &review); err != nil {
			return nil, fmt.Errorf("failed to scan library row: %w", err)
		}

		entry.Publisher = nullableString(publisher)
		entry.Year = nullableInt(year)
		entry.MinPlayers = nullableInt(minPlayers)
		entry.MaxPlayers = nullableInt(maxPlayers)
		entry.PlayTimeMin = nullableInt(playMin)
		entry.PlayTimeMax = nullableInt(playMax)
		entry.Description = nullableString(description)
		entry.Categories = unmarshalCategories(categories)
		entry.BGGRating = nullableFloat(bggRating)
		entry.BGGRank = nullableInt(rank)
		entry.SuggestedAge = nullableInt(age)
		entry.Rating = nullableInt(rating)
		entry.Review = nullableString(review)

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*Game, error) {
	var game Game
	var publisher, description, categories sql.NullString
	var year, minPlayers, maxPlayers, playMin, playMax, rank, age sql.NullInt64
	var rating sql.NullFloat64

	if err := row.Scan(&game.ID, &game.Title, &publisher, &year, &minPlayers, &maxPlayers,
		&playMin, &playMax, &description, &categories, &rating, &rank, &age); err != nil {
		return nil, err
	}

	game.Publisher = nullableString(publisher)
	game.Year = nullableInt(year)
	game.MinPlayers = nullableInt(minPlayers)
	game.MaxPlayers = nullableInt(maxPlayers)
	game.PlayTimeMin = nullableInt(playMin)
	game.PlayTimeMax = nullableInt(playMax)
	game.Description = nullableString(description)
	game.Categories = unmarshalCategories(categories)
	game.BGGRating = nullableFloat(rating)
	game.BGGRank = nullableInt(rank)
	game.SuggestedAge = nullableInt(age)

	return &game, nil
}

func marshalCategories(categories []string) any {
	if len(categories) == 0 {
		return nil
	}
	data, err := json.Marshal(categories)
	if err != nil {
		return nil
	}
	return string(data)
}

func unmarshalCategories(value sql.NullString) []string {
	if !value.Valid || value.String == "" {
		return nil
	}
	var categories []string
	if err := json.Unmarshal([]byte(value.String), &categories); err != nil {
		return nil
	}
	return categories
}

func nullableString(v sql.NullString) *string {
	if !v.Valid || v.String == "" {
		return nil
	}
	s := v.String
	return &s
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
