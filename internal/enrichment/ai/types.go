// Package ai enriches board game records through an OpenAI-compatible
// knowledge/vision service: it builds prompts, issues single-shot chat
// completion calls, and parses the free-form JSON responses into typed,
// bounded field values.
package ai

// Confidence is the coarse self-reported reliability tag the service
// attaches to a lookup result.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Fields contains game metadata extracted from an AI response.
// Pointer fields distinguish "unknown" from a zero value; a Fields with every
// pointer nil and ConfidenceLow is a legitimate "could not determine" result,
// not an error.
type Fields struct {
	// Title is the canonical game title.
	Title *string

	// Publisher is the publishing company name.
	Publisher *string

	// Year is the original publication year.
	Year *int

	// MinPlayers and MaxPlayers bound the supported player count.
	// No cross-field ordering is enforced here; that belongs to the caller.
	MinPlayers *int
	MaxPlayers *int

	// PlayTimeMin and PlayTimeMax bound the typical play time in minutes.
	PlayTimeMin *int
	PlayTimeMax *int

	// Description is a short summary of the game.
	Description *string

	// Categories are genre/mechanic tags, ordered as reported.
	Categories []string

	// BGGRating is the BoardGameGeek aggregate rating in [0, 10],
	// rounded to one decimal place.
	BGGRating *float64

	// BGGRank is the BoardGameGeek overall rank (1 or greater).
	BGGRank *int

	// SuggestedAge is the recommended minimum player age in [1, 21].
	SuggestedAge *int

	// Confidence reports how sure the service was about this result.
	// Defaults to ConfidenceLow when absent or unrecognized.
	Confidence Confidence
}
