package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldsFullResponse(t *testing.T) {
	raw := `{
		"title": " Catan ",
		"publisher": "Kosmos",
		"year": 1995,
		"minPlayers": 3,
		"maxPlayers": 4,
		"playTimeMin": 60,
		"playTimeMax": 120,
		"description": "Trade and build settlements.",
		"categories": ["Strategy", " Negotiation ", ""],
		"bggRating": 7.456,
		"bggRank": 429.9,
		"suggestedAge": 10,
		"confidence": "high"
	}`

	fields := ParseFields(raw)

	require.NotNil(t, fields.Title)
	assert.Equal(t, "Catan", *fields.Title)
	require.NotNil(t, fields.Publisher)
	assert.Equal(t, "Kosmos", *fields.Publisher)
	require.NotNil(t, fields.Year)
	assert.Equal(t, 1995, *fields.Year)
	require.NotNil(t, fields.MinPlayers)
	assert.Equal(t, 3, *fields.MinPlayers)
	require.NotNil(t, fields.MaxPlayers)
	assert.Equal(t, 4, *fields.MaxPlayers)
	require.NotNil(t, fields.PlayTimeMin)
	assert.Equal(t, 60, *fields.PlayTimeMin)
	require.NotNil(t, fields.PlayTimeMax)
	assert.Equal(t, 120, *fields.PlayTimeMax)
	require.NotNil(t, fields.Description)
	assert.Equal(t, "Trade and build settlements.", *fields.Description)
	assert.Equal(t, []string{"Strategy", "Negotiation"}, fields.Categories)
	require.NotNil(t, fields.BGGRating)
	assert.Equal(t, 7.5, *fields.BGGRating)
	require.NotNil(t, fields.BGGRank)
	assert.Equal(t, 429, *fields.BGGRank)
	require.NotNil(t, fields.SuggestedAge)
	assert.Equal(t, 10, *fields.SuggestedAge)
	assert.Equal(t, ConfidenceHigh, fields.Confidence)
}

func TestParseFieldsSuggestedAge(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int
	}{
		{name: "valid age", raw: `{"suggestedAge": 10}`, want: intPtr(10)},
		{name: "lower bound", raw: `{"suggestedAge": 1}`, want: intPtr(1)},
		{name: "upper bound", raw: `{"suggestedAge": 21}`, want: intPtr(21)},
		{name: "fractional floors", raw: `{"suggestedAge": 8.9}`, want: intPtr(8)},
		{name: "zero", raw: `{"suggestedAge": 0}`, want: nil},
		{name: "negative", raw: `{"suggestedAge": -5}`, want: nil},
		{name: "above range", raw: `{"suggestedAge": 22}`, want: nil},
		{name: "numeric string", raw: `{"suggestedAge": "10"}`, want: nil},
		{name: "word", raw: `{"suggestedAge": "ten"}`, want: nil},
		{name: "null", raw: `{"suggestedAge": null}`, want: nil},
		{name: "missing", raw: `{}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ParseFields(tt.raw)
			assert.Equal(t, tt.want, fields.SuggestedAge)
		})
	}
}

func TestParseFieldsRating(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{name: "rounds to one decimal", raw: `{"bggRating": 7.456}`, want: floatPtr(7.5)},
		{name: "zero is valid", raw: `{"bggRating": 0}`, want: floatPtr(0)},
		{name: "ten is valid", raw: `{"bggRating": 10}`, want: floatPtr(10)},
		{name: "above range", raw: `{"bggRating": 10.5}`, want: nil},
		{name: "negative", raw: `{"bggRating": -1}`, want: nil},
		{name: "non-numeric", raw: `{"bggRating": "great"}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ParseFields(tt.raw)
			assert.Equal(t, tt.want, fields.BGGRating)
		})
	}
}

func TestParseFieldsRank(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int
	}{
		{name: "positive", raw: `{"bggRank": 429}`, want: intPtr(429)},
		{name: "fractional floors", raw: `{"bggRank": 429.9}`, want: intPtr(429)},
		{name: "zero", raw: `{"bggRank": 0}`, want: nil},
		{name: "negative", raw: `{"bggRank": -3}`, want: nil},
		{name: "non-numeric", raw: `{"bggRank": "first"}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ParseFields(tt.raw)
			assert.Equal(t, tt.want, fields.BGGRank)
		})
	}
}

func TestParseFieldsConfidence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Confidence
	}{
		{name: "high", raw: `{"confidence": "high"}`, want: ConfidenceHigh},
		{name: "medium", raw: `{"confidence": "medium"}`, want: ConfidenceMedium},
		{name: "low", raw: `{"confidence": "low"}`, want: ConfidenceLow},
		{name: "mixed case", raw: `{"confidence": "High"}`, want: ConfidenceHigh},
		{name: "unrecognized", raw: `{"confidence": "certain"}`, want: ConfidenceLow},
		{name: "numeric", raw: `{"confidence": 0.9}`, want: ConfidenceLow},
		{name: "missing", raw: `{}`, want: ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFields(tt.raw).Confidence)
		})
	}
}

func TestParseFieldsFenceTransparency(t *testing.T) {
	bare := `{"suggestedAge": 10, "confidence": "high"}`

	variants := []struct {
		name string
		raw  string
	}{
		{name: "json fence", raw: "```json\n" + bare + "\n```"},
		{name: "plain fence", raw: "```\n" + bare + "\n```"},
		{name: "fence with surrounding whitespace", raw: "\n\n```json\n" + bare + "\n```\n\n"},
	}

	want := ParseFields(bare)
	for _, tt := range variants {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, want, ParseFields(tt.raw))
		})
	}
}

func TestParseFieldsFencedFractionalAge(t *testing.T) {
	fields := ParseFields("```json\n{\"suggestedAge\": 8.9}\n```")
	require.NotNil(t, fields.SuggestedAge)
	assert.Equal(t, 8, *fields.SuggestedAge)
}

func TestParseFieldsDegradesToUnknown(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "whitespace", raw: "  \n\t "},
		{name: "prose", raw: "I could not find that game, sorry."},
		{name: "truncated json", raw: `{"title": "Cat`},
		{name: "json array", raw: `[1, 2, 3]`},
		{name: "bare fence", raw: "```json\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ParseFields(tt.raw)
			assert.Equal(t, Fields{Confidence: ConfidenceLow}, fields)
		})
	}
}

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
