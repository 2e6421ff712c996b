package ai

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/jlaasanen/meeple/internal/normalize"
)

// ParseFields parses a raw AI response into typed field values. It is a total
// function: markdown fences are stripped, the remainder is decoded as a JSON
// object, and each recognized key is normalized independently. Anything that
// cannot be decoded or validated degrades to unknown rather than an error.
func ParseFields(raw string) Fields {
	fields := Fields{Confidence: ConfidenceLow}

	cleaned := stripFences(raw)
	if cleaned == "" {
		return fields
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		slog.Debug("AI response is not valid JSON, treating all fields as unknown", "error", err)
		return fields
	}

	fields.Title = normalize.TrimmedString(decoded["title"])
	fields.Publisher = normalize.TrimmedString(decoded["publisher"])
	fields.Year = normalize.PositiveInt(decoded["year"])
	fields.MinPlayers = normalize.PositiveInt(decoded["minPlayers"])
	fields.MaxPlayers = normalize.PositiveInt(decoded["maxPlayers"])
	fields.PlayTimeMin = normalize.PositiveInt(decoded["playTimeMin"])
	fields.PlayTimeMax = normalize.PositiveInt(decoded["playTimeMax"])
	fields.Description = normalize.TrimmedString(decoded["description"])
	fields.Categories = normalize.StringList(decoded["categories"])
	fields.BGGRating = normalize.DecimalInRange(decoded["bggRating"], 0, 10, 1)
	fields.BGGRank = normalize.PositiveInt(decoded["bggRank"])
	fields.SuggestedAge = normalize.IntInRange(decoded["suggestedAge"], 1, 21)
	fields.Confidence = parseConfidence(decoded["confidence"])

	return fields
}

// stripFences removes a surrounding markdown code fence (with or without a
// language tag) so that fenced and bare responses parse identically.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func parseConfidence(value any) Confidence {
	s, ok := value.(string)
	if !ok {
		return ConfidenceLow
	}
	switch Confidence(strings.ToLower(strings.TrimSpace(s))) {
	case ConfidenceHigh:
		return ConfidenceHigh
	case ConfidenceMedium:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
