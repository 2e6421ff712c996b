package ai

import (
	"fmt"
	"strings"
)

// The prompt templates are versioned data, not logic: they can change without
// affecting the parser contract as long as the response schema keys stay the
// same.

const responseSchema = `{
  "title": string,
  "publisher": string or null,
  "year": positive integer or null,
  "minPlayers": positive integer or null,
  "maxPlayers": positive integer or null,
  "playTimeMin": minutes as positive integer or null,
  "playTimeMax": minutes as positive integer or null,
  "description": string or null,
  "categories": array of strings or null,
  "bggRating": number between 0 and 10 or null,
  "bggRank": positive integer or null,
  "suggestedAge": integer between 1 and 21 or null,
  "confidence": "high", "medium" or "low"
}`

const lookupPromptTemplate = `You are a board game database. Return valid JSON only. No markdown fences, no commentary.

Look up the board game %q and report its metadata as a single JSON object matching this schema:

%s

Use null for any field you are not sure about. Set "confidence" to reflect how certain you are that you identified the right game.`

const agePromptTemplate = `You are a board game database. Return valid JSON only. No markdown fences, no commentary.

What is the publisher's suggested minimum player age for the board game %q?

Respond with a single JSON object:
{"suggestedAge": integer between 1 and 21 or null, "confidence": "high", "medium" or "low"}

Use null if you do not know the game or its age recommendation.`

const identifyPromptTemplate = `You are a board game database. Return valid JSON only. No markdown fences, no commentary.

Identify the board game shown on this box cover photo%s and report its metadata as a single JSON object matching this schema:

%s

Use null for any field you are not sure about. Set "confidence" to reflect how certain you are that you identified the right game.`

// lookupPrompt builds the full-metadata lookup prompt for a title.
func lookupPrompt(title string) string {
	return fmt.Sprintf(lookupPromptTemplate, title, responseSchema)
}

// agePrompt builds the single-field suggested-age prompt for a title.
func agePrompt(title string) string {
	return fmt.Sprintf(agePromptTemplate, title)
}

// identifyPrompt builds the vision prompt for a box-art photo, with an
// optional title hint from the user.
func identifyPrompt(titleHint string) string {
	hint := ""
	if strings.TrimSpace(titleHint) != "" {
		hint = fmt.Sprintf(" (the user believes it may be %q)", strings.TrimSpace(titleHint))
	}
	return fmt.Sprintf(identifyPromptTemplate, hint, responseSchema)
}
