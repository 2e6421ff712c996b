package config

import (
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteNotes controls whether existing markdown notes should be overwritten
	OverwriteNotes bool
	// OpenAIAPIKey is the API key for the AI lookup service
	OpenAIAPIKey string
	// OpenAIModel is the chat model used for lookups (must support vision for photo identification)
	OpenAIModel string
	// OpenAIBaseURL overrides the service endpoint for OpenAI-compatible providers
	OpenAIBaseURL string
	// DatabasePath is the path to the catalog SQLite database
	DatabasePath string
	// BackfillDelay is the minimum delay between AI calls during a backfill run
	BackfillDelay time.Duration
	// BackfillRetries is the number of extra attempts per record on transient failures
	BackfillRetries int
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("MarkdownOutputDir", "./markdown/")
	viper.SetDefault("OverwriteNotes", false)
	viper.SetDefault("database.path", "./meeple.db")
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("backfill.delay", "1s")
	viper.SetDefault("backfill.retries", 2)

	// Get values from viper
	OverwriteNotes = viper.GetBool("OverwriteNotes")
	OpenAIAPIKey = viper.GetString("openai.api_key")
	OpenAIModel = viper.GetString("openai.model")
	OpenAIBaseURL = viper.GetString("openai.base_url")
	DatabasePath = viper.GetString("database.path")
	BackfillDelay = viper.GetDuration("backfill.delay")
	BackfillRetries = viper.GetInt("backfill.retries")
}

// SetOverwriteNotes sets the OverwriteNotes flag
func SetOverwriteNotes(overwrite bool) {
	OverwriteNotes = overwrite
}
