package testutil

import (
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/jlaasanen/meeple/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OverwriteNotes  bool
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	DatabasePath    string
	BackfillDelay   time.Duration
	BackfillRetries int
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OverwriteNotes:  config.OverwriteNotes,
		OpenAIAPIKey:    config.OpenAIAPIKey,
		OpenAIModel:     config.OpenAIModel,
		OpenAIBaseURL:   config.OpenAIBaseURL,
		DatabasePath:    config.DatabasePath,
		BackfillDelay:   config.BackfillDelay,
		BackfillRetries: config.BackfillRetries,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OverwriteNotes = state.OverwriteNotes
	config.OpenAIAPIKey = state.OpenAIAPIKey
	config.OpenAIModel = state.OpenAIModel
	config.OpenAIBaseURL = state.OpenAIBaseURL
	config.DatabasePath = state.DatabasePath
	config.BackfillDelay = state.BackfillDelay
	config.BackfillRetries = state.BackfillRetries
}

// ResetConfig saves the current config state and schedules restoration
// when the test completes. It also resets viper.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig sets up a test configuration with common defaults.
// It saves the current state and restores it when the test completes.
func SetTestConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	config.OverwriteNotes = true
	config.OpenAIAPIKey = "test-openai-key"
	config.OpenAIModel = "test-model"
	config.OpenAIBaseURL = ""
	config.DatabasePath = ""
	config.BackfillDelay = 0
	config.BackfillRetries = 2

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
		// viper has no Unset, so a previously unset key stays set.
	})
}
