package cmd

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/jlaasanen/meeple/internal/cache"
	"github.com/jlaasanen/meeple/internal/catalog"
	"github.com/jlaasanen/meeple/internal/config"
	"github.com/jlaasanen/meeple/internal/enrichment/ai"
)

// aiService is the slice of the AI client the commands consume.
type aiService interface {
	LookupGame(ctx context.Context, title string) (string, error)
	SuggestAge(ctx context.Context, title string) (string, error)
	IdentifyPhoto(ctx context.Context, photoDataURL, titleHint string) (string, error)
}

// Seams for tests: each command reaches its collaborators through these.
var (
	openStore   = defaultOpenStore
	newAIClient = defaultNewAIClient
	openCache   = defaultOpenCache
)

// CLI represents the complete command structure for the meeple application
type CLI struct {
	// Global flags
	Overwrite bool   `help:"Overwrite existing markdown notes when exporting"`
	Database  string `help:"Path to catalog SQLite database file (defaults to database.path from config)"`

	// Cache flags
	CacheDBFile string `help:"Path to lookup cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 720h for 30 days)" default:"720h"`

	Backfill    BackfillCmd    `cmd:"" help:"Fill in a missing catalog field for every game that lacks it"`
	Add         AddCmd         `cmd:"" help:"Look up a game and add it to the library"`
	Identify    IdentifyCmd    `cmd:"" help:"Identify a game from a box-art photo and add it to the library"`
	Lookup      LookupCmd      `cmd:"" help:"Look up a game without adding it"`
	List        ListCmd        `cmd:"" help:"List the library with play counts and ratings"`
	LogPlay     LogPlayCmd     `cmd:"" name:"log-play" help:"Record one play of a game"`
	Rate        RateCmd        `cmd:"" help:"Rate a game 1-5 stars with an optional review"`
	Export      ExportCmd      `cmd:"" help:"Write one markdown note per library game"`
	ImportNotes ImportNotesCmd `cmd:"" name:"import-notes" help:"Fill missing catalog fields from exported markdown notes"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("meeple"),
		kong.Description("A board game catalog and library tracker with AI-backed enrichment."),
		kong.UsageOnError(),
	)

	// Update global config based on parsed flags
	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	// Pick up OPENAI_API_KEY and friends from a local .env if present
	_ = godotenv.Load()

	viper.SetDefault("MarkdownOutputDir", "./markdown/")
	viper.SetDefault("OverwriteNotes", false)

	viper.SetDefault("database.path", "./meeple.db")

	viper.SetDefault("openai.model", "gpt-4o-mini")

	viper.SetDefault("backfill.delay", "1s")
	viper.SetDefault("backfill.retries", 2)

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "720h") // 30 days

	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetOverwriteNotes(cli.Overwrite)
	if cli.Database != "" {
		config.DatabasePath = cli.Database
	}

	// Update cache config
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

func defaultOpenStore() (*catalog.Store, error) {
	return catalog.NewStore(config.DatabasePath)
}

func defaultNewAIClient() (aiService, error) {
	return ai.NewClient(ai.Config{
		APIKey:  config.OpenAIAPIKey,
		Model:   config.OpenAIModel,
		BaseURL: config.OpenAIBaseURL,
	})
}

func defaultOpenCache() (*cache.DB, error) {
	return cache.Open(viper.GetString("cache.dbfile"))
}

func cacheTTL() time.Duration {
	ttl, err := time.ParseDuration(viper.GetString("cache.ttl"))
	if err != nil || ttl <= 0 {
		return cache.DefaultTTL
	}
	return ttl
}

func initLogging() {
	// Create a human-readable handler for logging
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	// Set the default logger
	slog.SetDefault(slog.New(handler))
}
