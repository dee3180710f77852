// Package handlers holds the cobra command tree.
package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"newspress/internal/config"
	"newspress/internal/drive"
	"newspress/internal/publisher"
	"newspress/internal/rewrite"
	"newspress/internal/schedule"
	"newspress/internal/wordpress"
)

var cfgFile string

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "newspress",
		Short: "Rewrite Drive news summaries with AI and publish them to WordPress",
		Long: `Newspress automates a small news blog: it pulls text summaries from a
dated Google Drive folder, rewrites them into reader-friendly articles
with AI, and publishes each category at its scheduled time of day.

Core workflows:
  • Prepare: read today's Drive folder, classify and rewrite every file
  • Publish: post whatever the schedule says is due right now
  • Serve: run both behind HTTP endpoints for a hosted cron

Examples:
  # Run the HTTP server
  newspress serve

  # One prepare pass from the command line
  newspress prepare

  # Publish whatever is due at the current time
  newspress publish

  # Inspect today's schedule
  newspress schedule`,
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .newspress.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewPrepareCmd())
	rootCmd.AddCommand(NewPublishCmd())
	rootCmd.AddCommand(NewScheduleCmd())
	rootCmd.AddCommand(NewScoreCmd())

	cobra.OnInitialize(initConfig)

	return rootCmd
}

// initConfig reads in the config file and ENV variables.
func initConfig() {
	_, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		// Don't exit - allow running with just environment variables
	}
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// buildPolicy constructs the schedule policy the configuration selects.
func buildPolicy(cfg *config.Config) schedule.Policy {
	if cfg.Schedule.Policy == "randomized" {
		return schedule.NewRandomizedPolicy(nil)
	}
	return schedule.NewFixedSlotPolicy(schedule.FixedSlotOptions{
		IncludeTestSlot: cfg.Schedule.IncludeTestSlot,
	})
}

// buildRewriter assembles the AI provider chain: OpenAI primary, Gemini
// fallback, either alone when only one key is configured.
func buildRewriter(ctx context.Context, cfg *config.Config) (rewrite.Rewriter, error) {
	if err := cfg.ValidateRewrite(); err != nil {
		return nil, err
	}

	var primary, secondary rewrite.Rewriter
	if cfg.Rewrite.OpenAIAPIKey != "" {
		primary = rewrite.NewOpenAIRewriter(cfg.Rewrite.OpenAIAPIKey, cfg.Rewrite.OpenAIModel, cfg.Rewrite.Temperature)
	}
	if cfg.Rewrite.GeminiAPIKey != "" {
		gemini, err := rewrite.NewGeminiRewriter(ctx, cfg.Rewrite.GeminiAPIKey, cfg.Rewrite.GeminiModel, cfg.Rewrite.Temperature)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		if primary == nil {
			primary = gemini
		} else {
			secondary = gemini
		}
	}
	return rewrite.NewFallbackRewriter(primary, secondary)
}

// buildPipeline wires the full pipeline from configuration.
func buildPipeline(ctx context.Context, cfg *config.Config) (*publisher.Pipeline, error) {
	if err := cfg.ValidateDrive(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateWordPress(); err != nil {
		return nil, err
	}

	storage, err := drive.NewClient(ctx, drive.Credentials{
		JSON: cfg.Drive.CredentialsJSON,
		File: cfg.Drive.CredentialsFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive client: %w", err)
	}

	rewriter, err := buildRewriter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	blog := wordpress.NewClient(cfg.WordPress.SiteURL, cfg.WordPress.Username, cfg.WordPress.AppPassword)

	return publisher.New(buildPolicy(cfg), storage, rewriter, blog, publisher.Options{
		SummariesFolder:      cfg.Drive.SummariesFolder,
		UseOriginalOnFailure: cfg.Rewrite.UseOriginalOnFailure,
		RotationMode:         cfg.Schedule.Rotation == "index",
		RewriteDelay:         time.Duration(cfg.Rewrite.InterCallDelaySeconds) * time.Second,
		PublishDelay:         time.Duration(cfg.Publish.InterCallDelaySeconds) * time.Second,
	}), nil
}
