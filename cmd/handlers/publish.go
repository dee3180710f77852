package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"newspress/internal/config"
)

// NewPublishCmd creates the publish command.
func NewPublishCmd() *cobra.Command {
	var briefingTop int

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish whatever the schedule says is due right now",
		Long: `Run one publish pass against the current wall-clock time. Note that the
pool is process-local: a standalone publish pass starts from an empty
pool, so this command runs a prepare pass first.

With --briefing N the schedule is bypassed and the N highest-scoring
articles are combined into a single daily-briefing post instead.

The pass report is printed as JSON.

Examples:
  # Publish the categories due at the current time
  newspress publish

  # Publish one briefing post with today's top 5 news
  newspress publish --briefing 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			pipeline, err := buildPipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if _, err := pipeline.Prepare(cmd.Context()); err != nil {
				return fmt.Errorf("prepare pass failed: %w", err)
			}

			if briefingTop > 0 {
				report, err := pipeline.PublishBriefing(cmd.Context(), briefingTop)
				if err != nil {
					return err
				}
				return printJSON(report)
			}

			report, err := pipeline.Publish(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}

	cmd.Flags().IntVar(&briefingTop, "briefing", 0, "publish one briefing post with the top N scored articles instead of the scheduled pass")

	return cmd
}
