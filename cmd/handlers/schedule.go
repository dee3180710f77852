package handlers

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"newspress/internal/config"
)

// NewScheduleCmd creates the schedule command.
func NewScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print today's publication schedule",
		Long: `Print the slots of the configured schedule policy and the next
publication time from now.

Examples:
  # The default fixed hour table
  newspress schedule

  # A freshly generated randomized day
  newspress schedule --config randomized.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			policy := buildPolicy(cfg)
			now := time.Now()

			fmt.Printf("Schedule policy: %s\n\n", cfg.Schedule.Policy)
			for _, slot := range policy.Slots() {
				fmt.Printf("  %02d:%02d  ", slot.Hour, slot.Minute)
				for i, cat := range slot.Categories {
					if i > 0 {
						fmt.Print(", ")
					}
					fmt.Printf("%s (%s)", cat, cat.Label())
				}
				fmt.Println()
			}

			next := policy.NextPublishTime(now)
			fmt.Printf("\nNext publication: %s", next.Format("2006-01-02 15:04"))
			if due := policy.CategoriesDueAt(next); len(due) > 0 {
				fmt.Print("  (")
				for i, cat := range due {
					if i > 0 {
						fmt.Print(", ")
					}
					fmt.Print(cat)
				}
				fmt.Println(")")
			} else {
				fmt.Println()
			}
			return nil
		},
	}
}
