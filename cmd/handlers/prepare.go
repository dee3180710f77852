package handlers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"newspress/internal/config"
)

// NewPrepareCmd creates the prepare command.
func NewPrepareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prepare",
		Short: "Read today's Drive folder and rewrite every news file",
		Long: `Run one prepare pass: find today's folder under the configured Drive
parent, list its news files, classify each by file name, rewrite each
with AI, and swap the in-memory pool to the new batch.

The pass report is printed as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			pipeline, err := buildPipeline(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			report, err := pipeline.Prepare(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
