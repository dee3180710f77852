package handlers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"newspress/internal/classify"
	"newspress/internal/scoring"
)

// NewScoreCmd creates the score command, a curation helper for checking how
// a news item would rank.
func NewScoreCmd() *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "score <file-name-or-title>",
		Short: "Score a news item and show its category",
		Long: `Classify a file name into its publication category and compute the
keyword importance score of the title (plus --body text, if given).

Examples:
  newspress score business_finance_card.txt
  newspress score "기준금리 인하 발표" --body "한국은행이 기준금리를..."`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			category := classify.Classify(title)
			score := scoring.Score(title, body, string(category))

			fmt.Printf("Category: %s (%s)\n", category, category.Label())
			fmt.Printf("Score:    %d\n", score)
			return nil
		},
	}

	cmd.Flags().StringVar(&body, "body", "", "news body text to include in the score")

	return cmd
}
