package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

var (
	similarLimit int
	similarJSON  bool
)

var similarCmd = &cobra.Command{
	Use:   "similar [key]",
	Short: "List verses similar to a verse",
	Long: `Lists verses similar to the given verse, best match first. Matches recorded
in either direction are merged; when both directions exist the higher score
is kept and the match is marked bidirectional.

The default limit comes from query.similar_limit; -1 lists every match.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

func init() {
	similarCmd.Flags().IntVarP(&similarLimit, "limit", "n", 10, "maximum number of results (-1 for all)")
	similarCmd.Flags().BoolVar(&similarJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	key, err := domain.ParseVerseKey(args[0])
	if err != nil {
		return err
	}
	if err := requireCorpus(cmd); err != nil {
		return err
	}

	limit := similarLimit
	if !cmd.Flags().Changed("limit") && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			limit = settings.Query.SimilarLimit
		}
	}

	r, err := queryService.Reader()
	if err != nil {
		return err
	}
	edges, err := r.SimilarTo(key, limit)
	if err != nil {
		return fmt.Errorf("failed to find similar verses: %w", err)
	}

	if similarJSON {
		data, err := json.MarshalIndent(edges, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(edges) == 0 {
		cmd.Printf("No similar verses for %s.\n", key)
		return nil
	}

	cmd.Println(titleStyle.Render(fmt.Sprintf("Verses similar to %s", key)))
	cmd.Println()
	for i := range edges {
		e := &edges[i]
		cmd.Printf("  [%d] %-8s score %-6.4g words %-3d coverage %-6.4g %s\n",
			i+1, e.Target, e.Score, e.MatchedWords, e.Coverage, mutedStyle.Render(string(e.Direction)))
		if rec, err := r.VerseRecord(e.Target); err == nil {
			cmd.Printf("      %s\n", rec.Text)
		}
	}
	return nil
}
