package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

var (
	searchField string
	searchSurah int
	searchFuzzy bool
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search verse text, translation or transliteration",
	Long: `Finds verses containing the query. Diacritics, tatweel and alef forms are
ignored, as is letter case, so an undecorated query matches Uthmani text.

With --fuzzy each query word may match a misspelt verse word; verses
matching more words come first, then closer matches.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchField, "field", "f", string(domain.FieldText),
		"field to search: text, translation or transliteration")
	searchCmd.Flags().IntVar(&searchSurah, "surah", 0, "only search this surah")
	searchCmd.Flags().BoolVar(&searchFuzzy, "fuzzy", false, "tolerate misspelt words")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results (-1 for all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	field, err := domain.ParseSearchField(searchField)
	if err != nil {
		return err
	}
	q := domain.SearchQuery{
		Text:  strings.Join(args, " "),
		Field: field,
		Surah: searchSurah,
		Fuzzy: searchFuzzy,
		Limit: searchLimit,
	}
	if err := q.Validate(); err != nil {
		return err
	}
	if err := requireCorpus(cmd); err != nil {
		return err
	}

	r, err := queryService.Reader()
	if err != nil {
		return err
	}
	hits, err := r.SearchVerses(q)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(hits, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(hits) == 0 {
		cmd.Println("No verses found.")
		return nil
	}

	cmd.Println(titleStyle.Render(fmt.Sprintf("%d verses matching %q", len(hits), q.Text)))
	cmd.Println()
	for i := range hits {
		v := &hits[i].Verse
		line := fmt.Sprintf("  [%d] %-8s", i+1, v.Key)
		if q.Fuzzy {
			line += fmt.Sprintf(" score %.2f", hits[i].Score)
		}
		if page, err := r.PageForVerse(v.Key); err == nil {
			line += mutedStyle.Render(fmt.Sprintf(" page %d", page))
		}
		cmd.Println(line)
		cmd.Printf("      %s\n", v.Text)
		if field == domain.FieldTransliteration && v.Transliteration != "" {
			cmd.Printf("      %s\n", mutedStyle.Render(v.Transliteration))
		}
		if v.Translation != "" {
			cmd.Printf("      %s\n", v.Translation)
		}
	}
	return nil
}
