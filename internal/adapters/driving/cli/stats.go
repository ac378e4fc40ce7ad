package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the loaded corpus",
	RunE:  runStats,
}

var surahCmd = &cobra.Command{
	Use:   "surah [number]",
	Short: "Show surah metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runSurah,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(surahCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if err := requireCorpus(cmd); err != nil {
		return err
	}

	r, err := queryService.Reader()
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}
	stats, info := r.Stats(), r.Info()

	if statsJSON {
		data, err := json.MarshalIndent(struct {
			Snapshot any `json:"snapshot"`
			Stats    any `json:"stats"`
		}{info, stats}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(titleStyle.Render("Corpus"))
	cmd.Printf("  Snapshot:     %s\n", info.ID)
	cmd.Printf("  Built:        %s in %s\n", humanize.Time(info.BuiltAt), info.BuildDuration)
	if info.Fingerprint != "" {
		fp := info.Fingerprint
		if len(fp) > 16 {
			fp = fp[:16]
		}
		cmd.Printf("  Fingerprint:  %s\n", fp)
	}
	cmd.Println()

	rows := []struct {
		label string
		n     int
	}{
		{"Pages", stats.Pages},
		{"Lines", stats.Lines},
		{"Surahs", stats.Surahs},
		{"Verses", stats.Verses},
		{"Words", stats.Words},
		{"Match records", stats.MatchRecords},
		{"Similar pairs", stats.SimilarPairs},
		{"Bidirectional", stats.BidirectionalPairs},
	}
	for _, row := range rows {
		cmd.Printf("  %-14s %s\n", row.label+":", humanize.Comma(int64(row.n)))
	}
	return nil
}

func runSurah(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid surah number %q", args[0])
	}
	if err := requireCorpus(cmd); err != nil {
		return err
	}

	r, err := queryService.Reader()
	if err != nil {
		return err
	}
	s, err := r.Surah(n)
	if err != nil {
		return fmt.Errorf("failed to get surah: %w", err)
	}

	cmd.Println(titleStyle.Render(fmt.Sprintf("%d. %s", s.Number, s.NameSimple)))
	if s.NameArabic != "" {
		cmd.Printf("  Arabic:     %s\n", s.NameArabic)
	}
	if s.NameEnglish != "" {
		cmd.Printf("  English:    %s\n", s.NameEnglish)
	}
	if s.VersesCount > 0 {
		cmd.Printf("  Verses:     %d\n", s.VersesCount)
	}
	if s.RevelationPlace != "" {
		cmd.Printf("  Revealed:   %s (order %s)\n", s.RevelationPlace, humanize.Ordinal(s.RevelationOrder))
	}
	if first, err := domain.NewVerseKey(s.Number, 1); err == nil {
		if page, err := r.PageForVerse(first); err == nil {
			cmd.Printf("  Starts on:  page %d\n", page)
		}
	}
	return nil
}
