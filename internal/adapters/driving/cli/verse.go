package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mushaf/internal/core/domain"
	"github.com/custodia-labs/mushaf/internal/core/ports/driving"
)

var (
	verseJSON bool
	verseTo   string
)

var verseCmd = &cobra.Command{
	Use:   "verse [key]",
	Short: "Show a verse with its translation",
	Long: `Shows a verse by key (surah:ayah) with translation and transliteration
when configured. Use --to to show every verse up to a second key.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerse,
}

func init() {
	verseCmd.Flags().BoolVar(&verseJSON, "json", false, "output as JSON")
	verseCmd.Flags().StringVar(&verseTo, "to", "", "last verse key of a range")
	rootCmd.AddCommand(verseCmd)
}

func runVerse(cmd *cobra.Command, args []string) error {
	from, err := domain.ParseVerseKey(args[0])
	if err != nil {
		return err
	}
	to := from
	if verseTo != "" {
		if to, err = domain.ParseVerseKey(verseTo); err != nil {
			return err
		}
	}
	if err := requireCorpus(cmd); err != nil {
		return err
	}

	r, err := queryService.Reader()
	if err != nil {
		return err
	}

	var records []domain.VerseRecord
	if to == from {
		rec, err := r.VerseRecord(from)
		if err != nil {
			return fmt.Errorf("failed to get verse: %w", err)
		}
		records = []domain.VerseRecord{*rec}
	} else {
		records, err = r.VersesInRange(from, to)
		if err != nil {
			return fmt.Errorf("failed to get verses: %w", err)
		}
	}

	if verseJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal verses: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("No verses in range.")
		return nil
	}
	for i := range records {
		printVerse(cmd, r, &records[i])
	}
	return nil
}

func printVerse(cmd *cobra.Command, r driving.SnapshotReader, rec *domain.VerseRecord) {
	heading := rec.Key.String()
	if page, err := r.PageForVerse(rec.Key); err == nil {
		heading += fmt.Sprintf(" (page %d)", page)
	}
	cmd.Println(titleStyle.Render(heading))
	cmd.Printf("  %s\n", rec.Text)
	if rec.Transliteration != "" {
		cmd.Printf("  %s\n", mutedStyle.Render(rec.Transliteration))
	}
	if rec.Translation != "" {
		cmd.Printf("  %s\n", rec.Translation)
	}
	if n := r.SimilarCount(rec.Key); n > 0 {
		cmd.Printf("  %s\n", mutedStyle.Render(fmt.Sprintf("%d similar verses", n)))
	}
	cmd.Println()
}
