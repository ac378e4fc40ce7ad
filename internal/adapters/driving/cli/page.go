package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

var (
	pageJSON  bool
	pageVerse string
)

var pageCmd = &cobra.Command{
	Use:   "page [number]",
	Short: "Show a page of the mushaf",
	Long: `Shows one page line by line. Surah headers and basmallah lines are
centred, ayah lines list the verses they span.

Use --verse to show the first page a verse appears on.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPage,
}

func init() {
	pageCmd.Flags().BoolVar(&pageJSON, "json", false, "output the page as JSON")
	pageCmd.Flags().StringVar(&pageVerse, "verse", "", "show the page holding this verse key")
	rootCmd.AddCommand(pageCmd)
}

func runPage(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && pageVerse == "" {
		return fmt.Errorf("%w: give a page number or --verse", domain.ErrInvalidInput)
	}
	if err := requireCorpus(cmd); err != nil {
		return err
	}

	r, err := queryService.Reader()
	if err != nil {
		return err
	}

	var n int
	if pageVerse != "" {
		key, err := domain.ParseVerseKey(pageVerse)
		if err != nil {
			return err
		}
		n, err = r.PageForVerse(key)
		if err != nil {
			return fmt.Errorf("failed to find page: %w", err)
		}
	} else {
		n, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: page number %q", domain.ErrInvalidInput, args[0])
		}
	}

	page, err := r.GetPage(n)
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}

	if pageJSON {
		data, err := json.MarshalIndent(page, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal page: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}
	printPage(cmd, page, r.TotalPages())
	return nil
}

func printPage(cmd *cobra.Command, page *domain.RenderedPage, total int) {
	width := termWidth()
	cmd.Println(titleStyle.Render(fmt.Sprintf("Page %d of %d", page.Number, total)))
	cmd.Println()

	for i := range page.Lines {
		line := &page.Lines[i]
		text := line.Text
		switch line.Type {
		case domain.LineSurahName:
			text = headerStyle.Render(text)
		case domain.LineBasmallah:
			text = mutedStyle.Render(text)
		}
		if line.Centered {
			text = centre(text, width-4)
		}
		cmd.Printf("%2d  %s\n", line.Number, text)
		if len(line.Verses) > 0 {
			cmd.Printf("    %s\n", mutedStyle.Render(verseList(line.Verses)))
		}
	}
}

func verseList(keys []domain.VerseKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}
