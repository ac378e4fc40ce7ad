package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mushaf/internal/adapters/driving/tui"
	"github.com/custodia-labs/mushaf/internal/core/domain"
)

var (
	readPage  int
	readVerse string
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the mushaf page by page in the terminal",
	Long: `Opens an interactive page reader.

Controls:
  ←/h, →/l - Previous / next page
  ↑/k, ↓/j - Select a line
  Tab      - Next verse on the line
  s        - Similar verses
  g        - Go to a page or surah:ayah
  ?        - Help
  q        - Quit

With reload.watch on, the corpus is reloaded while reading.`,
	Args: cobra.NoArgs,
	RunE: runRead,
}

func init() {
	readCmd.Flags().IntVarP(&readPage, "page", "p", 1, "page to open")
	readCmd.Flags().StringVar(&readVerse, "verse", "", "open the page holding this verse key")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, _ []string) error {
	var verse domain.VerseKey
	if readVerse != "" {
		k, err := domain.ParseVerseKey(readVerse)
		if err != nil {
			return err
		}
		verse = k
	}
	if err := requireCorpus(cmd); err != nil {
		return err
	}

	// Fail before taking over the screen.
	if verse.Valid() {
		if _, err := queryService.PageForVerse(verse); err != nil {
			return fmt.Errorf("failed to find page: %w", err)
		}
	} else if _, err := queryService.GetPage(readPage); err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}

	app, err := tui.NewApp(&tui.Ports{Query: queryService, Settings: settingsService})
	if err != nil {
		return fmt.Errorf("failed to create reader: %w", err)
	}
	app.WithContext(cmd.Context()).StartAt(readPage, verse)

	stopWatch := watchInBackground(cmd.Context())
	defer stopWatch()

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in reader: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := app.Run(); err != nil {
		return fmt.Errorf("reader error: %w", err)
	}
	return nil
}
