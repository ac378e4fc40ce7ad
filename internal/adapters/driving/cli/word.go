package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

var wordCmd = &cobra.Command{
	Use:   "word [id]",
	Short: "Show the verse owning a word id",
	Args:  cobra.ExactArgs(1),
	RunE:  runWord,
}

func init() {
	rootCmd.AddCommand(wordCmd)
}

func runWord(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || id == 0 {
		return fmt.Errorf("%w: word id %q", domain.ErrInvalidInput, args[0])
	}
	if err := requireCorpus(cmd); err != nil {
		return err
	}

	r, err := queryService.Reader()
	if err != nil {
		return err
	}
	key, err := r.VerseForWord(domain.WordID(id))
	if err != nil {
		return fmt.Errorf("failed to resolve word: %w", err)
	}
	cmd.Printf("Word %d belongs to verse %s\n", id, key)

	if page, err := r.PageForVerse(key); err == nil {
		cmd.Printf("First shown on page %d\n", page)
	}
	return nil
}
