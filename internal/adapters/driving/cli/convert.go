package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [output.db]",
	Short: "Write the layout tables to a SQLite database",
	Long: `Validates the configured layout and word tables and writes them to a new
SQLite database. The database can then be configured as corpus.layout in
place of the JSON dump.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if corpusService == nil {
		return errors.New("corpus service not configured")
	}
	if openLayoutSink == nil {
		return errors.New("layout export not configured")
	}

	sink, err := openLayoutSink(args[0])
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", args[0], err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", args[0], cerr)
		}
	}()

	res, err := corpusService.ExportLayout(cmd.Context(), sink)
	if err != nil {
		return fmt.Errorf("failed to export layout: %w", err)
	}

	cmd.Println(successStyle.Render("✓ Layout exported"))
	cmd.Printf("  File:   %s\n", args[0])
	cmd.Printf("  Lines:  %d\n", res.Lines)
	cmd.Printf("  Words:  %d\n", res.Words)
	return nil
}
