package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mushaf/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change where the corpus tables are read from and the query
defaults. Settings live in config.toml inside the config directory; MUSHAF_*
environment variables override them for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the settings are usable",
	RunE:  runSettingsValidate,
}

var settingsDataDirCmd = &cobra.Command{
	Use:   "data-dir [path]",
	Short: "Set the corpus data directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsDataDir,
}

var settingsLimitCmd = &cobra.Command{
	Use:   "similar-limit [n]",
	Short: "Set the default number of similar verses",
	Long:  `Set the default result count of the similar command. -1 lists every match.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsLimit,
}

var settingsWatchCmd = &cobra.Command{
	Use:       "watch [on|off]",
	Short:     "Enable or disable reloading on file changes",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runSettingsWatch,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsValidateCmd)
	settingsCmd.AddCommand(settingsDataDirCmd)
	settingsCmd.AddCommand(settingsLimitCmd)
	settingsCmd.AddCommand(settingsWatchCmd)
	rootCmd.AddCommand(settingsCmd)
}

func requireSettings(cmd *cobra.Command) error {
	if err := ensureServices(cmd); err != nil {
		return err
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(cmd); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	c := settings.Corpus
	cmd.Println("[Corpus]")
	cmd.Printf("  Data dir:        %s\n", c.DataDir)
	for _, f := range []struct{ label, name string }{
		{"Layout", c.Layout},
		{"Words", c.Words},
		{"Verses", c.Verses},
		{"Translation", c.Translation},
		{"Transliteration", c.Transliteration},
		{"Matches", c.Matches},
		{"Surahs", c.Surahs},
	} {
		cmd.Printf("  %-16s %s\n", f.label+":", orUnset(f.name))
	}
	cmd.Println()

	cmd.Println("[Reload]")
	cmd.Printf("  Watch:           %s\n", onOff(settings.Reload.Watch))
	cmd.Printf("  Min interval:    %s\n", settings.Reload.MinInterval)
	cmd.Println()

	cmd.Println("[Query]")
	limit := strconv.Itoa(settings.Query.SimilarLimit)
	if settings.Query.SimilarLimit == domain.NoLimit {
		limit = "all"
	}
	cmd.Printf("  Similar limit:   %s\n", limit)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsValidate(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(cmd); err != nil {
		return err
	}
	if err := settingsService.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cmd.Println(successStyle.Render("✓ Configuration is valid"))
	return nil
}

func runSettingsDataDir(cmd *cobra.Command, args []string) error {
	if err := requireSettings(cmd); err != nil {
		return err
	}
	if err := settingsService.SetDataDir(args[0]); err != nil {
		return fmt.Errorf("failed to set data dir: %w", err)
	}
	cmd.Printf("Data directory set to %s\n", args[0])
	return nil
}

func runSettingsLimit(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < domain.NoLimit {
		return fmt.Errorf("%w: similar limit %q", domain.ErrInvalidInput, args[0])
	}
	return updateSettings(cmd, func(s *domain.Settings) {
		s.Query.SimilarLimit = n
	}, fmt.Sprintf("Similar limit set to %d", n))
}

func runSettingsWatch(cmd *cobra.Command, args []string) error {
	var on bool
	switch args[0] {
	case "on":
		on = true
	case "off":
	default:
		return fmt.Errorf("%w: expected on or off, got %q", domain.ErrInvalidInput, args[0])
	}
	return updateSettings(cmd, func(s *domain.Settings) {
		s.Reload.Watch = on
	}, "Watch "+onOff(on))
}

func updateSettings(cmd *cobra.Command, apply func(*domain.Settings), msg string) error {
	if err := requireSettings(cmd); err != nil {
		return err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	apply(settings)
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println(msg)
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
