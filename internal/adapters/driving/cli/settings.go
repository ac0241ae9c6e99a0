package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure analysis, storage, upload and watch settings.

Settings are stored in ~/.dupecheck/config.toml. Any setting can be
overridden with an environment variable: analysis.default_threshold
becomes DUPECHECK_ANALYSIS_DEFAULT_THRESHOLD.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change one setting by its dotted key. The change is rejected if it
leaves the settings invalid, for example a default threshold outside the
allowed range. Run "dupecheck settings keys" for the list of keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the common settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	a := settings.Analysis
	cmd.Println("[Analysis]")
	cmd.Printf("  Default threshold: %.2f\n", a.DefaultThreshold)
	cmd.Printf("  Threshold range:   %.2f - %.2f\n", a.MinThreshold, a.MaxThreshold)
	cmd.Printf("  Include all pairs: %t\n", a.IncludeAllPairs)
	cmd.Printf("  Max vocabulary:    %d\n", a.MaxVocabSize)
	cmd.Printf("  Min doc frequency: %d\n", a.MinDocFreq)
	cmd.Printf("  Workers:           %d\n", a.Workers)
	cmd.Printf("  Stopwords:         %s\n", a.StopwordLanguage)
	if len(a.ExtraStopwords) > 0 {
		cmd.Printf("  Extra stopwords:   %s\n", strings.Join(a.ExtraStopwords, ", "))
	}
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	cmd.Println()

	cmd.Println("[Upload]")
	cmd.Printf("  Max size: %d MB\n", settings.Upload.MaxSizeMB)
	cmd.Println()

	cmd.Println("[Watch]")
	cmd.Printf("  Max files per second: %d\n", settings.Watch.MaxFilesPerSecond)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}

	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	if err := settingsService.Reset(args[0]); err != nil {
		return fmt.Errorf("failed to reset %s: %w", args[0], err)
	}

	cmd.Printf("%s restored to default.\n", args[0])
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNoSettingsService
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("dupecheck Setup Wizard")
	cmd.Println("======================")
	cmd.Println()

	a := &settings.Analysis
	cmd.Printf("Default similarity threshold [%.2f] (%.2f - %.2f): ", a.DefaultThreshold, a.MinThreshold, a.MaxThreshold)
	a.DefaultThreshold = parseFloat(readLine(reader), a.DefaultThreshold)

	cmd.Printf("Report every pair, not only flagged ones [%s]: ", yesNo(a.IncludeAllPairs))
	a.IncludeAllPairs = parseYesNo(readLine(reader), a.IncludeAllPairs)

	cmd.Printf("Analysis workers [%d]: ", a.Workers)
	a.Workers = parseChoice(readLine(reader), 64, a.Workers)

	cmd.Println()
	cmd.Println("Storage backend:")
	backends := domain.AllStorageBackends()
	current := 1
	for i, b := range backends {
		if b == settings.Storage.Backend {
			current = i + 1
		}
		cmd.Printf("  %d. %s\n", i+1, b.Description())
	}
	cmd.Printf("Select [%d]: ", current)
	settings.Storage.Backend = backends[parseChoice(readLine(reader), len(backends), current)-1]

	cmd.Println()
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings saved.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func parseFloat(input string, defaultVal float64) float64 {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return defaultVal
	}
	return val
}

func parseYesNo(input string, defaultVal bool) bool {
	switch strings.ToLower(input) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultVal
	}
}

func yesNo(v bool) string {
	if v {
		return "Y/n"
	}
	return "y/N"
}
