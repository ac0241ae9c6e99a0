// Package cli implements the dupecheck command line interface with cobra.
// Commands drive the core services through their driving ports; the
// services themselves are composed in cmd/dupecheck and injected with
// SetServices before Execute.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
	"github.com/custodia-labs/dupecheck/internal/core/ports/driving"
	"github.com/custodia-labs/dupecheck/internal/logger"
)

// version is set at build time.
var version = "dev"

// verbose enables debug logging.
var verbose bool

// Services injected by SetServices.
var (
	documentService driving.DocumentService
	analysisService driving.AnalysisService
	settingsService driving.SettingsService
)

// Services bundles the core services commands operate on.
type Services struct {
	Document driving.DocumentService
	Analysis driving.AnalysisService
	Settings driving.SettingsService
}

var rootCmd = &cobra.Command{
	Use:   "dupecheck",
	Short: "Find near-duplicate documents",
	Long: `dupecheck stores text documents and compares them with TF-IDF cosine
similarity to find near-duplicates.

Add documents with "dupecheck document add", then run "dupecheck analyze"
to list every pair whose similarity reaches the threshold.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// SetServices injects the services used by commands.
func SetServices(s Services) {
	documentService = s.Document
	analysisService = s.Analysis
	settingsService = s.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// FormatError renders err for the terminal as "KIND: message".
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var failed *jobFailedError
	if errors.As(err, &failed) && failed.kind != "" {
		return fmt.Sprintf("%s: %v", failed.kind, err)
	}
	return fmt.Sprintf("%s: %v", domain.ErrorKind(err), err)
}

// commandContext returns the command's context, or Background when the
// command runs outside Execute (as in tests calling RunE directly).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

var (
	errNoDocumentService = errors.New("document service not configured")
	errNoAnalysisService = errors.New("analysis service not configured")
	errNoSettingsService = errors.New("settings service not configured")
)
