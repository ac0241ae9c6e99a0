package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dupecheck/internal/adapters/driving/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [doc-id...]",
	Short: "Find near-duplicate documents",
	Long: `Compares documents pairwise with TF-IDF cosine similarity and reports
every pair at or above the threshold.

With no document IDs every stored document is analysed. At least two
documents are required.

Examples:
  # All documents, default threshold
  dupecheck analyze

  # Two documents, every pair reported, as JSON
  dupecheck analyze doc-a doc-b --all-pairs --output json

  # Stricter threshold with the similarity matrix
  dupecheck analyze --threshold 0.9 --matrix`,
	RunE: runAnalyze,
}

var (
	analyzeThreshold float64
	analyzeAllPairs  bool
	analyzeMatrix    bool
	analyzeOutput    string
)

func init() {
	analyzeCmd.Flags().Float64VarP(&analyzeThreshold, "threshold", "t", 0, "Similarity threshold (default from settings)")
	analyzeCmd.Flags().BoolVarP(&analyzeAllPairs, "all-pairs", "a", false, "Report every pair, not only flagged ones (default from settings)")
	analyzeCmd.Flags().BoolVarP(&analyzeMatrix, "matrix", "m", false, "Show the similarity matrix")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "table", "Output format: table, json or yaml")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errNoAnalysisService
	}
	format, err := report.ParseFormat(analyzeOutput)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	cfg := analysisService.DefaultConfig()
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold = analyzeThreshold
	}
	if cmd.Flags().Changed("all-pairs") {
		cfg.IncludeAllPairs = analyzeAllPairs
	}

	jobID, err := analysisService.Analyze(ctx, args, cfg)
	if err != nil {
		return err
	}

	label := fmt.Sprintf("Analysing documents (job %s)...", jobID)
	job, err := waitForJob(ctx, cmd.ErrOrStderr(), jobID, label)
	if err != nil {
		return fmt.Errorf("waiting for %s: %w", jobID, err)
	}

	renderer := report.NewRenderer(format, report.Options{Matrix: analyzeMatrix})
	if err := renderer.WriteReport(cmd.OutOrStdout(), report.FromJob(job)); err != nil {
		return err
	}

	if job.Error != "" {
		return &jobFailedError{id: job.ID, kind: job.ErrorKind, msg: job.Error}
	}
	return nil
}

// jobFailedError reports a failed job with the kind recorded by the service.
type jobFailedError struct {
	id, kind, msg string
}

func (e *jobFailedError) Error() string {
	return fmt.Sprintf("analysis %s failed: %s", e.id, e.msg)
}
