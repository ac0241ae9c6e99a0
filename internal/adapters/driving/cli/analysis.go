package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dupecheck/internal/adapters/driving/report"
)

var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Inspect analysis jobs",
	Long: `List, inspect, wait for, or delete analysis jobs started in this process,
for example by the MCP server. Jobs are not persisted.`,
}

var analysisListCmd = &cobra.Command{
	Use:   "list",
	Short: "List analysis jobs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runAnalysisList,
}

var analysisGetCmd = &cobra.Command{
	Use:   "get [job-id]",
	Short: "Show the status and results of a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalysisGet,
}

var analysisWaitCmd = &cobra.Command{
	Use:   "wait [job-id]",
	Short: "Wait for a job to finish and show its results",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalysisWait,
}

var analysisDeleteCmd = &cobra.Command{
	Use:   "delete [job-id]",
	Short: "Delete an analysis job",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalysisDelete,
}

var (
	analysisOutput string
	analysisMatrix bool
)

func init() {
	for _, c := range []*cobra.Command{analysisListCmd, analysisGetCmd, analysisWaitCmd} {
		c.Flags().StringVarP(&analysisOutput, "output", "o", "table", "Output format: table, json or yaml")
	}
	analysisGetCmd.Flags().BoolVarP(&analysisMatrix, "matrix", "m", false, "Show the similarity matrix")
	analysisWaitCmd.Flags().BoolVarP(&analysisMatrix, "matrix", "m", false, "Show the similarity matrix")

	analysisCmd.AddCommand(analysisListCmd)
	analysisCmd.AddCommand(analysisGetCmd)
	analysisCmd.AddCommand(analysisWaitCmd)
	analysisCmd.AddCommand(analysisDeleteCmd)
	rootCmd.AddCommand(analysisCmd)
}

func runAnalysisList(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errNoAnalysisService
	}
	format, err := report.ParseFormat(analysisOutput)
	if err != nil {
		return err
	}

	jobs, err := analysisService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}

	renderer := report.NewRenderer(format, report.Options{})
	return renderer.WriteReports(cmd.OutOrStdout(), report.FromJobs(jobs))
}

func runAnalysisGet(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errNoAnalysisService
	}
	format, err := report.ParseFormat(analysisOutput)
	if err != nil {
		return err
	}

	job, err := analysisService.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get analysis: %w", err)
	}

	renderer := report.NewRenderer(format, report.Options{Matrix: analysisMatrix})
	return renderer.WriteReport(cmd.OutOrStdout(), report.FromJob(job))
}

func runAnalysisWait(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errNoAnalysisService
	}
	format, err := report.ParseFormat(analysisOutput)
	if err != nil {
		return err
	}

	job, err := waitForJob(commandContext(cmd), cmd.ErrOrStderr(), args[0], "Waiting for "+args[0]+"...")
	if err != nil {
		return fmt.Errorf("failed to wait for analysis: %w", err)
	}

	renderer := report.NewRenderer(format, report.Options{Matrix: analysisMatrix})
	return renderer.WriteReport(cmd.OutOrStdout(), report.FromJob(job))
}

func runAnalysisDelete(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errNoAnalysisService
	}

	if err := analysisService.Delete(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}

	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
