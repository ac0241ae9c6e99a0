package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dupecheck/internal/adapters/driving/report"
	"github.com/custodia-labs/dupecheck/internal/connectors/filesystem"
	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage stored documents",
	Long:  `Add, list, view, or delete the documents analyses run over.`,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [file...]",
	Short: "Add documents from files",
	Long: `Reads each file, extracts its text, and stores it as a document.
The type is detected from the file extension.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocumentAdd,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents, newest first",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print extracted document text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id...]",
	Short: "Delete documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocumentDelete,
}

var documentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every document",
	Args:  cobra.NoArgs,
	RunE:  runDocumentClear,
}

var documentImportCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Add every supported file in a directory tree",
	Long: `Walks the directory and adds every file with a supported extension.
Hidden files and directories are skipped. Files that cannot be added are
reported and the import continues.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentImport,
}

var documentWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import a directory and keep it in sync",
	Long: `Imports the directory, then watches it. Created and modified files are
added (replacing the previous version), deleted files are removed.
Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentWatch,
}

var (
	documentOutput   string
	watchSkipInitial bool
)

func init() {
	documentListCmd.Flags().StringVarP(&documentOutput, "output", "o", "table", "Output format: table, json or yaml")
	documentWatchCmd.Flags().BoolVar(&watchSkipInitial, "skip-initial", false, "Do not import existing files first")

	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentClearCmd)
	documentCmd.AddCommand(documentImportCmd)
	documentCmd.AddCommand(documentWatchCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}
	ctx := commandContext(cmd)

	var failed int
	for _, path := range args {
		content, err := os.ReadFile(filesystem.ResolvePath(path))
		if err != nil {
			cmd.PrintErrf("  %s: %v\n", path, err)
			failed++
			continue
		}
		doc, err := documentService.Add(ctx, filepath.Base(path), content)
		if err != nil {
			cmd.PrintErrf("  %s: %s\n", path, FormatError(err))
			failed++
			continue
		}
		cmd.Printf("Added %s  %s (%d words)\n", doc.ID, doc.Filename, doc.WordCount)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be added", failed, len(args))
	}
	return nil
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNoDocumentService
	}
	format, err := report.ParseFormat(documentOutput)
	if err != nil {
		return err
	}

	docs, err := documentService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	renderer := report.NewRenderer(format, report.Options{})
	if err := renderer.WriteDocuments(cmd.OutOrStdout(), report.FromDocuments(docs)); err != nil {
		return err
	}
	if format == report.FormatTable && len(docs) > 0 {
		cmd.Printf("Total: %d documents\n", len(docs))
	}
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	doc, err := documentService.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Filename: %s\n", doc.Filename)
	cmd.Printf("  Type:     %s\n", doc.MIMEType)
	cmd.Printf("  Size:     %s\n", report.FormatSize(doc.Size))
	cmd.Printf("  Words:    %d\n", doc.WordCount)
	cmd.Printf("  Uploaded: %s\n", doc.UploadedAt.Format("2006-01-02 15:04:05"))

	if len(doc.Metadata) > 0 {
		cmd.Println("\n  Metadata:")
		keys := make([]string, 0, len(doc.Metadata))
		for k := range doc.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			cmd.Printf("    %s: %v\n", k, doc.Metadata[k])
		}
	}
	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	doc, err := documentService.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(doc.Content)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}
	ctx := commandContext(cmd)

	for _, id := range args {
		if err := documentService.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}
		cmd.Printf("Deleted %s\n", id)
	}
	return nil
}

func runDocumentClear(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	n, err := documentService.Clear(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}

	cmd.Printf("Removed %d documents.\n", n)
	return nil
}

func runDocumentImport(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}
	ctx := commandContext(cmd)

	conn := filesystem.New(args[0])
	defer conn.Close()

	result, err := newImporter().Import(ctx, conn)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	printImportResult(cmd, result)

	if len(result.Added) == 0 && len(result.Failed) > 0 {
		return fmt.Errorf("no files could be imported from %s", conn.RootPath())
	}
	return nil
}

func runDocumentWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}
	ctx := commandContext(cmd)

	conn := filesystem.New(args[0])
	defer conn.Close()
	importer := newImporter()

	if !watchSkipInitial {
		result, err := importer.Import(ctx, conn)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		printImportResult(cmd, result)
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)...\n", conn.RootPath())
	return importer.Follow(ctx, conn, func(ev filesystem.WatchEvent) {
		name := conn.RelativeName(ev.Change.Path)
		switch {
		case ev.Err != nil:
			cmd.PrintErrf("  %s %s: %s\n", ev.Change.Type, name, FormatError(ev.Err))
		case ev.Document != nil:
			cmd.Printf("  %s %s -> %s\n", ev.Change.Type, name, ev.Document.ID)
		default:
			cmd.Printf("  %s %s\n", ev.Change.Type, name)
		}
	})
}

// newImporter paces ingestion by the configured watch rate.
func newImporter() *filesystem.Importer {
	rate := domain.DefaultAppSettings().Watch.MaxFilesPerSecond
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			rate = settings.Watch.MaxFilesPerSecond
		}
	}
	return filesystem.NewImporter(documentService, rate)
}

func printImportResult(cmd *cobra.Command, result *filesystem.ImportResult) {
	for _, doc := range result.Added {
		cmd.Printf("  added  %s  %s\n", doc.ID, doc.Filename)
	}
	for _, f := range result.Failed {
		cmd.PrintErrf("  failed %s: %s\n", f.Path, FormatError(f.Err))
	}
	cmd.Printf("Imported %d documents (%d failed). Supported: %s\n",
		len(result.Added), len(result.Failed), strings.Join(documentService.SupportedExtensions(), " "))
}
