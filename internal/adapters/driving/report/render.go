package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// Format selects how a report is written.
type Format string

// Output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// nearMargin is how far below the threshold a score is still highlighted.
const nearMargin = 0.1

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown output format %q (use table, json or yaml)", domain.ErrInvalidInput, s)
	}
}

// Options controls table rendering.
type Options struct {
	// Matrix adds the similarity matrix below the pair table.
	Matrix bool

	// Styles overrides the default styles.
	Styles *Styles
}

// Renderer writes reports in one format.
type Renderer struct {
	format Format
	opts   Options
	styles *Styles
}

// NewRenderer creates a renderer for format.
func NewRenderer(format Format, opts Options) *Renderer {
	styles := opts.Styles
	if styles == nil {
		styles = DefaultStyles()
	}
	return &Renderer{format: format, opts: opts, styles: styles}
}

// WriteReport writes one analysis report.
func (r *Renderer) WriteReport(w io.Writer, rep *Report) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatYAML:
		return writeYAML(w, rep)
	default:
		_, err := io.WriteString(w, r.reportTable(rep))
		return err
	}
}

// WriteReports writes a list of analysis reports. Tables show one summary row per job.
func (r *Renderer) WriteReports(w io.Writer, reps []*Report) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, reps)
	case FormatYAML:
		return writeYAML(w, reps)
	}

	if len(reps) == 0 {
		_, err := fmt.Fprintln(w, r.styles.Muted.Render("No analyses."))
		return err
	}
	rows := make([][]string, 0, len(reps))
	for _, rep := range reps {
		flagged := "-"
		if rep.Statistics != nil {
			flagged = strconv.Itoa(rep.Statistics.FlaggedPairs)
		}
		rows = append(rows, []string{
			rep.JobID,
			rep.Status,
			strconv.Itoa(rep.TotalDocuments),
			flagged,
			rep.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	t := r.newTable().
		Headers("JOB", "STATUS", "DOCS", "FLAGGED", "CREATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.Header
			}
			if col == 1 {
				return r.styles.Status(reps[row].Status).Padding(0, 1)
			}
			return r.styles.Cell
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// WriteDocuments writes a document listing.
func (r *Renderer) WriteDocuments(w io.Writer, docs []Document) error {
	switch r.format {
	case FormatJSON:
		return writeJSON(w, docs)
	case FormatYAML:
		return writeYAML(w, docs)
	}

	if len(docs) == 0 {
		_, err := fmt.Fprintln(w, r.styles.Muted.Render("No documents."))
		return err
	}
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{
			d.ID,
			d.Filename,
			d.MIMEType,
			FormatSize(d.Size),
			strconv.Itoa(d.WordCount),
			d.UploadedAt.Format("2006-01-02 15:04:05"),
		})
	}
	t := r.newTable().
		Headers("ID", "FILENAME", "TYPE", "SIZE", "WORDS", "UPLOADED").
		Rows(rows...).
		StyleFunc(r.plainStyle)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func (r *Renderer) reportTable(rep *Report) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("Analysis "+rep.JobID) + "\n")
	r.field(&b, "Status", r.styles.Status(rep.Status).Render(rep.Status))
	r.field(&b, "Documents", strconv.Itoa(rep.TotalDocuments))
	r.field(&b, "Comparisons", strconv.Itoa(rep.TotalComparisons))
	if rep.ErrorMessage != nil {
		r.field(&b, "Error", r.styles.Error.Render(*rep.ErrorMessage))
	}
	if s := rep.Statistics; s != nil {
		r.field(&b, "Flagged", fmt.Sprintf("%d (threshold %s)", s.FlaggedPairs, FormatPercentage(rep.threshold)))
		r.field(&b, "Similarity", fmt.Sprintf("avg %s  max %s  min %s",
			FormatPercentage(s.AvgSimilarity), FormatPercentage(s.MaxSimilarity), FormatPercentage(s.MinSimilarity)))
		r.field(&b, "Time", s.ProcessingTime)
	}

	if rep.Statistics != nil {
		b.WriteString("\n")
		if len(rep.SimilarPairs) == 0 {
			b.WriteString(r.styles.Muted.Render("No similar pairs found.") + "\n")
		} else {
			b.WriteString(r.pairTable(rep) + "\n")
		}
	}

	if r.opts.Matrix && len(rep.Matrix) > 0 {
		b.WriteString("\n" + r.matrixTable(rep) + "\n")
	}
	return b.String()
}

func (r *Renderer) field(b *strings.Builder, label, value string) {
	b.WriteString(r.styles.Label.Render(fmt.Sprintf("%-12s", label)) + value + "\n")
}

func (r *Renderer) pairTable(rep *Report) string {
	rows := make([][]string, 0, len(rep.SimilarPairs))
	for _, p := range rep.SimilarPairs {
		flag := ""
		if p.Flagged {
			flag = "yes"
		}
		rows = append(rows, []string{p.Doc1, p.Doc2, strconv.FormatFloat(p.Similarity, 'f', 4, 64), p.Percentage, flag})
	}
	return r.newTable().
		Headers("DOCUMENT 1", "DOCUMENT 2", "SIMILARITY", "PERCENT", "FLAGGED").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.Header
			}
			return r.scoreStyle(rep.SimilarPairs[row].Similarity, rep.threshold)
		}).
		Render()
}

func (r *Renderer) matrixTable(rep *Report) string {
	headers := append([]string{""}, rep.DocumentNames...)
	rows := make([][]string, 0, len(rep.Matrix))
	for i, row := range rep.Matrix {
		name := ""
		if i < len(rep.DocumentNames) {
			name = rep.DocumentNames[i]
		}
		cells := []string{name}
		for _, v := range row {
			cells = append(cells, strconv.FormatFloat(v, 'f', 2, 64))
		}
		rows = append(rows, cells)
	}
	return r.newTable().
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return r.styles.Header
			}
			if row == col-1 {
				return r.styles.Muted.Padding(0, 1)
			}
			return r.scoreStyle(rep.Matrix[row][col-1], rep.threshold)
		}).
		Render()
}

func (r *Renderer) scoreStyle(score, threshold float64) lipgloss.Style {
	switch {
	case score >= threshold:
		return r.styles.Flagged
	case score >= threshold-nearMargin:
		return r.styles.Near
	default:
		return r.styles.Cell
	}
}

func (r *Renderer) plainStyle(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return r.styles.Header
	}
	return r.styles.Cell
}

func (r *Renderer) newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.Border)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
