// Package report turns analysis jobs and documents into the snapshots shown
// to users, and renders them as a styled table, JSON, or YAML.
package report

import (
	"fmt"
	"time"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// Pair is one compared document pair as reported.
type Pair struct {
	Doc1       string  `json:"doc1" yaml:"doc1"`
	Doc2       string  `json:"doc2" yaml:"doc2"`
	Doc1ID     string  `json:"doc1_id" yaml:"doc1_id"`
	Doc2ID     string  `json:"doc2_id" yaml:"doc2_id"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
	Percentage string  `json:"percentage" yaml:"percentage"`
	Flagged    bool    `json:"flagged" yaml:"flagged"`
}

// Statistics summarises the reported pairs.
type Statistics struct {
	TotalDocuments   int     `json:"total_documents" yaml:"total_documents"`
	TotalComparisons int     `json:"total_comparisons" yaml:"total_comparisons"`
	FlaggedPairs     int     `json:"flagged_pairs" yaml:"flagged_pairs"`
	AvgSimilarity    float64 `json:"avg_similarity" yaml:"avg_similarity"`
	MaxSimilarity    float64 `json:"max_similarity" yaml:"max_similarity"`
	MinSimilarity    float64 `json:"min_similarity" yaml:"min_similarity"`
	ProcessingTime   string  `json:"processing_time" yaml:"processing_time"`
}

// Report is the externally visible snapshot of an analysis job.
type Report struct {
	JobID            string      `json:"job_id" yaml:"job_id"`
	Status           string      `json:"status" yaml:"status"`
	TotalDocuments   int         `json:"total_documents" yaml:"total_documents"`
	TotalComparisons int         `json:"total_comparisons" yaml:"total_comparisons"`
	SimilarPairs     []Pair      `json:"similar_pairs" yaml:"similar_pairs"`
	Matrix           [][]float64 `json:"similarity_matrix" yaml:"similarity_matrix"`
	DocumentNames    []string    `json:"document_names" yaml:"document_names"`
	Statistics       *Statistics `json:"statistics" yaml:"statistics"`
	ErrorMessage     *string     `json:"error_message" yaml:"error_message"`
	ErrorKind        string      `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	CreatedAt        time.Time   `json:"created_at" yaml:"created_at"`
	CompletedAt      *time.Time  `json:"completed_at" yaml:"completed_at"`

	// threshold is kept for highlighting matrix cells; it is not serialised.
	threshold float64
}

// FromJob builds the report for a job snapshot. Result fields are empty
// until the job completes.
func FromJob(job *domain.AnalysisJob) *Report {
	r := &Report{
		JobID:          job.ID,
		Status:         job.Status.String(),
		TotalDocuments: len(job.DocumentIDs),
		SimilarPairs:   []Pair{},
		Matrix:         [][]float64{},
		DocumentNames:  []string{},
		CreatedAt:      job.CreatedAt,
		CompletedAt:    job.CompletedAt,
		threshold:      job.Config.Threshold,
	}
	if job.Error != "" {
		msg := job.Error
		r.ErrorMessage = &msg
		r.ErrorKind = job.ErrorKind
	}

	res := job.Result
	if res == nil {
		return r
	}

	r.TotalDocuments = res.Statistics.TotalDocuments
	r.TotalComparisons = res.Statistics.TotalComparisons
	for _, p := range res.Pairs {
		r.SimilarPairs = append(r.SimilarPairs, Pair{
			Doc1:       p.Doc1Name,
			Doc2:       p.Doc2Name,
			Doc1ID:     p.Doc1ID,
			Doc2ID:     p.Doc2ID,
			Similarity: p.Similarity,
			Percentage: FormatPercentage(p.Similarity),
			Flagged:    p.Flagged,
		})
	}
	if res.Matrix != nil {
		r.Matrix = res.Clone().Matrix
	}
	r.DocumentNames = append(r.DocumentNames, res.DocumentNames...)
	r.Statistics = &Statistics{
		TotalDocuments:   res.Statistics.TotalDocuments,
		TotalComparisons: res.Statistics.TotalComparisons,
		FlaggedPairs:     res.Statistics.FlaggedPairs,
		AvgSimilarity:    res.Statistics.AvgSimilarity,
		MaxSimilarity:    res.Statistics.MaxSimilarity,
		MinSimilarity:    res.Statistics.MinSimilarity,
		ProcessingTime:   FormatDuration(res.Statistics.ProcessingTime),
	}
	return r
}

// FromJobs builds reports for a list of job snapshots, keeping their order.
func FromJobs(jobs []domain.AnalysisJob) []*Report {
	out := make([]*Report, 0, len(jobs))
	for i := range jobs {
		out = append(out, FromJob(&jobs[i]))
	}
	return out
}

// Document is the listing view of a stored document, without its content.
type Document struct {
	ID         string    `json:"id" yaml:"id"`
	Filename   string    `json:"filename" yaml:"filename"`
	MIMEType   string    `json:"mime_type" yaml:"mime_type"`
	Size       int64     `json:"size" yaml:"size"`
	WordCount  int       `json:"word_count" yaml:"word_count"`
	UploadedAt time.Time `json:"uploaded_at" yaml:"uploaded_at"`
}

// FromDocuments builds listing views, keeping the input order.
func FromDocuments(docs []domain.Document) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, Document{
			ID:         d.ID,
			Filename:   d.Filename,
			MIMEType:   d.MIMEType,
			Size:       d.Size,
			WordCount:  d.WordCount,
			UploadedAt: d.UploadedAt,
		})
	}
	return out
}

// FormatPercentage renders a similarity in [0, 1] as "85.0%".
func FormatPercentage(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}

// FormatDuration renders d in the largest unit below which it falls:
// milliseconds under a second, then seconds, minutes, and hours.
func FormatDuration(d time.Duration) string {
	seconds := d.Seconds()
	switch {
	case seconds < 1:
		return fmt.Sprintf("%.0fms", seconds*1000)
	case seconds < 60:
		return fmt.Sprintf("%.1fs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1fm", seconds/60)
	default:
		return fmt.Sprintf("%.1fh", seconds/3600)
	}
}

// FormatSize renders a byte count as B, KB, MB, GB or TB with one decimal.
func FormatSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.1f%s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1fTB", value)
}
