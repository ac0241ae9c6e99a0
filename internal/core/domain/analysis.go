package domain

import "time"

// JobStatus is the lifecycle state of an analysis job.
type JobStatus string

// Job lifecycle states. Completed and failed are terminal.
const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// IsValid returns true if the status is recognised.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobPending, JobProcessing, JobCompleted, JobFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transition is possible.
func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobPending:
		return next == JobProcessing
	case JobProcessing:
		return next == JobCompleted || next == JobFailed
	default:
		return false
	}
}

// String returns the string representation.
func (s JobStatus) String() string {
	return string(s)
}

// AnalysisConfig is the per-job configuration supplied at creation.
type AnalysisConfig struct {
	// Threshold is the minimum similarity for a pair to be flagged.
	Threshold float64

	// IncludeAllPairs returns every pair rather than only flagged ones.
	IncludeAllPairs bool
}

// SimilarityPair is one compared document pair. Doc1 precedes Doc2 in the
// job's document order.
type SimilarityPair struct {
	Doc1ID     string
	Doc2ID     string
	Doc1Name   string
	Doc2Name   string
	Similarity float64
	Flagged    bool
}

// Statistics summarises the pairs returned by one job.
type Statistics struct {
	TotalDocuments   int
	TotalComparisons int
	FlaggedPairs     int
	AvgSimilarity    float64
	MaxSimilarity    float64
	MinSimilarity    float64
	Threshold        float64
	ProcessingTime   time.Duration
}

// AnalysisResult is the output of a completed pipeline run.
type AnalysisResult struct {
	Pairs          []SimilarityPair
	Matrix         [][]float64
	DocumentNames  []string
	VocabularySize int
	Statistics     Statistics
}

// Clone returns a deep copy so callers cannot alias registry state.
func (r *AnalysisResult) Clone() *AnalysisResult {
	if r == nil {
		return nil
	}
	out := *r
	out.Pairs = append([]SimilarityPair(nil), r.Pairs...)
	out.DocumentNames = append([]string(nil), r.DocumentNames...)
	if r.Matrix != nil {
		out.Matrix = make([][]float64, len(r.Matrix))
		for i, row := range r.Matrix {
			out.Matrix[i] = append([]float64(nil), row...)
		}
	}
	return &out
}

// AnalysisJob is one asynchronous execution of the pipeline over a document set.
type AnalysisJob struct {
	// ID is the job identifier ("job_" followed by 12 hex characters).
	ID string

	// Status is the current lifecycle state.
	Status JobStatus

	// Config is the configuration the job was created with.
	Config AnalysisConfig

	// DocumentIDs is the ordered document set resolved at creation.
	DocumentIDs []string

	// Result is set once the job completes.
	Result *AnalysisResult

	// Error holds the failure message once the job fails.
	Error string

	// ErrorKind is the stable kind of the failure (see ErrorKind).
	ErrorKind string

	// CreatedAt is when the job was allocated.
	CreatedAt time.Time

	// StartedAt is when a worker began the pipeline.
	StartedAt *time.Time

	// CompletedAt is when the job reached a terminal state.
	CompletedAt *time.Time
}

// Clone returns a deep copy of the job.
func (j *AnalysisJob) Clone() *AnalysisJob {
	if j == nil {
		return nil
	}
	out := *j
	out.DocumentIDs = append([]string(nil), j.DocumentIDs...)
	out.Result = j.Result.Clone()
	if j.StartedAt != nil {
		t := *j.StartedAt
		out.StartedAt = &t
	}
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		out.CompletedAt = &t
	}
	return &out
}
