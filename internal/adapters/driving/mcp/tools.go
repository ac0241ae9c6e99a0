package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/dupecheck/internal/adapters/driving/report"
	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// AddDocumentInput is the input schema for the add_document tool.
type AddDocumentInput struct {
	Filename      string `json:"filename" jsonschema:"file name including its extension, which selects the extractor"`
	Content       string `json:"content,omitempty" jsonschema:"document text for text based formats"`
	ContentBase64 string `json:"content_base64,omitempty" jsonschema:"base64 encoded file bytes, for binary formats such as docx or pdf"`
}

// DocumentOutput describes one stored document.
type DocumentOutput struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	MIMEType   string `json:"mime_type"`
	Size       int64  `json:"size"`
	WordCount  int    `json:"word_count"`
	UploadedAt string `json:"uploaded_at"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentIDInput identifies a document.
type DocumentIDInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document id"`
}

// DeleteOutput reports a successful deletion.
type DeleteOutput struct {
	Deleted string `json:"deleted"`
}

// AnalyzeInput is the input schema for the analyze_documents tool.
type AnalyzeInput struct {
	DocumentIDs     []string `json:"document_ids,omitempty" jsonschema:"documents to compare; every stored document when empty"`
	Threshold       *float64 `json:"threshold,omitempty" jsonschema:"minimum similarity for a pair to be flagged (default from settings)"`
	IncludeAllPairs *bool    `json:"include_all_pairs,omitempty" jsonschema:"report every pair rather than only flagged ones"`
	Wait            bool     `json:"wait,omitempty" jsonschema:"block until the analysis finishes and return its report"`
}

// AnalyzeOutput is the output schema for the analyze_documents tool.
type AnalyzeOutput struct {
	JobID  string          `json:"job_id"`
	Status string          `json:"status"`
	Report *AnalysisOutput `json:"report,omitempty"`
}

// JobIDInput identifies an analysis job.
type JobIDInput struct {
	JobID string `json:"job_id" jsonschema:"the analysis job id"`
}

// PairOutput is one compared document pair.
type PairOutput struct {
	Doc1       string  `json:"doc1"`
	Doc2       string  `json:"doc2"`
	Doc1ID     string  `json:"doc1_id"`
	Doc2ID     string  `json:"doc2_id"`
	Similarity float64 `json:"similarity"`
	Percentage string  `json:"percentage"`
	Flagged    bool    `json:"flagged"`
}

// StatisticsOutput summarises the reported pairs.
type StatisticsOutput struct {
	FlaggedPairs   int     `json:"flagged_pairs"`
	AvgSimilarity  float64 `json:"avg_similarity"`
	MaxSimilarity  float64 `json:"max_similarity"`
	MinSimilarity  float64 `json:"min_similarity"`
	ProcessingTime string  `json:"processing_time"`
}

// AnalysisOutput is the snapshot of an analysis job. Timestamps are RFC 3339.
type AnalysisOutput struct {
	JobID            string            `json:"job_id"`
	Status           string            `json:"status"`
	TotalDocuments   int               `json:"total_documents"`
	TotalComparisons int               `json:"total_comparisons"`
	SimilarPairs     []PairOutput      `json:"similar_pairs"`
	Matrix           [][]float64       `json:"similarity_matrix"`
	DocumentNames    []string          `json:"document_names"`
	Statistics       *StatisticsOutput `json:"statistics,omitempty"`
	ErrorMessage     string            `json:"error_message,omitempty"`
	ErrorKind        string            `json:"error_kind,omitempty"`
	CreatedAt        string            `json:"created_at"`
	CompletedAt      string            `json:"completed_at,omitempty"`
}

// ListAnalysesInput is the input schema for the list_analyses tool.
type ListAnalysesInput struct{}

// ListAnalysesOutput is the output schema for the list_analyses tool.
type ListAnalysesOutput struct {
	Analyses []AnalysisOutput `json:"analyses"`
	Count    int              `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_document",
		Description: "Store a document for duplicate analysis",
	}, s.handleAddDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List stored documents, newest first",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_document",
		Description: "Remove a stored document",
	}, s.handleDeleteDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_documents",
		Description: "Start a near-duplicate analysis; returns the job id unless wait is set",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_analysis",
		Description: "Get the status and results of an analysis job",
	}, s.handleGetAnalysis)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_analyses",
		Description: "List analysis jobs, newest first",
	}, s.handleListAnalyses)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_analysis",
		Description: "Remove an analysis job",
	}, s.handleDeleteAnalysis)
}

func (s *Server) handleAddDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddDocumentInput,
) (*mcp.CallToolResult, DocumentOutput, error) {
	content := []byte(input.Content)
	if input.ContentBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(input.ContentBase64)
		if err != nil {
			return nil, DocumentOutput{}, toolError(fmt.Errorf("%w: content_base64: %v", domain.ErrInvalidInput, err))
		}
		content = decoded
	}

	doc, err := s.ports.Document.Add(ctx, input.Filename, content)
	if err != nil {
		return nil, DocumentOutput{}, toolError(err)
	}
	return nil, documentOutput(doc), nil
}

func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, ListDocumentsOutput{}, toolError(err)
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(docs)),
		Count:     len(docs),
	}
	for i := range docs {
		output.Documents[i] = documentOutput(&docs[i])
	}
	return nil, output, nil
}

func (s *Server) handleDeleteDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentIDInput,
) (*mcp.CallToolResult, DeleteOutput, error) {
	if err := s.ports.Document.Delete(ctx, input.DocumentID); err != nil {
		return nil, DeleteOutput{}, toolError(err)
	}
	return nil, DeleteOutput{Deleted: input.DocumentID}, nil
}

func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	cfg := s.ports.Analysis.DefaultConfig()
	if input.Threshold != nil {
		cfg.Threshold = *input.Threshold
	}
	if input.IncludeAllPairs != nil {
		cfg.IncludeAllPairs = *input.IncludeAllPairs
	}

	jobID, err := s.ports.Analysis.Analyze(ctx, input.DocumentIDs, cfg)
	if err != nil {
		return nil, AnalyzeOutput{}, toolError(err)
	}
	if !input.Wait {
		return nil, AnalyzeOutput{JobID: jobID, Status: domain.JobProcessing.String()}, nil
	}

	job, err := s.ports.Analysis.Wait(ctx, jobID)
	if err != nil {
		return nil, AnalyzeOutput{}, toolError(err)
	}
	out := analysisOutput(job)
	return nil, AnalyzeOutput{JobID: jobID, Status: out.Status, Report: &out}, nil
}

func (s *Server) handleGetAnalysis(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input JobIDInput,
) (*mcp.CallToolResult, AnalysisOutput, error) {
	job, err := s.ports.Analysis.Get(ctx, input.JobID)
	if err != nil {
		return nil, AnalysisOutput{}, toolError(err)
	}
	return nil, analysisOutput(job), nil
}

func (s *Server) handleListAnalyses(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListAnalysesInput,
) (*mcp.CallToolResult, ListAnalysesOutput, error) {
	jobs, err := s.ports.Analysis.List(ctx)
	if err != nil {
		return nil, ListAnalysesOutput{}, toolError(err)
	}

	output := ListAnalysesOutput{
		Analyses: make([]AnalysisOutput, len(jobs)),
		Count:    len(jobs),
	}
	for i := range jobs {
		output.Analyses[i] = analysisOutput(&jobs[i])
	}
	return nil, output, nil
}

func (s *Server) handleDeleteAnalysis(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input JobIDInput,
) (*mcp.CallToolResult, DeleteOutput, error) {
	if err := s.ports.Analysis.Delete(ctx, input.JobID); err != nil {
		return nil, DeleteOutput{}, toolError(err)
	}
	return nil, DeleteOutput{Deleted: input.JobID}, nil
}

func documentOutput(doc *domain.Document) DocumentOutput {
	return DocumentOutput{
		ID:         doc.ID,
		Filename:   doc.Filename,
		MIMEType:   doc.MIMEType,
		Size:       doc.Size,
		WordCount:  doc.WordCount,
		UploadedAt: doc.UploadedAt.Format(time.RFC3339),
	}
}

// analysisOutput flattens the shared report view into the tool schema.
func analysisOutput(job *domain.AnalysisJob) AnalysisOutput {
	r := report.FromJob(job)
	out := AnalysisOutput{
		JobID:            r.JobID,
		Status:           r.Status,
		TotalDocuments:   r.TotalDocuments,
		TotalComparisons: r.TotalComparisons,
		SimilarPairs:     make([]PairOutput, len(r.SimilarPairs)),
		Matrix:           r.Matrix,
		DocumentNames:    r.DocumentNames,
		ErrorKind:        r.ErrorKind,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
	for i, p := range r.SimilarPairs {
		out.SimilarPairs[i] = PairOutput(p)
	}
	if r.Statistics != nil {
		out.Statistics = &StatisticsOutput{
			FlaggedPairs:   r.Statistics.FlaggedPairs,
			AvgSimilarity:  r.Statistics.AvgSimilarity,
			MaxSimilarity:  r.Statistics.MaxSimilarity,
			MinSimilarity:  r.Statistics.MinSimilarity,
			ProcessingTime: r.Statistics.ProcessingTime,
		}
	}
	if r.ErrorMessage != nil {
		out.ErrorMessage = *r.ErrorMessage
	}
	if r.CompletedAt != nil {
		out.CompletedAt = r.CompletedAt.Format(time.RFC3339)
	}
	return out
}
