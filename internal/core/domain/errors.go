package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type no extractor can handle.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrFileTooLarge indicates an upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// Validation Errors.
	// Surfaced synchronously at job creation; no job is allocated.

	// ErrInvalidThreshold indicates a similarity threshold outside the policy bounds.
	ErrInvalidThreshold = errors.New("invalid threshold")

	// ErrInsufficientDocuments indicates fewer than two documents were supplied.
	ErrInsufficientDocuments = errors.New("at least 2 documents are required")

	// ErrInvalidJobState indicates an operation is not allowed in the job's current status.
	ErrInvalidJobState = errors.New("invalid job state")

	// Processing Errors.
	// Raised inside the analysis pipeline; the job ends in failed.

	// ErrEmptyDocument indicates a document is empty after normalisation.
	ErrEmptyDocument = errors.New("document is empty after normalisation")

	// ErrEmptyCorpus indicates no document produced a single vocabulary term.
	ErrEmptyCorpus = errors.New("corpus contains no terms")

	// ErrDimensionMismatch indicates feature vectors built from different vocabularies.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrEngineClosed indicates the analysis engine has been torn down.
	ErrEngineClosed = errors.New("analysis engine closed")

	// ErrServiceStopped indicates the worker pool stopped before the job ran.
	ErrServiceStopped = errors.New("analysis service stopped")

	// Lookup Errors.

	// ErrJobNotFound indicates an unknown analysis job id.
	ErrJobNotFound = errors.New("job not found")

	// ErrDocumentNotFound indicates an unknown document id.
	ErrDocumentNotFound = errors.New("document not found")
)

// Stable machine-readable error kinds reported at the edges.
const (
	KindInvalidThreshold      = "INVALID_THRESHOLD"
	KindInsufficientDocuments = "INSUFFICIENT_DOCUMENTS"
	KindValidation            = "VALIDATION_ERROR"
	KindInvalidJobState       = "INVALID_JOB_STATE"
	KindUnsupportedFile       = "UNSUPPORTED_FILE"
	KindEmptyDocument         = "EMPTY_DOCUMENT"
	KindEmptyCorpus           = "EMPTY_CORPUS"
	KindDimensionMismatch     = "DIMENSION_MISMATCH"
	KindProcessing            = "PROCESSING_ERROR"
	KindJobNotFound           = "JOB_NOT_FOUND"
	KindDocumentNotFound      = "DOCUMENT_NOT_FOUND"
	KindInternal              = "INTERNAL_ERROR"
)

// kindTable is checked in order, so more specific sentinels come first.
var kindTable = []struct {
	err  error
	kind string
}{
	{ErrInvalidThreshold, KindInvalidThreshold},
	{ErrInsufficientDocuments, KindInsufficientDocuments},
	{ErrInvalidJobState, KindInvalidJobState},
	{ErrUnsupportedType, KindUnsupportedFile},
	{ErrFileTooLarge, KindUnsupportedFile},
	{ErrEmptyDocument, KindEmptyDocument},
	{ErrEmptyCorpus, KindEmptyCorpus},
	{ErrDimensionMismatch, KindDimensionMismatch},
	{ErrEngineClosed, KindProcessing},
	{ErrServiceStopped, KindProcessing},
	{ErrJobNotFound, KindJobNotFound},
	{ErrDocumentNotFound, KindDocumentNotFound},
	{ErrNotFound, KindDocumentNotFound},
	{ErrInvalidInput, KindValidation},
}

// ErrorKind returns the stable kind for err, or KindInternal when err
// does not wrap a known domain error. A nil error has no kind.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range kindTable {
		if errors.Is(err, entry.err) {
			return entry.kind
		}
	}
	return KindInternal
}

// IsNotFound reports whether err is a lookup failure.
func IsNotFound(err error) bool {
	kind := ErrorKind(err)
	return kind == KindJobNotFound || kind == KindDocumentNotFound
}
