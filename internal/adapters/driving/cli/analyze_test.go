package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

// addTestDocs stores one plain text document per text and returns their ids.
func addTestDocs(t *testing.T, s Services, texts ...string) []string {
	t.Helper()
	ids := make([]string, len(texts))
	for i, text := range texts {
		doc, err := s.Document.Add(context.Background(), string(rune('a'+i))+".txt", []byte(text))
		require.NoError(t, err)
		ids[i] = doc.ID
	}
	return ids
}

func TestAnalyzeCmd_Flags(t *testing.T) {
	for name, short := range map[string]string{"threshold": "t", "all-pairs": "a", "matrix": "m", "output": "o"} {
		flag := analyzeCmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, short, flag.Shorthand)
	}
}

func TestAnalyzeCmd_Table(t *testing.T) {
	s := setupTestServices(t)
	addTestDocs(t, s, testText, testText)

	out, err := executeCommand(t, "analyze", "--matrix")

	require.NoError(t, err)
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "b.txt")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "1.0000")
}

func TestAnalyzeCmd_JSON(t *testing.T) {
	s := setupTestServices(t)
	ids := addTestDocs(t, s, testText, testText, "entirely unrelated sentence about cooking pasta")

	out, err := executeCommand(t, "analyze", ids[0], ids[2], ids[1], "-o", "json", "-t", "0.9", "--all-pairs=false")

	require.NoError(t, err)
	var rep struct {
		Status           string `json:"status"`
		TotalDocuments   int    `json:"total_documents"`
		TotalComparisons int    `json:"total_comparisons"`
		SimilarPairs     []struct {
			Doc1    string `json:"doc1"`
			Doc2    string `json:"doc2"`
			Flagged bool   `json:"flagged"`
		} `json:"similar_pairs"`
		DocumentNames []string `json:"document_names"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "completed", rep.Status)
	assert.Equal(t, 3, rep.TotalDocuments)
	assert.Equal(t, 3, rep.TotalComparisons)
	assert.Equal(t, []string{"a.txt", "c.txt", "b.txt"}, rep.DocumentNames)
	require.Len(t, rep.SimilarPairs, 1)
	assert.Equal(t, "a.txt", rep.SimilarPairs[0].Doc1)
	assert.Equal(t, "b.txt", rep.SimilarPairs[0].Doc2)
	assert.True(t, rep.SimilarPairs[0].Flagged)
}

func TestAnalyzeCmd_YAML(t *testing.T) {
	s := setupTestServices(t)
	addTestDocs(t, s, testText, testText)

	out, err := executeCommand(t, "analyze", "-o", "yaml")

	require.NoError(t, err)
	var rep map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "completed", rep["status"])
}

func TestAnalyzeCmd_ValidationErrors(t *testing.T) {
	t.Run("threshold out of range", func(t *testing.T) {
		s := setupTestServices(t)
		addTestDocs(t, s, testText, testText)

		_, err := executeCommand(t, "analyze", "-t", "0.2")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidThreshold)
		assert.Contains(t, FormatError(err), "INVALID_THRESHOLD")
	})

	t.Run("too few documents", func(t *testing.T) {
		s := setupTestServices(t)
		addTestDocs(t, s, testText)

		_, err := executeCommand(t, "analyze")

		assert.ErrorIs(t, err, domain.ErrInsufficientDocuments)
	})

	t.Run("unknown document", func(t *testing.T) {
		s := setupTestServices(t)
		ids := addTestDocs(t, s, testText)

		_, err := executeCommand(t, "analyze", ids[0], "missing")

		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("invalid output format", func(t *testing.T) {
		setupTestServices(t)

		_, err := executeCommand(t, "analyze", "-o", "csv")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAnalyzeCmd_FailedJob(t *testing.T) {
	s := setupTestServices(t)
	addTestDocs(t, s, testText, "?!?! ...")

	out, err := executeCommand(t, "analyze")

	require.Error(t, err)
	var failed *jobFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, domain.KindEmptyDocument, failed.kind)
	assert.Contains(t, FormatError(err), "EMPTY_DOCUMENT: analysis job_")
	assert.Contains(t, out, "failed")
}

func TestAnalysisCmds(t *testing.T) {
	s := setupTestServices(t)
	addTestDocs(t, s, testText, testText)
	ctx := context.Background()

	jobID, err := s.Analysis.Analyze(ctx, nil, s.Analysis.DefaultConfig())
	require.NoError(t, err)

	out, err := executeCommand(t, "analysis", "wait", jobID)
	require.NoError(t, err)
	assert.Contains(t, out, "Analysis "+jobID)
	assert.Contains(t, out, "completed")

	out, err = executeCommand(t, "analysis", "list")
	require.NoError(t, err)
	assert.Contains(t, out, jobID)

	out, err = executeCommand(t, "analysis", "get", jobID, "-o", "json")
	require.NoError(t, err)
	var rep map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, jobID, rep["job_id"])

	out, err = executeCommand(t, "analysis", "delete", jobID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+jobID)

	out, err = executeCommand(t, "analysis", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No analyses.")

	_, err = executeCommand(t, "analysis", "get", jobID)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}
