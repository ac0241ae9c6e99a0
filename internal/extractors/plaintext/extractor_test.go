package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dupecheck/internal/core/domain"
)

func TestNew(t *testing.T) {
	e := New()
	require.NotNil(t, e)
	assert.Equal(t, 5, e.Priority())
	assert.Contains(t, e.SupportedMIMETypes(), "text/plain")
}

func TestExtract_Success(t *testing.T) {
	raw := &domain.RawDocument{
		Filename: "notes.txt",
		MIMEType: "text/plain",
		Content:  []byte("The quick brown fox.\nJumps over."),
	}

	result, err := New().Extract(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "The quick brown fox.\nJumps over.", result.Text)
	assert.Equal(t, "text", result.Metadata["format"])
}

func TestExtract_StripsByteOrderMark(t *testing.T) {
	raw := &domain.RawDocument{Content: []byte("\xef\xbb\xbfhello")}

	result, err := New().Extract(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "hello", result.Text)
}

func TestExtract_InvalidUTF8(t *testing.T) {
	raw := &domain.RawDocument{Content: []byte("ab\xffcd")}

	result, err := New().Extract(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "ab\uFFFDcd", result.Text)
}

func TestExtract_Empty(t *testing.T) {
	result, err := New().Extract(context.Background(), &domain.RawDocument{})
	require.NoError(t, err)
	assert.Empty(t, result.Text)
}

func TestExtract_Nil(t *testing.T) {
	result, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}
