package markdown

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
	assert.Equal(t, 50, e.Priority())
	assert.Contains(t, e.SupportedMIMETypes(), "text/markdown")
}

func TestExtract_Success(t *testing.T) {
	content := "# Project Notes\n\nSome **bold** and *italic* text with a [link](https://example.com).\n\n" +
		"```go\nfunc main() {}\n```\n\n- first item\n- second item\n\n> quoted line\n"

	result, err := New().Extract(context.Background(), &domain.RawDocument{Content: []byte(content)})
	require.NoError(t, err)

	assert.Equal(t, "Project Notes", result.Metadata["title"])
	assert.Equal(t, "markdown", result.Metadata["format"])
	assert.Contains(t, result.Text, "Some bold and italic text with a link.")
	assert.Contains(t, result.Text, "first item")
	assert.Contains(t, result.Text, "quoted line")
	assert.NotContains(t, result.Text, "func main")
	assert.NotContains(t, result.Text, "https://")
	assert.NotContains(t, result.Text, "#")
}

func TestExtract_NoHeading(t *testing.T) {
	result, err := New().Extract(context.Background(), &domain.RawDocument{Content: []byte("plain words")})
	require.NoError(t, err)
	assert.Equal(t, "plain words", result.Text)
	_, ok := result.Metadata["title"]
	assert.False(t, ok)
}

func TestExtract_Nil(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtractMarkdownTitle(t *testing.T) {
	assert.Equal(t, "Title", extractMarkdownTitle("intro\n# Title\n## Sub"))
	assert.Equal(t, "", extractMarkdownTitle("## Only sub"))
}
