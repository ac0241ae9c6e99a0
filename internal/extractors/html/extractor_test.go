package html

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
	assert.Equal(t, []string{"text/html", "application/xhtml+xml"}, e.SupportedMIMETypes())
}

func TestExtract_Success(t *testing.T) {
	content := `<!DOCTYPE html>
<html>
<head><title>Quarterly &amp; Annual</title><style>p { color: red; }</style></head>
<body>
<script>var x = "hidden";</script>
<h1>Report</h1>
<p>Revenue <b>grew</b> this year.</p>
<!-- draft note -->
<ul><li>One</li><li>Two</li></ul>
</body>
</html>`

	result, err := New().Extract(context.Background(), &domain.RawDocument{Content: []byte(content)})
	require.NoError(t, err)

	assert.Equal(t, "Quarterly & Annual", result.Metadata["title"])
	assert.Equal(t, "html", result.Metadata["format"])
	assert.Contains(t, result.Text, "Report")
	assert.Contains(t, result.Text, "Revenue grew this year.")
	assert.Contains(t, result.Text, "One")
	assert.NotContains(t, result.Text, "hidden")
	assert.NotContains(t, result.Text, "color")
	assert.NotContains(t, result.Text, "draft")
	assert.NotContains(t, result.Text, "<")
}

func TestExtract_AdjacentCellsStaySeparate(t *testing.T) {
	content := `<table><tr><td>alpha</td><td>beta</td></tr></table>`

	result, err := New().Extract(context.Background(), &domain.RawDocument{Content: []byte(content)})
	require.NoError(t, err)
	assert.NotContains(t, result.Text, "alphabeta")
}

func TestExtract_NoTitle(t *testing.T) {
	result, err := New().Extract(context.Background(), &domain.RawDocument{Content: []byte("<p>text</p>")})
	require.NoError(t, err)
	_, ok := result.Metadata["title"]
	assert.False(t, ok)
	assert.Equal(t, "text", result.Text)
}

func TestExtract_Nil(t *testing.T) {
	_, err := New().Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"entities", "<p>fish &amp; chips &lt;3</p>", "fish & chips <3"},
		{"line breaks", "one<br>two<br/>three", "one\ntwo\nthree"},
		{"collapse spaces", "<p>a    b\t\tc</p>", "a b c"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripHTML(tt.input))
		})
	}
}
