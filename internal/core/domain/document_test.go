package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Source(t *testing.T) {
	now := time.Now()
	doc := Document{
		ID:         "doc-123",
		Filename:   "report.txt",
		Content:    "quarterly report text",
		MIMEType:   "text/plain",
		Size:       21,
		WordCount:  3,
		UploadedAt: now,
	}

	src := doc.Source()

	assert.Equal(t, "doc-123", src.ID)
	assert.Equal(t, "report.txt", src.Filename)
	assert.Equal(t, "quarterly report text", src.Text)
	assert.Equal(t, now, src.UploadedAt)
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "  \n\t ", 0},
		{"single", "word", 1},
		{"mixed whitespace", "one  two\nthree\tfour", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountWords(tt.text))
		})
	}
}
