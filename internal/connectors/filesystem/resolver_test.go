package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{
			name: "file:// URI is converted to local path",
			uri:  "file:///Users/test/documents",
			want: "/Users/test/documents",
		},
		{
			name: "file:// URI with spaces",
			uri:  "file:///Users/test/my documents",
			want: "/Users/test/my documents",
		},
		{
			name: "bare path passes through unchanged",
			uri:  "/Users/test/documents",
			want: "/Users/test/documents",
		},
		{
			name: "relative path passes through unchanged",
			uri:  "relative/path",
			want: "relative/path",
		},
		{
			name: "empty string passes through",
			uri:  "",
			want: "",
		},
		{
			name: "file:// prefix only",
			uri:  "file://",
			want: "",
		},
		{
			name: "tilde inside a name is kept",
			uri:  "/tmp/~notes",
			want: "/tmp/~notes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.uri))
		})
	}
}

func TestResolvePath_Home(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ResolvePath("~"))
	assert.Equal(t, filepath.Join(home, "docs"), ResolvePath("~/docs"))
	assert.Equal(t, filepath.Join(home, "docs"), ResolvePath("file://~/docs"))
}
