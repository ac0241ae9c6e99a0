package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath converts a user-supplied location to a local path.
// It accepts file:// URIs, a leading "~/" for the home directory, and bare paths.
func ResolvePath(uri string) string {
	path := strings.TrimPrefix(uri, "file://")
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
