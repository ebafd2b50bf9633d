package docs

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	snippetStart = "// @snippet:start "
	snippetEnd   = "// @snippet:end "
)

// Snippets loads code samples from files under Root.
type Snippets struct {
	Root string
}

// Load returns the contents of the file at path, relative to Root.
// Leading ../ elements are dropped so that the file stays under Root.
// If region is set and both its start and end markers are found, only the
// trimmed lines between them are returned.
// A missing file yields a comment naming it, so that it renders in place.
func (s Snippets) Load(path, region string) string {
	safe := sanitize(path)

	data, err := os.ReadFile(filepath.Join(s.Root, safe))
	if err != nil {
		return "// Error: Snippet not found at " + safe
	}
	content := string(data)

	if region == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	start := indexContaining(lines, snippetStart+region)
	end := indexContaining(lines, snippetEnd+region)
	if start == -1 || end == -1 {
		return content
	}
	if end <= start {
		return ""
	}

	return strings.TrimSpace(strings.Join(lines[start+1:end], "\n"))
}

func sanitize(path string) string {
	p := filepath.ToSlash(filepath.Clean(path))
	for p == ".." || strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(strings.TrimPrefix(p, ".."), "/")
	}
	return p
}

func indexContaining(lines []string, marker string) int {
	for i, l := range lines {
		if strings.Contains(l, marker) {
			return i
		}
	}
	return -1
}
