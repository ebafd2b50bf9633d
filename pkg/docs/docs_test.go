package docs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Getting Started", "getting-started"},
		{"  Trim me  ", "trim-me"},
		{"Q&A", "q-and-a"},
		{"Rock & Roll", "rock-and-roll"},
		{"Hello, World!", "hello-world"},
		{"snake_case stays", "snake_case-stays"},
		{"--leading and trailing--", "leading-and-trailing"},
		{"Café", "caf"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestTOC(t *testing.T) {
	toc := TOC([]Section{
		{Title: "Overview"},
		{Component: "code"},
		{Name: "Install Steps", Component: "steps"},
		{ID: "custom", Title: "Custom"},
		{Title: "???"},
	})

	assert.Equal(t, []TOCEntry{
		{ID: "overview", Label: "Overview", Type: "section"},
		{ID: "install-steps", Label: "Install Steps", Type: "steps"},
		{ID: "custom", Label: "Custom", Type: "section"},
		{ID: "section-4", Label: "???", Type: "section"},
	}, toc)

	assert.Empty(t, TOC(nil))
}

const sample = `package main

// @snippet:start setup
	cfg := load()
	run(cfg)
// @snippet:end setup

func main() {}
`

func TestSnippetsLoad(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "go"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go", "main.go"), []byte(sample), 0o644))
	s := Snippets{Root: root}

	t.Run("whole file", func(t *testing.T) {
		assert.Equal(t, sample, s.Load("go/main.go", ""))
	})

	t.Run("region", func(t *testing.T) {
		assert.Equal(t, "cfg := load()\n\trun(cfg)", s.Load("go/main.go", "setup"))
	})

	t.Run("unknown region", func(t *testing.T) {
		assert.Equal(t, sample, s.Load("go/main.go", "teardown"))
	})

	t.Run("traversal", func(t *testing.T) {
		assert.Equal(t, sample, s.Load("../../go/main.go", ""))
	})

	t.Run("missing", func(t *testing.T) {
		assert.Equal(t, "// Error: Snippet not found at go/nope.go", s.Load("go/nope.go", ""))
	})
}
