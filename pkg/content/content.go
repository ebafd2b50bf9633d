// Package content provides menu sources backed by files or memory.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidNamespace is returned for namespace names that are not a
// single path element.
var ErrInvalidNamespace = errors.New("invalid namespace")

// extensions lists the file types decoded as content entries.
// JSON is a subset of YAML, so both go through the YAML decoder.
var extensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// Dir reads namespaces from subdirectories of a content root.
// Each file in <root>/<namespace>/ is one entry keyed by its base name
// without extension. When several files share a base name, the first in
// file name order wins and the others are skipped with a warning.
// Nothing is cached: every call reads the files again.
type Dir struct {
	Root string
}

// NewDir creates a new file-backed source rooted at root.
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

// Namespace returns the decoded entries of the named namespace.
// A namespace without a directory is empty.
func (d *Dir) Namespace(ctx context.Context, name string) (map[string]any, error) {
	if err := validateNamespace(name); err != nil {
		return nil, err
	}

	dir := filepath.Join(d.Root, name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("reading namespace %s: %w", name, err)
	}

	out := make(map[string]any, len(entries))
	files := make(map[string]string, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || !extensions[ext] {
			continue
		}

		id := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if prev, ok := files[id]; ok {
			slog.Warn("duplicate content entry, skipping",
				"namespace", name,
				"id", id,
				"kept", prev,
				"skipped", e.Name())
			continue
		}

		v, err := decodeFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out[id] = v
		files[id] = e.Name()
	}

	return out, nil
}

func decodeFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return normalize(v), nil
}

// normalize converts maps with non-string keys, which YAML allows, into
// map[string]any so that every decoded object has the same type.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}

func validateNamespace(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidNamespace, name)
	}
	return nil
}

// Map is an in-memory source: namespace name to entries.
type Map map[string]map[string]any

// Namespace returns the entries of the named namespace, or an empty map.
func (m Map) Namespace(_ context.Context, name string) (map[string]any, error) {
	if ns, ok := m[name]; ok {
		return ns, nil
	}
	return map[string]any{}, nil
}
