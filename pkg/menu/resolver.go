package menu

import (
	"context"
	"log/slog"

	"github.com/mchmarny/docnav/pkg/metric"
)

const (
	// NamespaceMenus is the content namespace holding menu definitions.
	NamespaceMenus = "menus"

	// NamespaceShared is the fallback namespace for menus defined as shared content.
	NamespaceShared = "shared"
)

// Resolution outcomes, used as the label value of the resolution counter.
const (
	OutcomeMenus     = "menus"
	OutcomeShared    = "shared"
	OutcomeMissing   = "missing"
	OutcomeMalformed = "malformed"
	OutcomeError     = "error"
)

// Source provides decoded content entries by namespace.
type Source interface {
	// Namespace returns every entry of the named namespace keyed by ID.
	Namespace(ctx context.Context, name string) (map[string]any, error)
}

// Diagnostics receives the resolver's warnings and errors.
// *slog.Logger satisfies it.
type Diagnostics interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Shape is the form a raw menu definition takes.
type Shape int

const (
	// Malformed is neither a sequence nor an object with items.
	Malformed Shape = iota

	// ArrayForm is a menu defined directly as a sequence of items.
	ArrayForm

	// ItemsWrapperForm is an object whose items field holds the menu.
	ItemsWrapperForm
)

// String returns the name of the shape.
func (s Shape) String() string {
	switch s {
	case ArrayForm:
		return "array"
	case ItemsWrapperForm:
		return "items"
	default:
		return "malformed"
	}
}

// Classify determines the shape of a raw menu definition and returns the
// sequence it holds. The sequence is nil for Malformed.
func Classify(raw any) (Shape, []any) {
	switch v := raw.(type) {
	case []any:
		return ArrayForm, v
	case map[string]any:
		items, ok := v["items"]
		if !ok {
			return Malformed, nil
		}
		list, _ := items.([]any)
		return ItemsWrapperForm, list
	default:
		return Malformed, nil
	}
}

// Resolver looks up menus by ID in a content source.
// It holds no state between calls: every resolution reads the source again.
type Resolver struct {
	source  Source
	diag    Diagnostics
	counter metric.IncrementalCounter
}

// ResolverOption is a functional option for configuring the Resolver.
type ResolverOption func(*Resolver)

// WithDiagnostics sets the sink for warnings and errors.
// If not specified, slog.Default() is used.
func WithDiagnostics(d Diagnostics) ResolverOption {
	return func(r *Resolver) { r.diag = d }
}

// WithCounter sets the counter incremented with the outcome of each resolution.
func WithCounter(c metric.IncrementalCounter) ResolverOption {
	return func(r *Resolver) { r.counter = c }
}

// NewResolver creates a new Resolver reading from the provided source.
func NewResolver(src Source, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source: src,
		diag:   slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve returns the items of the menu with the provided ID.
//
// The menu is looked up in the menus namespace first, where it may be
// defined as a sequence or as an object with an items field. When it is
// not found there, the shared namespace is consulted and its value is used
// without unwrapping. A missing or malformed menu, or a failing source,
// yields an empty sequence, never an error.
func (r *Resolver) Resolve(ctx context.Context, id string) []Item {
	items, outcome := r.resolve(ctx, id)
	if r.counter != nil {
		r.counter.Increment(outcome)
	}
	return items
}

func (r *Resolver) resolve(ctx context.Context, id string) ([]Item, string) {
	menus, err := r.source.Namespace(ctx, NamespaceMenus)
	if err != nil {
		r.diag.Error("error fetching menu", "id", id, "namespace", NamespaceMenus, "error", err)
		return []Item{}, OutcomeError
	}

	if raw := menus[id]; !absent(raw) {
		shape, list := Classify(raw)
		if shape == Malformed {
			return []Item{}, OutcomeMalformed
		}
		return itemsFrom(list), OutcomeMenus
	}

	r.diag.Warn("menu not found, checking shared", "id", id, "namespace", NamespaceMenus)

	shared, err := r.source.Namespace(ctx, NamespaceShared)
	if err != nil {
		r.diag.Error("error fetching menu", "id", id, "namespace", NamespaceShared, "error", err)
		return []Item{}, OutcomeError
	}

	raw := shared[id]
	if absent(raw) {
		return []Item{}, OutcomeMissing
	}

	// shared values are used as-is, an items wrapper is not unwrapped
	list, ok := raw.([]any)
	if !ok {
		return []Item{}, OutcomeMalformed
	}

	return itemsFrom(list), OutcomeShared
}

// absent reports whether a definition counts as not defined at all:
// null, an empty string, false or zero.
func absent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case int:
		return t == 0
	case int64:
		return t == 0
	case uint64:
		return t == 0
	case float64:
		return t == 0
	default:
		return false
	}
}
