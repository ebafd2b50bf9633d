package menu

import "strings"

// Pagination holds the neighbours of a page in reading order.
// Both point into the tree they were computed from.
type Pagination struct {
	Prev *Item `json:"prev"`
	Next *Item `json:"next"`
}

// Normalize strips one trailing slash from p so that /docs/intro and
// /docs/intro/ compare equal.
func Normalize(p string) string {
	return strings.TrimSuffix(p, "/")
}

// frame is one level of the explicit traversal stack.
type frame struct {
	items []Item
	next  int
}

// walk visits every item of the tree in pre-order, left to right.
// An item is visited before its sub-items. ancestors holds the chain of
// items leading to item and is only valid for the duration of the call.
// Traversal stops as soon as visit returns false.
func walk(tree []Item, visit func(item *Item, ancestors []*Item) bool) {
	stack := []frame{{items: tree}}
	var ancestors []*Item

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.items) {
			stack = stack[:len(stack)-1]
			if len(ancestors) > 0 {
				ancestors = ancestors[:len(ancestors)-1]
			}
			continue
		}

		item := &top.items[top.next]
		top.next++

		if !visit(item, ancestors) {
			return
		}

		if len(item.Items) > 0 {
			stack = append(stack, frame{items: item.Items})
			ancestors = append(ancestors, item)
		}
	}
}

// Flatten returns the linkable items of the tree in reading order.
// A linkable item with sub-items precedes its sub-items.
func Flatten(tree []Item) []*Item {
	flat := make([]*Item, 0)
	walk(tree, func(item *Item, _ []*Item) bool {
		if item.Linkable() {
			flat = append(flat, item)
		}
		return true
	})
	return flat
}

// Paginate returns the items immediately before and after the page at
// current in reading order. If several items share the route, the first
// one wins. Both are nil when no item matches.
func Paginate(tree []Item, current string) Pagination {
	target := Normalize(current)
	flat := Flatten(tree)

	idx := -1
	for i, item := range flat {
		if Normalize(item.Href) == target {
			idx = i
			break
		}
	}

	var p Pagination
	if idx == -1 {
		return p
	}

	if idx > 0 {
		p.Prev = flat[idx-1]
	}
	if idx < len(flat)-1 {
		p.Next = flat[idx+1]
	}
	return p
}

// Breadcrumbs returns the chain of items from the root of the tree down to
// the first item, in depth-first order, whose route matches current.
// Structural ancestors are included. The result is empty when nothing
// matches.
func Breadcrumbs(tree []Item, current string) []*Item {
	target := Normalize(current)
	path := make([]*Item, 0)

	walk(tree, func(item *Item, ancestors []*Item) bool {
		if !item.Linkable() || Normalize(item.Href) != target {
			return true
		}
		path = append(path, ancestors...)
		path = append(path, item)
		return false
	})

	return path
}
