package menu

import "encoding/json"

// Item represents an individual node in a menu tree, which may contain sub-items.
type Item struct {
	// Text is an optional display string.
	Text string `json:"text,omitempty"`

	// Label is an optional display string, used by some menus instead of Text.
	Label string `json:"label,omitempty"`

	// Href is the route of the page this item links to.
	// Items without an Href are structural and only group their children.
	Href string `json:"href,omitempty"`

	// Icon is an optional icon name.
	Icon string `json:"icon,omitempty"`

	// Items are the sub-items of this menu item, in reading order.
	Items []Item `json:"items,omitempty"`

	// Attrs holds any additional attributes of the item.
	// They are passed through to JSON output unchanged.
	Attrs map[string]any `json:"-"`
}

// Linkable reports whether the item carries a route.
func (i Item) Linkable() bool {
	return i.Href != ""
}

// MarshalJSON inlines Attrs next to the known fields.
func (i Item) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(i.Attrs)+5)
	for k, v := range i.Attrs {
		out[k] = v
	}

	setString(out, "text", i.Text)
	setString(out, "label", i.Label)
	setString(out, "href", i.Href)
	setString(out, "icon", i.Icon)

	if len(i.Items) > 0 {
		out["items"] = i.Items
	}

	return json.Marshal(out)
}

func setString(m map[string]any, key, val string) {
	if val != "" {
		m[key] = val
	}
}

// itemsFrom converts a decoded sequence into items.
// Elements that are not objects are skipped.
func itemsFrom(raw []any) []Item {
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, itemFrom(m))
	}
	return items
}

// itemFrom converts a decoded object into an item.
// Keys are matched exactly; any other key, including a known key in a
// different case or holding an unexpected type, is kept in Attrs.
func itemFrom(m map[string]any) Item {
	var it Item
	for k, v := range m {
		switch k {
		case "text":
			if s, ok := v.(string); ok {
				it.Text = s
				continue
			}
		case "label":
			if s, ok := v.(string); ok {
				it.Label = s
				continue
			}
		case "href":
			if s, ok := v.(string); ok {
				it.Href = s
				continue
			}
		case "icon":
			if s, ok := v.(string); ok {
				it.Icon = s
				continue
			}
		case "items":
			if list, ok := v.([]any); ok {
				it.Items = itemsFrom(list)
				continue
			}
			if v == nil {
				continue
			}
		}

		if it.Attrs == nil {
			it.Attrs = make(map[string]any)
		}
		it.Attrs[k] = v
	}
	return it
}
