package docs

import "fmt"

// Section is a block of a documentation page that may be linked to.
type Section struct {
	ID        string `yaml:"id" json:"id,omitempty"`
	Title     string `yaml:"title" json:"title,omitempty"`
	Name      string `yaml:"name" json:"name,omitempty"`
	Component string `yaml:"component" json:"component,omitempty"`
}

// TOCEntry is one line of a table of contents.
type TOCEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// TOC builds a table of contents from the sections that have a title or a
// name. Entries keep the order of the sections.
func TOC(sections []Section) []TOCEntry {
	toc := make([]TOCEntry, 0, len(sections))
	for i, s := range sections {
		label := s.Title
		if label == "" {
			label = s.Name
		}
		if label == "" {
			continue
		}

		id := s.ID
		if id == "" {
			id = Slugify(label)
		}
		if id == "" {
			id = fmt.Sprintf("section-%d", i)
		}

		typ := s.Component
		if typ == "" {
			typ = "section"
		}

		toc = append(toc, TOCEntry{ID: id, Label: label, Type: typ})
	}
	return toc
}
