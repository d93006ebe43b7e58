package sections

import "encoding/json"

// Document describes the raw contents of a store for tooling: every
// section with its options, raw values, and whether each value carries
// placeholders. It is JSON-serialisable.
type Document struct {
	Defaults []OptionDescriptor `json:"defaults,omitempty"`
	Sections []SectionSchema    `json:"sections"`
}

// SectionSchema describes one section.
type SectionSchema struct {
	Name    string             `json:"name"`
	Options []OptionDescriptor `json:"options"`
}

// OptionDescriptor describes one raw option.
type OptionDescriptor struct {
	Name         string `json:"name"`
	Raw          string `json:"raw"`
	Interpolated bool   `json:"interpolated,omitempty"`
}

// Schema generates the descriptor document for the store.
func (st *Store) Schema() Document {
	doc := Document{
		Defaults: describeOptions(st.defaults),
	}
	for _, name := range st.names {
		doc.Sections = append(doc.Sections, SectionSchema{
			Name:    name,
			Options: describeOptions(st.sections[name]),
		})
	}
	return doc
}

// ToJSON serialises the document.
func (d Document) ToJSON() ([]byte, error) {
	type alias Document
	return json.Marshal(alias(d))
}

func describeOptions(m *optionMap) []OptionDescriptor {
	if m == nil {
		return nil
	}
	out := make([]OptionDescriptor, 0, len(m.keys))
	for _, key := range m.keys {
		raw := m.values[key]
		out = append(out, OptionDescriptor{
			Name:         key,
			Raw:          raw,
			Interpolated: containsPlaceholder(raw),
		})
	}
	return out
}

// containsPlaceholder reports whether value holds an unescaped %( span.
func containsPlaceholder(value string) bool {
	for i := 0; i+1 < len(value); i++ {
		if value[i] != '%' {
			continue
		}
		switch value[i+1] {
		case '%':
			i++
		case '(':
			return true
		}
	}
	return false
}
