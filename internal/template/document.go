// Package template implements the memory document model and the
// markdown codec and merge semantics that keep it stable across
// round-trips and partial updates.
package template

import "strings"

// Banner is the first line of every serialized memory document and the
// start marker of the memory region inside destination files.
const Banner = "# myAI Memory"

// ItemMarker prefixes every key/value line in the memory dialect.
const ItemMarker = "-~-"

// isBannerTitle reports whether a section titled t would serialize to
// the banner line. Such a section cannot survive a round-trip: Parse
// treats its heading as the banner and drops the section, so the title
// is reserved.
func isBannerTitle(t string) bool {
	return strings.EqualFold("# "+strings.TrimSpace(t), Banner)
}

// Item is a single key/value preference entry within a section.
type Item struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Section is a named, ordered group of items plus an optional
// free-text description. Titles are unique case-insensitively.
type Section struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Items       []Item `json:"items"`
}

// Document is the root memory entity: an ordered sequence of sections.
// Order is significant and reproduced on serialization.
type Document struct {
	Sections []Section `json:"sections"`
}

// NewDefaultDocument synthesizes the document used when the canonical
// store does not exist yet.
func NewDefaultDocument() *Document {
	return &Document{
		Sections: []Section{
			{
				Title:       "User Information",
				Description: "Personal details and preferences",
				Items:       []Item{},
			},
		},
	}
}

// FindSection returns the section matching title case-insensitively,
// or nil if absent. The stored casing is whatever was last written.
func (d *Document) FindSection(title string) *Section {
	for i := range d.Sections {
		if strings.EqualFold(d.Sections[i].Title, title) {
			return &d.Sections[i]
		}
	}
	return nil
}

// FindItem returns the item matching key case-insensitively, or nil.
func (s *Section) FindItem(key string) *Item {
	for i := range s.Items {
		if strings.EqualFold(s.Items[i].Key, key) {
			return &s.Items[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the document. Mutating operations work
// on a clone so a failed persist can roll back to the original.
func (d *Document) Clone() *Document {
	out := &Document{Sections: make([]Section, len(d.Sections))}
	for i, sec := range d.Sections {
		items := make([]Item, len(sec.Items))
		copy(items, sec.Items)
		out.Sections[i] = Section{
			Title:       sec.Title,
			Description: sec.Description,
			Items:       items,
		}
	}
	return out
}
