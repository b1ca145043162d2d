package template

import "strings"

// Codec converts between the memory markdown dialect and Document
// values. Parsing is line-oriented and never fails: lines that do not
// match the dialect are skipped, so malformed input simply yields
// fewer sections or items.
type Codec struct{}

// NewCodec creates a codec for the memory markdown dialect.
func NewCodec() *Codec {
	return &Codec{}
}

// Parse reads the memory dialect into a Document.
//
// Recognized lines:
//
//	# myAI Memory        banner, ignored
//	# <title>            opens a new section
//	## <description>     description of the current section
//	-~- <key>: <value>   item appended to the current section
//
// Everything else, including item lines missing a colon, is skipped.
func (c *Codec) Parse(text string) *Document {
	doc := &Document{Sections: []Section{}}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == Banner:
			// banner carries no content

		case strings.HasPrefix(trimmed, "## "):
			if len(doc.Sections) > 0 {
				doc.Sections[len(doc.Sections)-1].Description = strings.TrimSpace(trimmed[3:])
			}

		case strings.HasPrefix(trimmed, "# "):
			title := strings.TrimSpace(trimmed[2:])
			if title != "" {
				doc.Sections = append(doc.Sections, Section{Title: title, Items: []Item{}})
			}

		case strings.HasPrefix(trimmed, ItemMarker+" "):
			if len(doc.Sections) == 0 {
				continue
			}
			body := strings.TrimSpace(trimmed[len(ItemMarker)+1:])
			key, value, ok := strings.Cut(body, ":")
			if !ok {
				continue // item line without a colon is skipped
			}
			key = strings.TrimSpace(key)
			if key == "" {
				continue
			}
			sec := &doc.Sections[len(doc.Sections)-1]
			sec.Items = append(sec.Items, Item{Key: key, Value: strings.TrimSpace(value)})
		}
	}

	return doc
}

// Generate serializes a Document back into the memory dialect. It is
// the exact inverse of Parse for any document Generate produced: the
// banner, then per section the title line, the description line when
// non-empty, each item line, and a blank separator.
func (c *Codec) Generate(doc *Document) string {
	var b strings.Builder
	b.WriteString(Banner)
	b.WriteString("\n\n")

	for _, sec := range doc.Sections {
		b.WriteString("# ")
		b.WriteString(sec.Title)
		b.WriteString("\n")
		if sec.Description != "" {
			b.WriteString("## ")
			b.WriteString(sec.Description)
			b.WriteString("\n")
		}
		for _, item := range sec.Items {
			b.WriteString(ItemMarker)
			b.WriteString(" ")
			b.WriteString(item.Key)
			b.WriteString(": ")
			b.WriteString(item.Value)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// Validate performs the structural checks: every section has a
// non-empty title that is unique under case-insensitive comparison and
// distinct from the banner, and every item has a non-empty key.
// Semantic content is not checked.
func (c *Codec) Validate(doc *Document) bool {
	if doc == nil || doc.Sections == nil {
		return false
	}
	seen := make(map[string]bool, len(doc.Sections))
	for _, sec := range doc.Sections {
		if strings.TrimSpace(sec.Title) == "" || isBannerTitle(sec.Title) {
			return false
		}
		lower := strings.ToLower(sec.Title)
		if seen[lower] {
			return false
		}
		seen[lower] = true
		if sec.Items == nil {
			return false
		}
		for _, item := range sec.Items {
			if strings.TrimSpace(item.Key) == "" {
				return false
			}
		}
	}
	return true
}
