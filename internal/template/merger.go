package template

import (
	"strings"

	syncerrors "github.com/myai-oss/memsync/internal/errors"
)

// Extractor turns free text into key/value items. Implemented by the
// extract package; the merger falls back to it when an update contains
// no item-marker lines.
type Extractor interface {
	Extract(text string) []Item
}

// Merger applies partial updates to a document: either a raw markdown
// fragment in the memory dialect or free text routed through the
// extractor. Merger methods never mutate their input document.
type Merger struct {
	codec     *Codec
	extractor Extractor
}

// NewMerger creates a merger over the given codec and extractor.
func NewMerger(codec *Codec, extractor Extractor) *Merger {
	return &Merger{codec: codec, extractor: extractor}
}

// UpdateSection merges rawContent into the section named title and
// returns the merged document. The input document is left untouched so
// callers can roll back if persistence fails.
//
// Fragments containing at least one item-marker line are parsed with
// the codec under a synthetic section header; anything else goes
// through the extractor, falling back to a single generic Info item.
func (m *Merger) UpdateSection(doc *Document, title, rawContent string) (*Document, error) {
	if strings.TrimSpace(title) == "" {
		return nil, syncerrors.New(syncerrors.CodeMergeFailed, "section title must not be empty")
	}
	if isBannerTitle(title) {
		return nil, syncerrors.New(syncerrors.CodeMergeFailed,
			"section title collides with the document banner")
	}

	var fragment Section
	if containsItemLine(rawContent) {
		parsed := m.codec.Parse("# " + title + "\n" + rawContent)
		picked := pickFragment(parsed, title)
		if picked == nil || len(picked.Items) == 0 {
			return nil, syncerrors.New(syncerrors.CodeMergeFailed,
				"fragment has item markers but no parseable items")
		}
		fragment = *picked
	} else {
		items := m.extractor.Extract(rawContent)
		if len(items) == 0 {
			items = []Item{{Key: "Info", Value: strings.TrimSpace(rawContent)}}
		}
		fragment = Section{Title: title, Items: items}
	}

	merged := doc.Clone()
	existing := merged.FindSection(title)
	if existing == nil {
		merged.Sections = append(merged.Sections, Section{
			Title:       title,
			Description: fragment.Description,
			Items:       fragment.Items,
		})
		return merged, nil
	}

	mergeItems(existing, fragment.Items)
	if fragment.Description != "" {
		existing.Description = fragment.Description
	}
	return merged, nil
}

// UpdateDocument parses newText wholesale and returns the replacement
// document only when it validates; invalid input is rejected with no
// partial replacement.
func (m *Merger) UpdateDocument(newText string) (*Document, error) {
	doc := m.codec.Parse(newText)
	if !m.codec.Validate(doc) || len(doc.Sections) == 0 {
		return nil, syncerrors.New(syncerrors.CodeValidationFailed,
			"replacement text is not a valid memory document")
	}
	return doc, nil
}

// mergeItems overwrites or inserts updates into sec. Existing keys keep
// their first-seen casing and position; new keys append in update
// order. Items absent from the update are preserved unchanged.
func mergeItems(sec *Section, updates []Item) {
	for _, upd := range updates {
		if cur := sec.FindItem(upd.Key); cur != nil {
			cur.Value = upd.Value
			continue
		}
		sec.Items = append(sec.Items, upd)
	}
}

// pickFragment selects the fragment section from a parsed wrapped
// update: the section whose title matches, otherwise the first one
// carrying items (a fragment that opens with its own header lands
// after the synthetic one).
func pickFragment(parsed *Document, title string) *Section {
	if sec := parsed.FindSection(title); sec != nil && len(sec.Items) > 0 {
		return sec
	}
	for i := range parsed.Sections {
		if len(parsed.Sections[i].Items) > 0 {
			return &parsed.Sections[i]
		}
	}
	return nil
}

func containsItemLine(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), ItemMarker+" ") {
			return true
		}
	}
	return false
}
