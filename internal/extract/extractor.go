// Package extract provides best-effort extraction of key/value
// preference items from free text. It is a pattern classifier, not an
// NLP engine: ordered categories hold ordered regex patterns, the
// category with the most matches wins, and ties resolve by declaration
// order. That tie-breaking is an accepted heuristic.
package extract

import (
	"regexp"
	"strings"

	"github.com/myai-oss/memsync/internal/template"
)

// pattern maps one sentence shape to a keyed item. The first capture
// group becomes the value.
type pattern struct {
	re  *regexp.Regexp
	key string
}

// category is an ordered group of patterns competing for the input.
type category struct {
	name     string
	patterns []pattern
}

// emission routes one compound capture into a category's bucket.
type emission struct {
	category string
	key      string
}

// compound patterns match sentences that carry facts for more than one
// bucket at once and are evaluated before the per-category patterns,
// with their matched text removed from the input so the simple
// patterns cannot double-count the same words.
type compound struct {
	re        *regexp.Regexp
	emissions []emission
}

const (
	categoryPersonal     = "personal facts"
	categoryStyle        = "response-style preferences"
	categoryProfessional = "professional facts"
)

// value matches up to clause punctuation so trailing sentences don't
// leak into extracted values.
const value = `([^.,;!?\n]+)`

// Extractor classifies free text into preference items.
type Extractor struct {
	categories []category
	compounds  []compound
}

// NewExtractor creates an extractor with the built-in category tables.
func NewExtractor() *Extractor {
	return &Extractor{
		categories: []category{
			{
				name: categoryPersonal,
				patterns: []pattern{
					{regexp.MustCompile(`(?i)\bmy name is ` + value), "Name"},
					{regexp.MustCompile(`(?i)\bcall me ` + value), "Nickname"},
					{regexp.MustCompile(`(?i)\bI live in ` + value), "Location"},
					{regexp.MustCompile(`(?i)\bI(?:'m| am) from ` + value), "Hometown"},
					{regexp.MustCompile(`(?i)\bI(?:'m| am) (\d+) years old\b`), "Age"},
					{regexp.MustCompile(`(?i)\bmy email is ([\w.+-]+@[\w.-]+)`), "Email"},
					{regexp.MustCompile(`(?i)\bmy birthday is ` + value), "Birthday"},
				},
			},
			{
				name: categoryStyle,
				patterns: []pattern{
					{regexp.MustCompile(`(?i)\bI prefer ` + value + ` (?:answers|responses|replies)\b`), "Response Style"},
					{regexp.MustCompile(`(?i)\bkeep (?:your )?(?:answers|responses|replies) ` + value), "Response Style"},
					{regexp.MustCompile(`(?i)\buse an? ` + value + ` tone\b`), "Tone"},
					{regexp.MustCompile(`(?i)\brespond (?:to me )?in ` + value), "Response Language"},
					{regexp.MustCompile(`(?i)\bexplain things ` + value), "Explanation Style"},
					{regexp.MustCompile(`(?i)\b(?:no|avoid|skip) ` + value + ` in (?:your )?(?:answers|responses|replies)\b`), "Avoid"},
				},
			},
			{
				name: categoryProfessional,
				patterns: []pattern{
					{regexp.MustCompile(`(?i)\bI work (?:at|for) ` + value), "Workplace"},
					{regexp.MustCompile(`(?i)\bI(?:'m| am) an? ` + value + `\b(?:\s+by trade|\s+by profession)?`), "Profession"},
					{regexp.MustCompile(`(?i)\bI founded ` + value), "Founded Company"},
					{regexp.MustCompile(`(?i)\bmy (?:job )?title is ` + value), "Job Title"},
					{regexp.MustCompile(`(?i)\bI(?:'m| am) working on ` + value), "Current Project"},
				},
			},
		},
		compounds: []compound{
			{
				re: regexp.MustCompile(`(?i)\bI live and work in ` + value),
				emissions: []emission{
					{categoryPersonal, "Location"},
					{categoryProfessional, "Workplace"},
				},
			},
			{
				re: regexp.MustCompile(`(?i)\bI work at and founded ` + value),
				emissions: []emission{
					{categoryProfessional, "Workplace"},
					{categoryProfessional, "Founded Company"},
				},
			},
		},
	}
}

// Extract evaluates every pattern in every category against text,
// accumulates per-category match counts and items, and returns the
// items of the highest-scoring category. No match anywhere returns an
// empty list; the caller decides the fallback.
func (e *Extractor) Extract(text string) []template.Item {
	scores := make(map[string]int, len(e.categories))
	buckets := make(map[string][]template.Item, len(e.categories))

	add := func(cat, key, val string) {
		val = strings.TrimSpace(val)
		if val == "" {
			return
		}
		for _, existing := range buckets[cat] {
			if strings.EqualFold(existing.Key, key) {
				scores[cat]++
				return
			}
		}
		buckets[cat] = append(buckets[cat], template.Item{Key: key, Value: val})
		scores[cat]++
	}

	// Compounds first; their text is removed so simple patterns don't
	// re-match the same words.
	remaining := text
	for _, cp := range e.compounds {
		for _, m := range cp.re.FindAllStringSubmatch(remaining, -1) {
			for _, em := range cp.emissions {
				add(em.category, em.key, m[1])
			}
		}
		remaining = cp.re.ReplaceAllString(remaining, "")
	}

	for _, cat := range e.categories {
		for _, p := range cat.patterns {
			for _, m := range p.re.FindAllStringSubmatch(remaining, -1) {
				add(cat.name, p.key, m[1])
			}
		}
	}

	// Highest score wins; ties go to the earliest declared category.
	best := ""
	bestScore := 0
	for _, cat := range e.categories {
		if scores[cat.name] > bestScore {
			best = cat.name
			bestScore = scores[cat.name]
		}
	}
	if best == "" {
		return nil
	}
	return buckets[best]
}
