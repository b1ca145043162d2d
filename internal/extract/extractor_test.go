package extract

import (
	"testing"

	"github.com/myai-oss/memsync/internal/template"
)

func extractOne(t *testing.T, text string) template.Item {
	t.Helper()
	items := NewExtractor().Extract(text)
	if len(items) != 1 {
		t.Fatalf("expected 1 item for %q, got %d: %v", text, len(items), items)
	}
	return items[0]
}

func TestExtract_Location(t *testing.T) {
	item := extractOne(t, "I live in London")
	if item.Key != "Location" || item.Value != "London" {
		t.Fatalf("expected Location: London, got %s: %s", item.Key, item.Value)
	}
}

func TestExtract_Name(t *testing.T) {
	item := extractOne(t, "My name is Alice")
	if item.Key != "Name" || item.Value != "Alice" {
		t.Fatalf("expected Name: Alice, got %s: %s", item.Key, item.Value)
	}
}

func TestExtract_Workplace(t *testing.T) {
	item := extractOne(t, "I work at Initech")
	if item.Key != "Workplace" || item.Value != "Initech" {
		t.Fatalf("expected Workplace: Initech, got %s: %s", item.Key, item.Value)
	}
}

func TestExtract_ResponseStyle(t *testing.T) {
	item := extractOne(t, "I prefer concise answers")
	if item.Key != "Response Style" || item.Value != "concise" {
		t.Fatalf("expected Response Style: concise, got %s: %s", item.Key, item.Value)
	}
}

func TestExtract_ValueStopsAtPunctuation(t *testing.T) {
	item := extractOne(t, "I live in London, and I like tea")
	if item.Value != "London" {
		t.Fatalf("expected value to stop at the comma, got %q", item.Value)
	}
}

func TestExtract_HighestScoringCategoryWins(t *testing.T) {
	// Two professional facts outscore one personal fact.
	items := NewExtractor().Extract("I live in London. I work at Initech. I founded Initech Labs.")
	if len(items) != 2 {
		t.Fatalf("expected the professional bucket (2 items), got %v", items)
	}
	if items[0].Key != "Workplace" || items[1].Key != "Founded Company" {
		t.Fatalf("unexpected professional items: %v", items)
	}
}

func TestExtract_TieGoesToDeclarationOrder(t *testing.T) {
	// One personal and one professional match: personal is declared first.
	items := NewExtractor().Extract("I live in London. I work at Initech.")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %v", items)
	}
	if items[0].Key != "Location" {
		t.Fatalf("expected tie to resolve to personal facts, got %v", items)
	}
}

func TestExtract_CompoundEmitsBothCategories(t *testing.T) {
	e := NewExtractor()

	// The compound alone scores one match in each category, so the tie
	// resolves to personal facts.
	items := e.Extract("I live and work in Berlin")
	if len(items) != 1 || items[0].Key != "Location" || items[0].Value != "Berlin" {
		t.Fatalf("expected Location: Berlin, got %v", items)
	}

	// An extra professional fact tips the balance the other way.
	items = e.Extract("I live and work in Berlin. I founded Acme.")
	if len(items) != 2 {
		t.Fatalf("expected professional bucket, got %v", items)
	}
	if items[0].Key != "Workplace" || items[0].Value != "Berlin" {
		t.Fatalf("expected compound Workplace: Berlin, got %v", items)
	}
}

func TestExtract_CompoundWorkAtAndFounded(t *testing.T) {
	items := NewExtractor().Extract("I work at and founded Acme")
	if len(items) != 2 {
		t.Fatalf("expected Workplace and Founded Company, got %v", items)
	}
	if items[0].Key != "Workplace" || items[0].Value != "Acme" {
		t.Fatalf("unexpected first item: %v", items[0])
	}
	if items[1].Key != "Founded Company" || items[1].Value != "Acme" {
		t.Fatalf("unexpected second item: %v", items[1])
	}
}

func TestExtract_NoMatchReturnsEmpty(t *testing.T) {
	items := NewExtractor().Extract("the weather is nice today")
	if len(items) != 0 {
		t.Fatalf("expected no items, got %v", items)
	}
}
