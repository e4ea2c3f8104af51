package docsearch

import (
	"testing"

	"siteboard/domain/docs"
)

// TestSearchByKeyword tests case-insensitive keyword matching
func TestSearchByKeyword(t *testing.T) {
	s := NewSearcher()

	found := s.Search("BUDGET")
	if len(found) != 1 {
		t.Fatalf("Expected 1 document for 'BUDGET', got %d", len(found))
	}
	if found[0].Name != "Budget Report Q1" {
		t.Errorf("Expected Budget Report Q1, got %s", found[0].Name)
	}
}

// TestSearchByName tests matching against document names
func TestSearchByName(t *testing.T) {
	s := NewSearcher()

	found := s.Search("construction")
	// Office Tower Proposal matches on keywords, Construction Schedule on name
	if len(found) != 2 {
		t.Fatalf("Expected 2 documents for 'construction', got %d", len(found))
	}
}

// TestSearchEmptyTerm tests that an empty term matches nothing
func TestSearchEmptyTerm(t *testing.T) {
	s := NewSearcher()
	if found := s.Search(""); found != nil {
		t.Errorf("Expected no results for empty term, got %d", len(found))
	}
}

// TestSearchNoMatch tests a term absent from the catalog
func TestSearchNoMatch(t *testing.T) {
	s := NewSearcher()
	if found := s.Search("blueprint"); len(found) != 0 {
		t.Errorf("Expected no results, got %d", len(found))
	}
}

// TestAllPreservesOrder tests the full catalog listing
func TestAllPreservesOrder(t *testing.T) {
	s := NewSearcherWith([]docs.Document{
		{Name: "B", Type: "pdf"},
		{Name: "A", Type: "docx"},
	})

	all := s.All()
	if len(all) != 2 {
		t.Fatalf("Expected 2 documents, got %d", len(all))
	}
	if all[0].Name != "B" || all[1].Name != "A" {
		t.Error("Expected declaration order preserved")
	}
}

// TestTypeLabel tests extension display casing
func TestTypeLabel(t *testing.T) {
	d := docs.Document{Name: "X", Type: "xlsx"}
	if d.TypeLabel() != "XLSX" {
		t.Errorf("Expected XLSX, got %s", d.TypeLabel())
	}
}
