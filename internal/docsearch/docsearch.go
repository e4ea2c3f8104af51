// Package docsearch serves keyword search over the static document catalog
// shown on the file-explorer page.
package docsearch

import (
	"siteboard/domain/docs"
	"siteboard/ports"
)

// catalog is the fixed in-memory document list; there is no backing store
var catalog = []docs.Document{
	{Name: "Office Tower Proposal", Type: "pdf", Keywords: "proposal office construction"},
	{Name: "Safety Protocol", Type: "docx", Keywords: "safety protocol guidelines"},
	{Name: "Budget Report Q1", Type: "xlsx", Keywords: "budget finance report"},
	{Name: "Client Contract", Type: "docx", Keywords: "contract agreement legal"},
	{Name: "Construction Schedule", Type: "xlsx", Keywords: "schedule timeline"},
	{Name: "Quality Standards", Type: "pdf", Keywords: "quality standards"},
}

// Searcher answers substring queries against the catalog
type Searcher struct {
	documents []docs.Document
}

// NewSearcher creates a searcher over the built-in catalog
func NewSearcher() *Searcher {
	return &Searcher{documents: catalog}
}

// NewSearcherWith creates a searcher over an explicit document list
func NewSearcherWith(documents []docs.Document) *Searcher {
	return &Searcher{documents: documents}
}

var _ ports.DocumentSearcher = (*Searcher)(nil)

// Search returns documents whose name or keywords contain the term,
// case-insensitively. An empty term matches nothing.
func (s *Searcher) Search(term string) []docs.Document {
	var found []docs.Document
	for _, d := range s.documents {
		if d.Matches(term) {
			found = append(found, d)
		}
	}
	return found
}

// All returns the full catalog in declaration order
func (s *Searcher) All() []docs.Document {
	return s.documents
}
