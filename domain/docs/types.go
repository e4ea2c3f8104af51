package docs

import "strings"

// Document is one entry in the static document catalog served by the
// file-explorer page. The catalog is hardcoded; nothing is read from disk.
type Document struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // file extension: pdf, docx, xlsx
	Keywords string `json:"keywords"`
}

// Matches reports whether the document matches a case-insensitive
// substring search against its name or keywords
func (d Document) Matches(term string) bool {
	if term == "" {
		return false
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(d.Name), t) ||
		strings.Contains(strings.ToLower(d.Keywords), t)
}

// TypeLabel returns the extension uppercased for display
func (d Document) TypeLabel() string {
	return strings.ToUpper(d.Type)
}
