package ports

import (
	"siteboard/domain/docs"
)

// DocumentSearcher answers keyword queries over the document catalog
type DocumentSearcher interface {
	Search(term string) []docs.Document
	All() []docs.Document
}
