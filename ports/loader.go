// Package ports defines the interfaces between the web layer and the
// metrics pipeline. The ui package depends on these, never on concrete
// adapters.
package ports

import (
	"siteboard/domain/table"
)

// Format identifies the upload encoding
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// TableLoader parses raw upload bytes into a typed table.
// Implementations must return core.ErrMalformedInput (wrapped) for
// structurally broken input and never a partial table.
type TableLoader interface {
	Load(data []byte, format Format) (*table.Table, error)
}
