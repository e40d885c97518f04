package defaults

import "time"

// Dump defaults.
const (
	// DumpTimeout bounds the whole cluster dump.
	DumpTimeout = 60 * time.Second

	// DumpFormat is the default snapshot encoding.
	DumpFormat = "json"
)

// Analyzer output defaults.
const (
	// NotAvailable is printed for missing namespaces and env vars without a literal value.
	NotAvailable = "N/A"

	// Ellipsis is appended to truncated values.
	Ellipsis = "..."

	// StructureIndent is the indentation of the first field level in the verbose structure.
	StructureIndent = 4

	// StructureIndentStep is added for each nesting level in the verbose structure.
	StructureIndentStep = 2
)
