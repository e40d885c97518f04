package serializer

import (
	"path/filepath"
	"strings"
)

// Format is an output encoding.
type Format string

const (
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
	// FormatTable renders a flattened FIELD/VALUE table.
	FormatTable Format = "table"
	// FormatText renders the plain text form of values implementing TextRenderer.
	// Other values are rejected.
	FormatText Format = "text"
)

// StdoutURI is the special output path that selects stdout.
const StdoutURI = "-"

var supportedFormats = []Format{FormatJSON, FormatYAML, FormatTable, FormatText}

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	for _, s := range supportedFormats {
		if f == s {
			return false
		}
	}
	return true
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// SupportedFormats returns the names of all supported formats.
func SupportedFormats() []string {
	out := make([]string, 0, len(supportedFormats))
	for _, f := range supportedFormats {
		out = append(out, string(f))
	}
	return out
}

// FormatFromPath infers a document format from a file extension.
// Anything other than .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// isStdout reports whether path selects stdout.
func isStdout(path string) bool {
	p := strings.TrimSpace(path)
	return p == "" || p == StdoutURI
}
