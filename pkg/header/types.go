package header

import (
	"fmt"
	"strings"
	"time"
)

var (
	ApiVersionDomain = "kubenum.io"
	ApiVersionV1     = "v1"
)

// Kind is the type of a kubenum document.
type Kind string

// Metadata keys set by Stamp.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
)

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
// If the Metadata map is nil, it will be initialized.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion returns an Option that sets the APIVersion field of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a new Header instance with the provided functional options.
// The Metadata map is initialized automatically.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header carries the kind, API version and metadata of kubenum reports.
// It follows Kubernetes-style resource conventions.
type Header struct {
	// Kind is the type of the report.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the API version of the report.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs such as the generation timestamp.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// APIVersionFor returns "<kind>.kubenum.io/v1" for kind.
func APIVersionFor(kind Kind) string {
	return fmt.Sprintf("%s.%s/%s", strings.ToLower(string(kind)), ApiVersionDomain, ApiVersionV1)
}

// Stamp records the current UTC time and, when set, the tool version in the
// metadata. Existing metadata is kept.
func (h *Header) Stamp(version string) {
	if h.Metadata == nil {
		h.Metadata = make(map[string]string)
	}
	h.Metadata[MetadataTimestamp] = time.Now().UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}
