package snapshot

import "github.com/NVIDIA/kubenum/pkg/tree"

// Builder assembles a Snapshot one resource type at a time.
type Builder struct {
	entries []tree.Entry
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends resourceType with items. An empty items list still produces
// the key with an empty sequence.
func (b *Builder) Add(resourceType string, items []*tree.Value) *Builder {
	if items == nil {
		items = []*tree.Value{}
	}
	b.entries = append(b.entries, tree.Entry{Key: resourceType, Value: tree.Sequence(items...)})
	return b
}

// Build validates and returns the snapshot.
func (b *Builder) Build() (*Snapshot, error) {
	entries := make([]tree.Entry, len(b.entries))
	copy(entries, b.entries)
	return New(tree.Mapping(entries...))
}
