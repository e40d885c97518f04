package analyzer

import (
	"fmt"
	"strings"

	enumerrors "github.com/NVIDIA/kubenum/pkg/errors"
	"github.com/NVIDIA/kubenum/pkg/tree"
)

// resource is one snapshot object together with its position, used to
// build precise structural errors.
type resource struct {
	typ   string
	index int
	v     *tree.Value
}

func resources(typ string, items []*tree.Value) []resource {
	out := make([]resource, len(items))
	for i, v := range items {
		out[i] = resource{typ: typ, index: i, v: v}
	}
	return out
}

func (r resource) missing(path []string, want string) error {
	p := strings.Join(path, ".")
	return enumerrors.NewWithContext(enumerrors.ErrCodeInvalidSnapshot,
		fmt.Sprintf("%s[%d]: expected %s at %s", r.typ, r.index, want, p),
		map[string]any{"type": r.typ, "index": r.index, "path": p})
}

// str returns the string at path, failing when it is absent or not a string.
func (r resource) str(path ...string) (string, error) {
	return requireString(r, r.v, path)
}

// name returns metadata.name.
func (r resource) name() (string, error) {
	return r.str("metadata", "name")
}

// namespace returns metadata.namespace.
func (r resource) namespace() (string, error) {
	return r.str("metadata", "namespace")
}

// optionalNamespace returns metadata.namespace or fallback when absent or null.
func (r resource) optionalNamespace(fallback string) string {
	v, ok := r.v.Lookup("metadata", "namespace")
	if !ok || v.IsNull() {
		return fallback
	}
	return v.Text()
}

// seq returns the sequence at path, failing when it is absent or not a sequence.
func (r resource) seq(path ...string) ([]*tree.Value, error) {
	v, ok := r.v.Lookup(path...)
	if !ok || !v.IsSequence() {
		return nil, r.missing(path, "a list")
	}
	return v.Items(), nil
}

func requireString(r resource, v *tree.Value, path []string) (string, error) {
	got, ok := v.Lookup(path...)
	if !ok {
		return "", r.missing(path, "a string")
	}
	s, ok := got.Str()
	if !ok {
		return "", r.missing(path, "a string")
	}
	return s, nil
}

// present returns the value at key when it exists and is not null.
func present(v *tree.Value, key string) (*tree.Value, bool) {
	got, ok := v.Get(key)
	if !ok || got.IsNull() {
		return nil, false
	}
	return got, true
}
