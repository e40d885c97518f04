// Package snapshot defines the cluster snapshot document: one mapping keyed
// by resource type, each key holding the sequence of collected objects.
package snapshot

import (
	"fmt"

	enumerrors "github.com/NVIDIA/kubenum/pkg/errors"
	"github.com/NVIDIA/kubenum/pkg/tree"
)

// Resource type keys of a snapshot.
const (
	KeyNamespaces          = "namespaces"
	KeyPods                = "pods"
	KeyServices            = "services"
	KeyDeployments         = "deployments"
	KeySecrets             = "secrets"
	KeyConfigMaps          = "configmaps"
	KeyRoles               = "roles"
	KeyRoleBindings        = "rolebindings"
	KeyClusterRoles        = "clusterroles"
	KeyClusterRoleBindings = "clusterrolebindings"
)

// Keys lists the resource type keys in the order a dump writes them.
var Keys = []string{
	KeyNamespaces,
	KeyPods,
	KeyServices,
	KeyDeployments,
	KeySecrets,
	KeyConfigMaps,
	KeyRoles,
	KeyRoleBindings,
	KeyClusterRoles,
	KeyClusterRoleBindings,
}

// Snapshot is an immutable cluster snapshot.
type Snapshot struct {
	root *tree.Value
}

// New validates root and wraps it in a Snapshot. The root must be a mapping
// whose values are sequences of mappings; a null value is read as an empty
// sequence.
func New(root *tree.Value) (*Snapshot, error) {
	if !root.IsMapping() {
		return nil, enumerrors.New(enumerrors.ErrCodeInvalidSnapshot,
			fmt.Sprintf("snapshot must be a mapping of resource types, got %s", kindName(root)))
	}

	for _, e := range root.Entries() {
		if e.Value.IsNull() {
			continue
		}
		if !e.Value.IsSequence() {
			return nil, enumerrors.NewWithContext(enumerrors.ErrCodeInvalidSnapshot,
				fmt.Sprintf("resource type %q must hold a sequence, got %s", e.Key, kindName(e.Value)),
				map[string]any{"type": e.Key})
		}
		for i, item := range e.Value.Items() {
			if !item.IsMapping() {
				return nil, enumerrors.NewWithContext(enumerrors.ErrCodeInvalidSnapshot,
					fmt.Sprintf("%s[%d] must be an object, got %s", e.Key, i, kindName(item)),
					map[string]any{"type": e.Key, "index": i})
			}
		}
	}

	return &Snapshot{root: root}, nil
}

// Types returns the resource type keys in document order.
func (s *Snapshot) Types() []string {
	entries := s.root.Entries()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

// Resources returns the objects stored under resourceType in document order.
// Missing or null types yield nil.
func (s *Snapshot) Resources(resourceType string) []*tree.Value {
	v, ok := s.root.Get(resourceType)
	if !ok {
		return nil
	}
	return v.Items()
}

// Count returns the total number of objects across all types.
func (s *Snapshot) Count() int {
	n := 0
	for _, e := range s.root.Entries() {
		n += e.Value.Len()
	}
	return n
}

// MarshalJSON encodes the snapshot with key order preserved.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return s.root.MarshalJSON()
}

// MarshalYAML encodes the snapshot with key order preserved.
func (s *Snapshot) MarshalYAML() (any, error) {
	return s.root.MarshalYAML()
}

func kindName(v *tree.Value) string {
	if v.IsNull() {
		return "null"
	}
	return v.Kind().String()
}
