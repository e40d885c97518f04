package tree

import (
	"errors"
	"strconv"
)

// SkipChildren is returned by a WalkFunc to prevent Walk from descending
// into the current node. It is not returned by Walk.
var SkipChildren = errors.New("skip children")

// Node describes a position reached by Walk.
type Node struct {
	// Path is the slash separated location, sequence indices in brackets,
	// e.g. "pods/web/spec/containers[0]/name".
	Path string

	// Key is the mapping key that led to this node; empty unless ViaKey.
	Key string

	// ViaKey reports whether the node is the value of a mapping entry.
	ViaKey bool

	// Index is the sequence index that led to this node, or -1.
	Index int

	// Depth counts the containers above the node; the root has depth 0.
	Depth int

	Value *Value
}

// WalkFunc is called for every node, parents before children.
type WalkFunc func(n Node) error

// Walk traverses root depth first, mapping entries in order and sequence
// items by index. base is the path assigned to root.
func Walk(root *Value, base string, fn WalkFunc) error {
	err := walk(Node{Path: base, Index: -1, Value: root}, fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func walk(n Node, fn WalkFunc) error {
	if err := fn(n); err != nil {
		return err
	}

	switch {
	case n.Value.IsMapping():
		for _, e := range n.Value.entries {
			child := Node{
				Path:   n.Path + "/" + e.Key,
				Key:    e.Key,
				ViaKey: true,
				Index:  -1,
				Depth:  n.Depth + 1,
				Value:  e.Value,
			}
			if err := walk(child, fn); err != nil && !errors.Is(err, SkipChildren) {
				return err
			}
		}
	case n.Value.IsSequence():
		for i, item := range n.Value.items {
			child := Node{
				Path:  n.Path + "[" + strconv.Itoa(i) + "]",
				Index: i,
				Depth: n.Depth + 1,
				Value: item,
			}
			if err := walk(child, fn); err != nil && !errors.Is(err, SkipChildren) {
				return err
			}
		}
	}
	return nil
}
