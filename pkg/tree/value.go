// Package tree provides an ordered, format-neutral document tree.
//
// A Value is a mapping, a sequence or a scalar. Mapping entries keep the
// order in which they appear in the source document, which Go maps cannot.
// Scalars hold nil (null), bool, string or json.Number; numbers keep their
// literal text so they print exactly as written.
//
// JSON and YAML documents decode into the same tree:
//
//	v, err := tree.DecodeJSON(r)
//	name, ok := v.Lookup("metadata", "name")
//
// Walk visits every node depth first and is shared by all traversals over
// snapshots.
package tree

import (
	"encoding/json"
	"strconv"
)

// Kind identifies the variant of a Value.
type Kind uint8

const (
	// ScalarKind is a string, number, bool or null.
	ScalarKind Kind = iota
	// MappingKind is an ordered list of key/value entries.
	MappingKind
	// SequenceKind is an ordered list of values.
	SequenceKind
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case MappingKind:
		return "mapping"
	case SequenceKind:
		return "sequence"
	default:
		return "scalar"
	}
}

// Entry is a single key/value pair of a mapping.
type Entry struct {
	Key   string
	Value *Value
}

// Value is a node of the document tree.
type Value struct {
	kind    Kind
	scalar  any
	entries []Entry
	items   []*Value
}

// Null returns a null scalar.
func Null() *Value {
	return &Value{kind: ScalarKind}
}

// String returns a string scalar.
func String(s string) *Value {
	return &Value{kind: ScalarKind, scalar: s}
}

// Bool returns a bool scalar.
func Bool(b bool) *Value {
	return &Value{kind: ScalarKind, scalar: b}
}

// Number returns a number scalar holding the literal text n.
func Number(n json.Number) *Value {
	return &Value{kind: ScalarKind, scalar: n}
}

// Int returns a number scalar for i.
func Int(i int64) *Value {
	return Number(json.Number(strconv.FormatInt(i, 10)))
}

// Mapping returns a mapping with the given entries in order.
func Mapping(entries ...Entry) *Value {
	return &Value{kind: MappingKind, entries: entries}
}

// Sequence returns a sequence with the given items in order.
func Sequence(items ...*Value) *Value {
	return &Value{kind: SequenceKind, items: items}
}

// Kind returns the variant of v.
func (v *Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is a null scalar. A nil *Value is null.
func (v *Value) IsNull() bool {
	return v == nil || (v.kind == ScalarKind && v.scalar == nil)
}

// IsMapping reports whether v is a mapping.
func (v *Value) IsMapping() bool {
	return v != nil && v.kind == MappingKind
}

// IsSequence reports whether v is a sequence.
func (v *Value) IsSequence() bool {
	return v != nil && v.kind == SequenceKind
}

// IsScalar reports whether v is a scalar, null included.
func (v *Value) IsScalar() bool {
	return v == nil || v.kind == ScalarKind
}

// Entries returns the mapping entries of v, or nil for other kinds.
func (v *Value) Entries() []Entry {
	if !v.IsMapping() {
		return nil
	}
	return v.entries
}

// Items returns the sequence items of v, or nil for other kinds.
func (v *Value) Items() []*Value {
	if !v.IsSequence() {
		return nil
	}
	return v.items
}

// Len returns the number of entries or items; scalars have length 0.
func (v *Value) Len() int {
	switch {
	case v.IsMapping():
		return len(v.entries)
	case v.IsSequence():
		return len(v.items)
	default:
		return 0
	}
}

// Get returns the value stored under key in a mapping.
// When a key repeats, the last occurrence wins.
func (v *Value) Get(key string) (*Value, bool) {
	if !v.IsMapping() {
		return nil, false
	}
	for i := len(v.entries) - 1; i >= 0; i-- {
		if v.entries[i].Key == key {
			return v.entries[i].Value, true
		}
	}
	return nil, false
}

// Lookup follows a chain of mapping keys.
func (v *Value) Lookup(path ...string) (*Value, bool) {
	cur := v
	for _, key := range path {
		next, ok := cur.Get(key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Str returns the string held by a string scalar.
func (v *Value) Str() (string, bool) {
	if v == nil || v.kind != ScalarKind {
		return "", false
	}
	s, ok := v.scalar.(string)
	return s, ok
}

// Scalar returns the raw scalar payload: nil, bool, string or json.Number.
func (v *Value) Scalar() any {
	if v == nil || v.kind != ScalarKind {
		return nil
	}
	return v.scalar
}

// Text returns the literal text of a scalar: strings as is, numbers as
// written, booleans as true/false and null as "null". Containers return "".
func (v *Value) Text() string {
	if !v.IsScalar() {
		return ""
	}
	switch s := v.Scalar().(type) {
	case nil:
		return "null"
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case json.Number:
		return s.String()
	default:
		return ""
	}
}
