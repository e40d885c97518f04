package tree

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when the input holds no document.
var ErrEmptyDocument = errors.New("empty document")

// maxAliasDepth bounds YAML alias expansion.
const maxAliasDepth = 64

// DecodeJSON reads exactly one JSON document from r.
func DecodeJSON(r io.Reader) (*Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("failed to decode json: %w", err)
		}
		return nil, errors.New("failed to decode json: unexpected data after top-level value")
	}

	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := &Value{kind: MappingKind}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", kt)
				}
				child, err := decodeJSONValue(dec)
				if err != nil {
					return nil, unexpectedEOF(err)
				}
				m.entries = append(m.entries, Entry{Key: key, Value: child})
			}
			if _, err := dec.Token(); err != nil {
				return nil, unexpectedEOF(err)
			}
			return m, nil
		case '[':
			s := &Value{kind: SequenceKind}
			for dec.More() {
				child, err := decodeJSONValue(dec)
				if err != nil {
					return nil, unexpectedEOF(err)
				}
				s.items = append(s.items, child)
			}
			if _, err := dec.Token(); err != nil {
				return nil, unexpectedEOF(err)
			}
			return s, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		// nil, bool, string or json.Number
		return &Value{kind: ScalarKind, scalar: t}, nil
	}
}

// unexpectedEOF turns a bare EOF inside a container into io.ErrUnexpectedEOF,
// so truncated input is not mistaken for an empty document.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// DecodeYAML reads the first YAML document from r.
func DecodeYAML(r io.Reader) (*Value, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}

	v, err := FromYAMLNode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}
	return v, nil
}

// FromYAMLNode converts a yaml.v3 node into a Value, preserving mapping order.
func FromYAMLNode(n *yaml.Node) (*Value, error) {
	return fromYAMLNode(n, 0)
}

func fromYAMLNode(n *yaml.Node, aliasDepth int) (*Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, ErrEmptyDocument
		}
		return fromYAMLNode(n.Content[0], aliasDepth)

	case yaml.MappingNode:
		m := &Value{kind: MappingKind}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, val := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
			}
			child, err := fromYAMLNode(val, aliasDepth)
			if err != nil {
				return nil, err
			}
			m.entries = append(m.entries, Entry{Key: k.Value, Value: child})
		}
		return m, nil

	case yaml.SequenceNode:
		s := &Value{kind: SequenceKind}
		for _, item := range n.Content {
			child, err := fromYAMLNode(item, aliasDepth)
			if err != nil {
				return nil, err
			}
			s.items = append(s.items, child)
		}
		return s, nil

	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth || n.Alias == nil {
			return nil, fmt.Errorf("line %d: alias nesting too deep", n.Line)
		}
		return fromYAMLNode(n.Alias, aliasDepth+1)

	case yaml.ScalarNode:
		return yamlScalar(n)

	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
}

func yamlScalar(n *yaml.Node) (*Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// out of int64 range, keep the literal
			return String(n.Value), nil
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return String(n.Value), nil
		}
		return Number(json.Number(strconv.FormatFloat(f, 'g', -1, 64))), nil
	default:
		return String(n.Value), nil
	}
}
