package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed mapping that remembers the order in which keys
// were first inserted. YAML decoding preserves document order.
//
// Setting an existing key replaces its value in place, so merging one map
// over another keeps the base order and appends new keys at the end.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
	// nodes holds the source YAML node of decoded values.
	nodes map[string]*yaml.Node
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

// Set inserts or replaces a value.
func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	delete(m.nodes, key)
}

// setNode is Set for a value decoded from node.
func (m *OrderedMap[V]) setNode(key string, value V, node *yaml.Node) {
	m.Set(key, value)
	if m.nodes == nil {
		m.nodes = make(map[string]*yaml.Node)
	}
	m.nodes[key] = node
}

// Node returns the YAML node key was decoded from, or nil when the value
// was set in code.
func (m *OrderedMap[V]) Node(key string) *yaml.Node {
	if m == nil {
		return nil
	}
	return m.nodes[key]
}

// Get returns the value for key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	v, ok := m.values[key]
	if !ok {
		return zero, false
	}
	return v, true
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns a shallow copy.
func (m *OrderedMap[V]) Clone() *OrderedMap[V] {
	out := NewOrderedMap[V]()
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		if node := m.nodes[k]; node != nil {
			out.setNode(k, m.values[k], node)
		} else {
			out.Set(k, m.values[k])
		}
	}
	return out
}

// UnmarshalYAML decodes a YAML mapping node, keeping key order.
//
// Merge keys (`<<: *anchor` or `<<: [*a, *b]`) are applied first, with
// earlier sources winning; explicit keys then replace merged ones.
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, kindName(node.Kind))
	}

	m.keys = nil
	m.values = make(map[string]V, len(node.Content)/2)
	m.nodes = make(map[string]*yaml.Node, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		if isMergeKey(node.Content[i]) {
			if err := m.merge(node.Content[i+1]); err != nil {
				return err
			}
		}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if isMergeKey(keyNode) {
			continue
		}

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("line %d: decoding key: %w", keyNode.Line, err)
		}

		var value V
		if err := valNode.Decode(&value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		m.setNode(key, value, valNode)
	}
	return nil
}

// merge copies the entries of a merge-key source that are not yet present.
func (m *OrderedMap[V]) merge(node *yaml.Node) error {
	node = resolveAlias(node)

	sources := []*yaml.Node{node}
	if node.Kind == yaml.SequenceNode {
		sources = node.Content
	}

	for _, src := range sources {
		src = resolveAlias(src)
		if src.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: map merge requires a mapping or a sequence of mappings", src.Line)
		}
		var merged OrderedMap[V]
		if err := merged.UnmarshalYAML(src); err != nil {
			return err
		}
		for _, k := range merged.keys {
			if _, exists := m.values[k]; !exists {
				m.setNode(k, merged.values[k], merged.nodes[k])
			}
		}
	}
	return nil
}

func isMergeKey(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!merge"
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// hasKey reports whether a mapping node declares key, directly or through
// a merge key.
func hasKey(node *yaml.Node, key string) bool {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if isMergeKey(k) {
			v = resolveAlias(v)
			sources := []*yaml.Node{v}
			if v.Kind == yaml.SequenceNode {
				sources = v.Content
			}
			for _, src := range sources {
				if hasKey(src, key) {
					return true
				}
			}
			continue
		}
		if k.Value == key {
			return true
		}
	}
	return false
}

// MarshalYAML encodes the map as a mapping node in key order.
func (m *OrderedMap[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.Keys() {
		var valNode yaml.Node
		if err := valNode.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&valNode,
		)
	}
	return node, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown node"
	}
}
