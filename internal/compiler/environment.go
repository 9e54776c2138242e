package compiler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lex00/wetwire-fargate-go/internal/config"
	"github.com/lex00/wetwire-fargate-go/internal/serialize"
)

// KeyValuePair is one entry of a container's Environment list.
type KeyValuePair struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

// ResolveEnvironment merges a task's environment over the global one and
// flattens the result into Name/Value pairs in merge order: global keys
// first, then keys only the task declares.
//
// Structured values (mappings, sequences, null) are JSON-encoded; scalars are
// passed through unchanged. Mappings decoded from YAML keep their document
// key order. When the task declares no environment at all the result is
// empty and the global environment is not applied.
func ResolveEnvironment(global, task *config.OrderedMap[any]) ([]KeyValuePair, error) {
	if task == nil {
		return []KeyValuePair{}, nil
	}

	merged := global.Clone()
	for _, key := range task.Keys() {
		v, _ := task.Get(key)
		merged.Set(key, v)
	}

	env := make([]KeyValuePair, 0, merged.Len())
	for _, key := range merged.Keys() {
		v, _ := merged.Get(key)
		source := global
		if _, ok := task.Get(key); ok {
			source = task
		}
		value, err := environmentValue(v, source.Node(key))
		if err != nil {
			return nil, fmt.Errorf("environment %s: %w", key, err)
		}
		env = append(env, KeyValuePair{Name: key, Value: value})
	}
	return env, nil
}

// environmentValue keeps scalars as-is and encodes anything structured.
// node, when set, is the YAML the value was decoded from.
func environmentValue(v any, node *yaml.Node) (any, error) {
	switch v.(type) {
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return v, nil
	}

	var buf bytes.Buffer
	if node != nil {
		if err := writeNodeJSON(&buf, node); err != nil {
			return nil, err
		}
		return buf.String(), nil
	}

	normalized, err := serialize.Value(v)
	if err != nil {
		return nil, err
	}
	if err := writeJSON(&buf, normalized); err != nil {
		return nil, err
	}
	return buf.String(), nil
}

// writeNodeJSON encodes a YAML node as compact JSON in document order.
func writeNodeJSON(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.Kind {
	case yaml.AliasNode:
		return writeNodeJSON(buf, node.Alias)

	case yaml.MappingNode:
		var m config.OrderedMap[yaml.Node]
		if err := node.Decode(&m); err != nil {
			return err
		}
		buf.WriteByte('{')
		for i, key := range m.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, m.Node(key)); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return err
		}
		normalized, err := serialize.Value(v)
		if err != nil {
			return err
		}
		return writeJSON(buf, normalized)
	}
}

func writeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(len(bytes.TrimRight(buf.Bytes(), "\n")))
	return nil
}
