// Package template loads and writes CloudFormation templates as JSON or YAML.
package template

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	wetwire "github.com/lex00/wetwire-fargate-go"
)

// Format is a template serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format: %s (use 'json' or 'yaml')", s)
	}
}

// Load reads a template from a JSON or YAML file.
func Load(path string) (*wetwire.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a template. JSON is tried first, then YAML.
//
// YAML input is converted to JSON-shaped data so that the resulting template
// holds the same Go types regardless of the source format. Short-form YAML
// intrinsics (!Ref, !Sub) are not supported.
func Parse(data []byte) (*wetwire.Template, error) {
	var t wetwire.Template
	if err := json.Unmarshal(data, &t); err == nil {
		return &t, nil
	}

	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("failed to parse as JSON or YAML: %w", err)
	}
	normalized, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("converting YAML: %w", err)
	}
	if err := json.Unmarshal(normalized, &t); err != nil {
		return nil, fmt.Errorf("decoding template: %w", err)
	}
	return &t, nil
}

// ToJSON serializes the template to indented JSON.
func ToJSON(t *wetwire.Template) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// ToYAML serializes the template to YAML. Values are passed through JSON
// first so intrinsic types render in their CloudFormation form.
func ToYAML(t *wetwire.Template) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

// blockStyle clears the flow and quoting styles a JSON source leaves on nodes.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// Marshal serializes the template in the given format.
func Marshal(t *wetwire.Template, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ToJSON(t)
	case FormatYAML:
		return ToYAML(t)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
