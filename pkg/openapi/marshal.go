package openapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the serialisation of generated documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml (case-insensitive).
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("openapi: unsupported format %q", raw)
	}
}

// Marshal serialises value (typically *openapi3.T or *openapi3.Schema) as
// indented JSON or as YAML. YAML output keeps the JSON key order.
func Marshal(value any, format Format) ([]byte, error) {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal json: %w", err)
	}
	switch format {
	case "", FormatJSON:
		return append(payload, '\n'), nil
	case FormatYAML:
		return jsonToYAML(payload)
	default:
		return nil, fmt.Errorf("openapi: unsupported format %q", format)
	}
}

func jsonToYAML(payload []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(payload, &node); err != nil {
		return nil, fmt.Errorf("openapi: decode json as yaml: %w", err)
	}
	blockStyle(&node)
	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal yaml: %w", err)
	}
	return out, nil
}

// blockStyle drops the flow/quoted styles inherited from JSON so the encoder
// emits conventional block YAML. Scalars keep their tags, so strings that
// look like numbers stay quoted.
func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}
