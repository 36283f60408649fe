package schemafile

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reoring/partcode"
)

// LoadYAML builds the tree described by the first YAML document in data.
func LoadYAML(data []byte) (partcode.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var d Doc
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalid("empty document")
		}
		return nil, err
	}
	return d.BuildNode()
}

// MarshalYAML writes n as a YAML definition document.
func MarshalYAML(n partcode.Node) ([]byte, error) { return yaml.Marshal(FromNode(n)) }

// UnmarshalYAML reads a node document. Mapping order is preserved, which
// keeps children in declaration order.
func (d *Doc) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return invalid("line %d: null is not a node", node.Line)
		}
		*d = Doc{Kind: KindLeaf, Key: node.Value}
		return nil
	case yaml.MappingNode:
		*d = Doc{}
		seen := make(map[string]bool, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			if seen[k.Value] {
				return invalid("line %d: duplicate key %q", k.Line, k.Value)
			}
			seen[k.Value] = true
			if k.Value == "of" {
				if v.Kind != yaml.SequenceNode {
					return invalid("line %d: \"of\" must be a sequence", v.Line)
				}
				d.Of = make([]Doc, len(v.Content))
				for j, c := range v.Content {
					if err := d.Of[j].UnmarshalYAML(c); err != nil {
						return err
					}
				}
				continue
			}
			if v.Kind != yaml.ScalarNode {
				return invalid("line %d: %q must name a key", v.Line, k.Value)
			}
			if err := d.setKind(k.Value, v.Value); err != nil {
				return err
			}
		}
		return d.check()
	}
	return invalid("line %d: a node is a scalar or a mapping", node.Line)
}

// MarshalYAML implements yaml.Marshaler.
func (d Doc) MarshalYAML() (any, error) { return d.encoded(), nil }
