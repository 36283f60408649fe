package schemafile

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/partcode"
	"github.com/reoring/partcode/internal/jsondup"
)

// LoadJSON builds the tree described by a JSON definition document.
func LoadJSON(data []byte) (partcode.Node, error) {
	var d Doc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return d.BuildNode()
}

// MarshalJSON writes n as a JSON definition document.
func MarshalJSON(n partcode.Node) ([]byte, error) { return json.Marshal(FromNode(n)) }

// UnmarshalJSON reads a node document. Children are a JSON array, so their
// order survives decoding into plain values. A repeated key fails.
func (d *Doc) UnmarshalJSON(data []byte) error {
	dup, err := jsondup.Check(data)
	if err != nil {
		return invalid("%v", err)
	}
	if dup != nil {
		return partcode.NewIssue(partcode.SchemaKind, jsondup.Pointer(dup.Path), partcode.CodeDuplicateKey, map[string]any{"key": dup.Key})
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return d.fromAny(v)
}

// MarshalJSON implements json.Marshaler.
func (d Doc) MarshalJSON() ([]byte, error) { return json.Marshal(d.encoded()) }

func (d *Doc) fromAny(v any) error {
	switch v := v.(type) {
	case string:
		*d = Doc{Kind: KindLeaf, Key: v}
		return nil
	case map[string]any:
		*d = Doc{}
		for k, val := range v {
			if k == "of" {
				items, ok := val.([]any)
				if !ok {
					return invalid("\"of\" must be an array")
				}
				d.Of = make([]Doc, len(items))
				for i, it := range items {
					if err := d.Of[i].fromAny(it); err != nil {
						return err
					}
				}
				continue
			}
			key, ok := val.(string)
			if !ok {
				return invalid("%q must name a key", k)
			}
			if err := d.setKind(k, key); err != nil {
				return err
			}
		}
		return d.check()
	}
	return invalid("a node is a string or an object, got %s", fmt.Sprintf("%T", v))
}
