// Package jsonschema projects partcode schema trees into JSON Schema, so the
// models a tree accepts can be validated or documented by other tools.
package jsonschema

import (
	"github.com/reoring/partcode"
)

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	Title string `json:"title,omitempty"`
	Type  string `json:"type,omitempty"`
	Enum  []any  `json:"enum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	MaxProperties        *int               `json:"maxProperties,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// FromNode returns the schema of every model n.Hash accepts in JSON form
// (see package modeljson): null for a leaf, an object of optional fields for
// a tuple, and for a choice either a branch key, a single-branch object or
// an empty object.
func FromNode(n partcode.Node) *Schema {
	switch n := n.(type) {
	case *partcode.Leaf:
		return &Schema{Title: n.Key(), Type: "null"}
	case *partcode.Tuple:
		out := &Schema{Title: n.Key(), Type: "object", AdditionalProperties: false}
		out.Properties = make(map[string]*Schema, len(n.Children()))
		for _, ch := range n.Children() {
			out.Properties[ch.Key()] = FromNode(ch)
		}
		return out
	case *partcode.Choice:
		children := n.Children()
		keys := make([]any, len(children))
		for i, ch := range children {
			keys[i] = ch.Key()
		}
		zero := 0
		out := &Schema{Title: n.Key()}
		out.OneOf = make([]*Schema, 0, len(children)+2)
		out.OneOf = append(out.OneOf,
			&Schema{Type: "string", Enum: keys},
			&Schema{Type: "object", MaxProperties: &zero},
		)
		for _, ch := range children {
			out.OneOf = append(out.OneOf, &Schema{
				Type:                 "object",
				Properties:           map[string]*Schema{ch.Key(): FromNode(ch)},
				Required:             []string{ch.Key()},
				AdditionalProperties: false,
			})
		}
		return out
	}
	return &Schema{}
}
