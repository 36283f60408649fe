// Package schemafile loads partcode schema trees from YAML or JSON
// definition documents and writes them back.
//
// A node document is a bare scalar (a leaf) or a mapping holding exactly
// one of "leaf", "tuple" or "choice" with the node key, plus "of" listing
// the children of a composite in order:
//
//	tuple: search
//	of:
//	  - choice: category
//	    of: [electronics, clothing, books]
//	  - choice: price
//	    of: [under_25, 25_to_50, 50_to_100, over_100]
package schemafile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/partcode"
)

// Node kinds as spelled in documents.
const (
	KindLeaf   = "leaf"
	KindTuple  = "tuple"
	KindChoice = "choice"
)

// Doc is the document form of a node. It implements dsl.Builder.
type Doc struct {
	Kind string
	Key  string
	Of   []Doc
}

// BuildNode constructs the tree described by d.
func (d Doc) BuildNode() (partcode.Node, error) {
	children := make([]partcode.Node, 0, len(d.Of))
	for _, c := range d.Of {
		n, err := c.BuildNode()
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	switch d.Kind {
	case KindLeaf, "":
		if len(d.Of) > 0 {
			return nil, invalid("leaf %q cannot have children", d.Key)
		}
		return partcode.NewLeaf(d.Key), nil
	case KindTuple:
		return partcode.NewTuple(d.Key, children...)
	case KindChoice:
		return partcode.NewChoice(d.Key, children...)
	}
	return nil, invalid("unknown node kind %q", d.Kind)
}

// FromNode returns the document form of n.
func FromNode(n partcode.Node) Doc {
	d := Doc{Key: n.Key()}
	switch n.(type) {
	case *partcode.Tuple:
		d.Kind = KindTuple
	case *partcode.Choice:
		d.Kind = KindChoice
	default:
		d.Kind = KindLeaf
	}
	for _, c := range n.Children() {
		d.Of = append(d.Of, FromNode(c))
	}
	return d
}

// Load reads a definition file; the extension selects YAML (.yaml, .yml)
// or JSON (.json).
func Load(path string) (partcode.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(data)
	case ".json":
		return LoadJSON(data)
	}
	return nil, invalid("unsupported file extension %q", filepath.Ext(path))
}

// docFields is the mapping form shared by the YAML and JSON writers.
type docFields struct {
	Leaf   string `yaml:"leaf,omitempty" json:"leaf,omitempty"`
	Tuple  string `yaml:"tuple,omitempty" json:"tuple,omitempty"`
	Choice string `yaml:"choice,omitempty" json:"choice,omitempty"`
	Of     []Doc  `yaml:"of,omitempty" json:"of,omitempty"`
}

// encoded returns a bare key for a leaf and a docFields otherwise.
func (d Doc) encoded() any {
	switch d.Kind {
	case KindTuple:
		return docFields{Tuple: d.Key, Of: d.Of}
	case KindChoice:
		return docFields{Choice: d.Key, Of: d.Of}
	}
	return d.Key
}

// setKind applies a kind key found in a mapping document.
func (d *Doc) setKind(kind, key string) error {
	switch kind {
	case KindLeaf, KindTuple, KindChoice:
	default:
		return invalid("unknown document key %q", kind)
	}
	if d.Kind != "" {
		return invalid("node declares both %q and %q", d.Kind, kind)
	}
	d.Kind, d.Key = kind, key
	return nil
}

func (d *Doc) check() error {
	if d.Kind == "" {
		return invalid("mapping needs one of %q, %q or %q", KindLeaf, KindTuple, KindChoice)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return partcode.NewIssue(partcode.SchemaKind, "/", partcode.CodeInvalidSchema, map[string]any{"reason": fmt.Sprintf(format, args...)})
}
