package dsl

import (
	"github.com/reoring/partcode"
)

// Builder produces a fresh node on every call, so one builder can describe
// a subtree that is attached under several parents.
type Builder interface {
	BuildNode() (partcode.Node, error)
}

type leafBuilder struct{ key string }

// Leaf declares a unit part.
func Leaf(key string) Builder { return leafBuilder{key: key} }

func (b leafBuilder) BuildNode() (partcode.Node, error) { return partcode.NewLeaf(b.key), nil }

// step is one declared child: a builder or an already-built node.
type step struct {
	b Builder
	n partcode.Node
}

type compositeBuilder struct {
	key   string
	steps []step
}

func (c *compositeBuilder) add(keys []string, of []Builder, nodes []partcode.Node) {
	for _, k := range keys {
		c.steps = append(c.steps, step{b: leafBuilder{key: k}})
	}
	for _, b := range of {
		c.steps = append(c.steps, step{b: b})
	}
	for _, n := range nodes {
		c.steps = append(c.steps, step{n: n})
	}
}

func (c *compositeBuilder) children() ([]partcode.Node, error) {
	out := make([]partcode.Node, 0, len(c.steps))
	for _, s := range c.steps {
		if s.b == nil {
			out = append(out, s.n)
			continue
		}
		n, err := s.b.BuildNode()
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// TupleBuilder declares a product part. Children keep declaration order.
type TupleBuilder struct{ c compositeBuilder }

// Tuple creates a new tuple builder.
func Tuple(key string) *TupleBuilder { return &TupleBuilder{c: compositeBuilder{key: key}} }

// Keys appends leaf fields.
func (b *TupleBuilder) Keys(keys ...string) *TupleBuilder {
	b.c.add(keys, nil, nil)
	return b
}

// Of appends fields built from other builders.
func (b *TupleBuilder) Of(children ...Builder) *TupleBuilder {
	b.c.add(nil, children, nil)
	return b
}

// Node appends already-constructed fields. Such a builder can only be built
// once, since a node has a single parent.
func (b *TupleBuilder) Node(children ...partcode.Node) *TupleBuilder {
	b.c.add(nil, nil, children)
	return b
}

// Build constructs the tuple.
func (b *TupleBuilder) Build() (*partcode.Tuple, error) {
	ch, err := b.c.children()
	if err != nil {
		return nil, err
	}
	return partcode.NewTuple(b.c.key, ch...)
}

// MustBuild is like Build but panics on error.
func (b *TupleBuilder) MustBuild() *partcode.Tuple {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

func (b *TupleBuilder) BuildNode() (partcode.Node, error) {
	n, err := b.Build()
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ChoiceBuilder declares a sum part. Branches keep declaration order, which
// fixes their offsets.
type ChoiceBuilder struct{ c compositeBuilder }

// Choice creates a new choice builder.
func Choice(key string) *ChoiceBuilder { return &ChoiceBuilder{c: compositeBuilder{key: key}} }

// Options appends leaf branches.
func (b *ChoiceBuilder) Options(keys ...string) *ChoiceBuilder {
	b.c.add(keys, nil, nil)
	return b
}

// Of appends branches built from other builders.
func (b *ChoiceBuilder) Of(children ...Builder) *ChoiceBuilder {
	b.c.add(nil, children, nil)
	return b
}

// Node appends already-constructed branches.
func (b *ChoiceBuilder) Node(children ...partcode.Node) *ChoiceBuilder {
	b.c.add(nil, nil, children)
	return b
}

// Build constructs the choice.
func (b *ChoiceBuilder) Build() (*partcode.Choice, error) {
	ch, err := b.c.children()
	if err != nil {
		return nil, err
	}
	return partcode.NewChoice(b.c.key, ch...)
}

// MustBuild is like Build but panics on error.
func (b *ChoiceBuilder) MustBuild() *partcode.Choice {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

func (b *ChoiceBuilder) BuildNode() (partcode.Node, error) {
	n, err := b.Build()
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Enum is shorthand for Choice(key).Options(options...).
func Enum(key string, options ...string) *ChoiceBuilder { return Choice(key).Options(options...) }

// Flag is a two-branch choice: "off" then "on".
func Flag(key string) *ChoiceBuilder { return Enum(key, "off", "on") }
