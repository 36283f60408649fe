package partcode

import (
	"math/big"
	"strings"
)

// Node is a schema tree node: *Leaf, *Tuple or *Choice. Nodes are immutable
// once constructed and safe for concurrent use.
type Node interface {
	Key() string
	// Path joins the keys from the root to this node with "/".
	Path() string
	Parent() Node
	// Index is the position among the parent's children, or -1 for a root.
	Index() int
	// Cardinality returns a copy of the number of distinct models.
	Cardinality() *big.Int
	Children() []Node
	Child(key string) (Node, bool)

	Hash(m Model) (string, error)
	HashBig(m Model) (*big.Int, error)
	Unhash(s string) (Model, error)
	UnhashBig(n *big.Int) (Model, error)

	base() *part
}

// part holds the state shared by every node variant.
type part struct {
	key      string
	parent   Node
	index    int
	card     *big.Int
	children []Node
	byKey    map[string]int
}

func (p *part) base() *part { return p }

func (p *part) Key() string { return p.key }

func (p *part) Parent() Node { return p.parent }

func (p *part) Index() int { return p.index }

func (p *part) Cardinality() *big.Int { return new(big.Int).Set(p.card) }

// Path joins the keys from the root down with "/".
func (p *part) Path() string {
	if p.parent == nil {
		return p.key
	}
	return p.parent.Path() + "/" + p.key
}

func (p *part) Children() []Node { return append([]Node(nil), p.children...) }

func (p *part) Child(key string) (Node, bool) {
	i, ok := p.byKey[key]
	if !ok {
		return nil, false
	}
	return p.children[i], true
}

func (p *part) keyList() string {
	keys := make([]string, len(p.children))
	for i, c := range p.children {
		keys[i] = c.Key()
	}
	return strings.Join(keys, ", ")
}

// Leaf is a unit part with a single state, the null model.
type Leaf struct{ part }

// Tuple is a product of named fields. Field i has a place value equal to the
// product of the cardinalities of the fields after it.
type Tuple struct {
	part
	place []*big.Int
}

// Choice is a sum of mutually exclusive branches. Branch i owns the range
// starting at the sum of the cardinalities of the branches before it.
type Choice struct {
	part
	offsets []*big.Int
}

// NewLeaf returns a leaf part.
//
// Keys are checked when a part is attached: a child key must be non-empty
// and unique among its siblings. A root key is never checked, and an empty
// one is allowed. Such a root has Path "" and its children read "/a", "/b".
func NewLeaf(key string) *Leaf {
	return &Leaf{part{key: key, index: -1, card: big.NewInt(1)}}
}

// Keys turns bare keys into leaves, for use as Tuple or Choice children.
func Keys(keys ...string) []Node {
	out := make([]Node, len(keys))
	for i, k := range keys {
		out[i] = NewLeaf(k)
	}
	return out
}

// NewTuple builds a product part over children. A Tuple without children
// has cardinality 1.
func NewTuple(key string, children ...Node) (*Tuple, error) {
	t := &Tuple{part: part{key: key, index: -1}}
	if err := t.adopt(t, children); err != nil {
		return nil, err
	}
	t.place = make([]*big.Int, len(children))
	product := big.NewInt(1)
	for i := len(children) - 1; i >= 0; i-- {
		t.place[i] = new(big.Int).Set(product)
		product.Mul(product, children[i].base().card)
	}
	t.card = product
	return t, nil
}

// NewChoice builds a sum part over children. At least one child is required.
func NewChoice(key string, children ...Node) (*Choice, error) {
	c := &Choice{part: part{key: key, index: -1}}
	if len(children) == 0 {
		return nil, NewIssue(SchemaKind, key, CodeEmptyChoice, nil)
	}
	if err := c.adopt(c, children); err != nil {
		return nil, err
	}
	c.offsets = make([]*big.Int, len(children))
	sum := new(big.Int)
	for i, ch := range children {
		c.offsets[i] = new(big.Int).Set(sum)
		sum.Add(sum, ch.base().card)
	}
	c.card = sum
	return c, nil
}

// MustTuple is like NewTuple but panics on error.
func MustTuple(key string, children ...Node) *Tuple {
	t, err := NewTuple(key, children...)
	if err != nil {
		panic(err)
	}
	return t
}

// MustChoice is like NewChoice but panics on error.
func MustChoice(key string, children ...Node) *Choice {
	c, err := NewChoice(key, children...)
	if err != nil {
		panic(err)
	}
	return c
}

// adopt validates children and then attaches them to self. Nothing is
// attached unless every child is valid.
func (p *part) adopt(self Node, children []Node) error {
	byKey := make(map[string]int, len(children))
	seen := make(map[*part]bool, len(children))
	for i, ch := range children {
		if ch == nil {
			return NewIssue(SchemaKind, p.key, CodeInvalidSchema, map[string]any{"reason": "nil child"})
		}
		cb := ch.base()
		if cb.key == "" {
			return NewIssue(SchemaKind, p.key, CodeInvalidKey, map[string]any{"index": i})
		}
		if _, dup := byKey[cb.key]; dup {
			return NewIssue(SchemaKind, p.key, CodeDuplicateKey, map[string]any{"key": cb.key})
		}
		if cb.parent != nil || seen[cb] {
			parent := p.key
			if cb.parent != nil {
				parent = cb.parent.Path()
			}
			return NewIssue(SchemaKind, p.key, CodeAlreadyAttached, map[string]any{"key": cb.key, "parent": parent})
		}
		byKey[cb.key] = i
		seen[cb] = true
	}
	for i, ch := range children {
		cb := ch.base()
		cb.parent = self
		cb.index = i
	}
	p.children = append([]Node(nil), children...)
	p.byKey = byKey
	return nil
}

// PlaceValue returns a copy of the place value of the named field.
func (t *Tuple) PlaceValue(key string) (*big.Int, bool) {
	i, ok := t.byKey[key]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(t.place[i]), true
}

// Offset returns a copy of the first index of the named branch.
func (c *Choice) Offset(key string) (*big.Int, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(c.offsets[i]), true
}

func (l *Leaf) Hash(m Model) (string, error) { return defaultCodec(l).Hash(m) }
func (l *Leaf) HashBig(m Model) (*big.Int, error) { return hashNode(l, m) }
func (l *Leaf) Unhash(s string) (Model, error) { return defaultCodec(l).Unhash(s) }
func (l *Leaf) UnhashBig(n *big.Int) (Model, error) { return unhashNode(l, n) }
func (t *Tuple) Hash(m Model) (string, error) { return defaultCodec(t).Hash(m) }
func (t *Tuple) HashBig(m Model) (*big.Int, error) { return hashNode(t, m) }
func (t *Tuple) Unhash(s string) (Model, error) { return defaultCodec(t).Unhash(s) }
func (t *Tuple) UnhashBig(n *big.Int) (Model, error) { return unhashNode(t, n) }
func (c *Choice) Hash(m Model) (string, error) { return defaultCodec(c).Hash(m) }
func (c *Choice) HashBig(m Model) (*big.Int, error) { return hashNode(c, m) }
func (c *Choice) Unhash(s string) (Model, error) { return defaultCodec(c).Unhash(s) }
func (c *Choice) UnhashBig(n *big.Int) (Model, error) { return unhashNode(c, n) }
