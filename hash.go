package partcode

import (
	"math/big"
	"strconv"
	"strings"
)

// hashNode maps m to its index in [0, cardinality) of n.
func hashNode(n Node, m Model) (*big.Int, error) {
	switch n := n.(type) {
	case *Leaf:
		return hashLeaf(n, m)
	case *Tuple:
		return hashTuple(n, m)
	case *Choice:
		return hashChoice(n, m)
	}
	return nil, NewIssue(TypeKind, n.Path(), CodeInvalidType, map[string]any{"got": "node", "expected": "leaf, tuple or choice"})
}

// unhashNode maps an index of n back to its canonical model.
func unhashNode(n Node, i *big.Int) (Model, error) {
	if i == nil {
		return nil, NewIssue(TypeKind, n.Path(), CodeInvalidFormat, map[string]any{"got": "nil", "format": FormatBigInt})
	}
	b := n.base()
	if i.Sign() < 0 || i.Cmp(b.card) >= 0 {
		return nil, outOfRange(b, n.Path(), i)
	}
	switch n := n.(type) {
	case *Leaf:
		return Unit{}, nil
	case *Tuple:
		return unhashTuple(n, i)
	case *Choice:
		return unhashChoice(n, i)
	}
	return nil, NewIssue(TypeKind, n.Path(), CodeInvalidType, map[string]any{"got": "node", "expected": "leaf, tuple or choice"})
}

func hashLeaf(l *Leaf, m Model) (*big.Int, error) {
	switch m.(type) {
	case nil, Unit:
		return new(big.Int), nil
	}
	return nil, typeMismatch(l.Path(), m, "null")
}

func hashTuple(t *Tuple, m Model) (*big.Int, error) {
	fields, ok := m.(Fields)
	if !ok {
		return nil, typeMismatch(t.Path(), m, "mapping")
	}
	sum := new(big.Int)
	if len(fields) == 0 {
		return sum, nil
	}
	term := new(big.Int)
	for _, k := range fields.Keys() {
		i, ok := t.byKey[k]
		if !ok {
			return nil, unknownKey(&t.part, t.Path(), k)
		}
		sub, err := hashNode(t.children[i], fields[k])
		if err != nil {
			return nil, err
		}
		sum.Add(sum, term.Mul(sub, t.place[i]))
	}
	if sum.Cmp(t.card) >= 0 {
		return nil, outOfRange(&t.part, t.Path(), sum)
	}
	return sum, nil
}

func hashChoice(c *Choice, m Model) (*big.Int, error) {
	var (
		key       string
		sub       Model
		shorthand bool
	)
	switch m := m.(type) {
	case Branch:
		key, sub, shorthand = m.Key, m.Value, m.Value == nil
	case Fields:
		switch len(m) {
		case 0:
			return new(big.Int), nil
		case 1:
			for k, v := range m {
				key, sub = k, v
			}
		default:
			return nil, NewIssue(ReferenceKind, c.Path(), CodeMultipleKeys, map[string]any{"keys": quoteJoin(m.Keys())})
		}
	default:
		return nil, typeMismatch(c.Path(), m, "branch or mapping")
	}

	i, ok := c.byKey[key]
	if !ok {
		return nil, unknownKey(&c.part, c.Path(), key)
	}
	n := new(big.Int).Set(c.offsets[i])
	if !shorthand {
		local, err := hashNode(c.children[i], sub)
		if err != nil {
			return nil, err
		}
		n.Add(n, local)
	}
	if n.Cmp(c.card) >= 0 {
		return nil, outOfRange(&c.part, c.Path(), n)
	}
	return n, nil
}

func unhashTuple(t *Tuple, i *big.Int) (Model, error) {
	out := make(Fields, len(t.children))
	rem := new(big.Int).Set(i)
	for j, ch := range t.children {
		q, r := new(big.Int).QuoRem(rem, t.place[j], new(big.Int))
		sub, err := unhashNode(ch, q)
		if err != nil {
			return nil, err
		}
		out[ch.Key()] = sub
		rem = r
	}
	return out, nil
}

func unhashChoice(c *Choice, i *big.Int) (Model, error) {
	j := len(c.children) - 1
	for k := 1; k < len(c.children); k++ {
		if i.Cmp(c.offsets[k]) < 0 {
			j = k - 1
			break
		}
	}
	ch := c.children[j]
	if ch.base().card.Cmp(big.NewInt(1)) == 0 {
		return Pick(ch.Key()), nil
	}
	sub, err := unhashNode(ch, new(big.Int).Sub(i, c.offsets[j]))
	if err != nil {
		return nil, err
	}
	return Select(ch.Key(), sub), nil
}

func typeMismatch(path string, m Model, expected string) error {
	return NewIssue(TypeKind, path, CodeInvalidType, map[string]any{"got": modelKind(m), "expected": expected})
}

func unknownKey(p *part, path, key string) error {
	return NewIssue(ReferenceKind, path, CodeUnknownKey, map[string]any{"key": key, "available": p.keyList()})
}

func outOfRange(p *part, path string, i *big.Int) error {
	last := new(big.Int).Sub(p.card, big.NewInt(1))
	return NewIssue(RangeKind, path, CodeOutOfRange, map[string]any{
		"index":       i.String(),
		"max":         last.String(),
		"cardinality": p.card.String(),
	})
}

func quoteJoin(keys []string) string {
	q := make([]string, len(keys))
	for i, k := range keys {
		q[i] = strconv.Quote(k)
	}
	return strings.Join(q, ", ")
}
