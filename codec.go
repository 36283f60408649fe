package partcode

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/reoring/partcode/numeral"
)

// Format selects how a hash is represented.
type Format int

const (
	FormatString Format = iota // A token over the numeral alphabet (default).
	FormatBigInt               // A raw *big.Int index.
)

func (f Format) String() string {
	switch f {
	case FormatString:
		return "string"
	case FormatBigInt:
		return "bigint"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat accepts "string" or "bigint". An empty name selects
// FormatString.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "", "string":
		return FormatString, nil
	case "bigint":
		return FormatBigInt, nil
	}
	return 0, NewIssue(TypeKind, "", CodeInvalidFormat, map[string]any{"got": name, "format": "string|bigint"})
}

// Codec binds a root node to an alphabet. The zero Codec is not usable;
// build one with NewCodec.
type Codec struct {
	root     Node
	alphabet numeral.Alphabet
}

// Option configures a Codec.
type Option func(*Codec)

// WithAlphabet replaces numeral.Default.
func WithAlphabet(a numeral.Alphabet) Option {
	return func(c *Codec) { c.alphabet = a }
}

// NewCodec returns a Codec for root.
func NewCodec(root Node, opts ...Option) *Codec {
	c := &Codec{root: root, alphabet: numeral.Default}
	for _, o := range opts {
		o(c)
	}
	return c
}

func defaultCodec(n Node) *Codec { return &Codec{root: n, alphabet: numeral.Default} }

// Root returns the node the codec serves.
func (c *Codec) Root() Node { return c.root }

// Hash returns the token for m.
func (c *Codec) Hash(m Model) (string, error) {
	n, err := hashNode(c.root, m)
	if err != nil {
		return "", err
	}
	return c.alphabet.Encode(n)
}

// HashBig returns the index for m.
func (c *Codec) HashBig(m Model) (*big.Int, error) { return hashNode(c.root, m) }

// Unhash returns the canonical model for token s.
func (c *Codec) Unhash(s string) (Model, error) {
	n, err := c.alphabet.Decode(s)
	if err != nil {
		var se *numeral.SymbolError
		if errors.As(err, &se) {
			iss := NewIssue(InvalidSymbol, c.root.Path(), CodeInvalidSymbol, map[string]any{"symbol": fmt.Sprintf("%q", se.Symbol), "offset": se.Offset})
			iss[0].Cause = err
			return nil, iss
		}
		return nil, err
	}
	return unhashNode(c.root, n)
}

// UnhashBig returns the canonical model for index n.
func (c *Codec) UnhashBig(n *big.Int) (Model, error) { return unhashNode(c.root, n) }

// HashAs returns a string for FormatString and a *big.Int for FormatBigInt.
func (c *Codec) HashAs(m Model, f Format) (any, error) {
	switch f {
	case FormatString:
		return c.Hash(m)
	case FormatBigInt:
		return c.HashBig(m)
	}
	return nil, NewIssue(TypeKind, c.root.Path(), CodeInvalidFormat, map[string]any{"got": f, "format": "string|bigint"})
}

// UnhashAs interprets v according to f. FormatString requires a string;
// FormatBigInt accepts *big.Int and Go integer types. Any other
// pairing fails with TypeKind.
func (c *Codec) UnhashAs(v any, f Format) (Model, error) {
	switch f {
	case FormatString:
		s, ok := v.(string)
		if !ok {
			return nil, c.formatMismatch(v, f)
		}
		return c.Unhash(s)
	case FormatBigInt:
		n, ok := toBig(v)
		if !ok {
			return nil, c.formatMismatch(v, f)
		}
		return c.UnhashBig(n)
	}
	return nil, NewIssue(TypeKind, c.root.Path(), CodeInvalidFormat, map[string]any{"got": f, "format": "string|bigint"})
}

// MaxLen returns the length of the longest token the root produces.
func (c *Codec) MaxLen() int { return MaxLen(c.root) }

func (c *Codec) formatMismatch(v any, f Format) error {
	return NewIssue(TypeKind, c.root.Path(), CodeInvalidFormat, map[string]any{"got": fmt.Sprintf("%T", v), "format": f})
}

func toBig(v any) (*big.Int, bool) {
	switch v := v.(type) {
	case *big.Int:
		return v, v != nil
	case int:
		return big.NewInt(int64(v)), true
	case int8:
		return big.NewInt(int64(v)), true
	case int16:
		return big.NewInt(int64(v)), true
	case int32:
		return big.NewInt(int64(v)), true
	case int64:
		return big.NewInt(v), true
	case uint:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint64:
		return new(big.Int).SetUint64(v), true
	case uintptr:
		return new(big.Int).SetUint64(uint64(v)), true
	}
	return nil, false
}

// HashAs hashes m against n with the default alphabet.
func HashAs(n Node, m Model, f Format) (any, error) { return defaultCodec(n).HashAs(m, f) }

// UnhashAs unhashes v against n with the default alphabet.
func UnhashAs(n Node, v any, f Format) (Model, error) { return defaultCodec(n).UnhashAs(v, f) }

// MaxLen returns the token length of the largest index of n.
func MaxLen(n Node) int {
	last := n.Cardinality()
	return numeral.Len(last.Sub(last, big.NewInt(1)))
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, ch := range n.base().children {
		Walk(ch, fn)
	}
}
