package partcode

import (
	"sort"
	"strings"
)

// Model is a point in a node's state space. It is one of Unit, Fields or
// Branch; a nil Model is read as Unit.
type Model interface {
	isModel()
}

// Unit is the null model, the only state of a Leaf.
type Unit struct{}

// Fields maps part keys to sub-models. Tuples read every entry; a Choice
// reads an empty mapping as its zero state and a single entry as a branch
// selection.
type Fields map[string]Model

// Branch selects one branch of a Choice. A nil Value is the bare-key
// shorthand for the branch's zero state.
type Branch struct {
	Key   string
	Value Model
}

func (Unit) isModel()   {}
func (Fields) isModel() {}
func (Branch) isModel() {}

// Pick selects a branch at its zero state.
func Pick(key string) Branch { return Branch{Key: key} }

// Select selects a branch with the given sub-model.
func Select(key string, v Model) Branch { return Branch{Key: key, Value: v} }

// Keys returns the sorted keys of f.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders m in a compact JSON-like form for diagnostics.
func String(m Model) string {
	b := &strings.Builder{}
	writeModel(b, m)
	return b.String()
}

func writeModel(b *strings.Builder, m Model) {
	switch m := m.(type) {
	case nil, Unit:
		b.WriteString("null")
	case Branch:
		if m.Value == nil {
			b.WriteString(m.Key)
			return
		}
		b.WriteString("{" + m.Key + ":")
		writeModel(b, m.Value)
		b.WriteString("}")
	case Fields:
		b.WriteString("{")
		for i, k := range m.Keys() {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(k + ":")
			writeModel(b, m[k])
		}
		b.WriteString("}")
	}
}

// modelKind names the shape of m for error messages.
func modelKind(m Model) string {
	switch m.(type) {
	case nil, Unit:
		return "null"
	case Fields:
		return "mapping"
	case Branch:
		return "branch"
	}
	return "unknown"
}
