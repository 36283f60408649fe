package schemafile_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/partcode"
	g "github.com/reoring/partcode/dsl"
	"github.com/reoring/partcode/schemafile"
)

func keysOf(n partcode.Node) []string {
	var out []string
	partcode.Walk(n, func(c partcode.Node) bool {
		out = append(out, c.Path())
		return true
	})
	return out
}

func TestLoad_YAML(t *testing.T) {
	n, err := schemafile.Load("testdata/search.yaml")
	require.NoError(t, err)
	require.Equal(t, int64(192), n.Cardinality().Int64())

	want := g.Tuple("search").Of(
		g.Enum("category", "electronics", "clothing", "books"),
		g.Enum("price", "under_25", "25_to_50", "50_to_100", "over_100"),
		g.Tuple("features").Of(
			g.Enum("waterproof", "yes", "no"),
			g.Enum("wireless", "yes", "no"),
			g.Enum("color", "black", "white", "red", "blue"),
		),
	).MustBuild()
	require.Equal(t, keysOf(want), keysOf(n))

	tok, err := n.Hash(partcode.Fields{"category": partcode.Pick("books"), "price": partcode.Pick("over_100"),
		"features": partcode.Fields{"waterproof": partcode.Pick("no"), "color": partcode.Pick("blue")}})
	require.NoError(t, err)
	require.Equal(t, "2X", tok)
}

func TestLoad_JSON(t *testing.T) {
	n, err := schemafile.Load("testdata/control.json")
	require.NoError(t, err)
	require.IsType(t, &partcode.Choice{}, n)
	// 1 + 3*3 + 1
	require.Equal(t, int64(11), n.Cardinality().Int64())

	m, err := n.UnhashBig(big.NewInt(10))
	require.NoError(t, err)
	require.Equal(t, partcode.Model(partcode.Pick("automatic")), m)
}

func TestRoundTrip_Documents(t *testing.T) {
	n, err := schemafile.Load("testdata/search.yaml")
	require.NoError(t, err)

	y, err := schemafile.MarshalYAML(n)
	require.NoError(t, err)
	fromYAML, err := schemafile.LoadYAML(y)
	require.NoError(t, err)
	require.Equal(t, keysOf(n), keysOf(fromYAML))

	j, err := schemafile.MarshalJSON(n)
	require.NoError(t, err)
	fromJSON, err := schemafile.LoadJSON(j)
	require.NoError(t, err)
	require.Equal(t, keysOf(n), keysOf(fromJSON))

	require.Equal(t, schemafile.FromNode(n), schemafile.FromNode(fromJSON))
}

func TestDoc_IsABuilder(t *testing.T) {
	var doc schemafile.Doc
	require.NoError(t, doc.UnmarshalJSON([]byte(`{"choice":"flag","of":["off","on"]}`)))
	root := g.Tuple("settings").Of(doc, doc).Keys("extra")
	_, err := root.Build()
	require.Error(t, err, "two children share the key flag")

	tup, err := g.Tuple("settings").Of(doc).Keys("extra").Build()
	require.NoError(t, err)
	require.Equal(t, int64(2), tup.Cardinality().Int64())
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]string{
		"both kinds":      "tuple: a\nchoice: b\n",
		"unknown key":     "struct: a\n",
		"no kind":         "of: [a]\n",
		"of not sequence": "tuple: a\nof: b\n",
		"leaf children":   "leaf: a\nof: [b]\n",
		"null child":      "tuple: a\nof: [~]\n",
		"empty choice":    "choice: a\nof: []\n",
		"duplicate":       "tuple: a\nof: [b, b]\n",
		"sequence root":   "[a, b]\n",
		"duplicate of":    "choice: c\nof: [a, b]\nof: [z]\n",
		"duplicate kind":  "choice: c\nchoice: d\nof: [a]\n",
		"nested repeat":   "tuple: t\nof:\n  - choice: c\n    of: [a]\n    of: [b]\n",
		"empty":           "",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			n, err := schemafile.LoadYAML([]byte(in))
			require.Error(t, err, "loaded %v", n)
			require.True(t, errors.Is(err, partcode.SchemaKind), "%v", err)
			require.Equal(t, partcode.SchemaKind, partcode.KindOf(err))
		})
	}

	for _, in := range []string{
		`1`, `{"tuple":1}`, `{"tuple":"a","of":"b"}`, `{"tuple":"a","of":[true]}`,
		`{"choice":"c","of":["a","b"],"of":["z"]}`,
		`{"tuple":"t","of":[{"choice":"c","choice":"d","of":["a"]}]}`,
	} {
		n, err := schemafile.LoadJSON([]byte(in))
		require.Error(t, err, "%s loaded %v", in, n)
		require.True(t, errors.Is(err, partcode.SchemaKind), "%s: %v", in, err)
		_, ok := partcode.AsIssues(err)
		require.True(t, ok, "%s: %v", in, err)
	}

	_, err := schemafile.LoadJSON([]byte(`{"tuple":"t","of":[{"choice":"c","choice":"d","of":["a"]}]}`))
	iss, _ := partcode.AsIssues(err)
	require.Equal(t, partcode.CodeDuplicateKey, iss[0].Code)
	require.Equal(t, "/of/0", iss[0].Path)

	_, err = schemafile.Load("testdata/search.toml")
	require.Error(t, err)
}
