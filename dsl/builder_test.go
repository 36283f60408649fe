package dsl_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/partcode"
	g "github.com/reoring/partcode/dsl"
)

func TestBuilder_SearchState(t *testing.T) {
	search := g.Tuple("search").Of(
		g.Enum("category", "electronics", "clothing", "books"),
		g.Enum("price", "under_25", "25_to_50", "50_to_100", "over_100"),
		g.Tuple("features").Of(
			g.Enum("waterproof", "yes", "no"),
			g.Enum("wireless", "yes", "no"),
			g.Enum("color", "black", "white", "red", "blue"),
		),
	).MustBuild()

	if search.Cardinality().Int64() != 192 {
		t.Fatalf("cardinality: %s", search.Cardinality())
	}
	tok, err := search.Hash(partcode.Fields{"category": partcode.Pick("books")})
	if err != nil {
		t.Fatal(err)
	}
	m, err := search.Unhash(tok)
	if err != nil {
		t.Fatal(err)
	}
	fields := m.(partcode.Fields)
	if diff := cmp.Diff(partcode.Model(partcode.Pick("books")), fields["category"]); diff != "" {
		t.Fatalf("category (-want +got):\n%s", diff)
	}
}

func TestBuilder_MixedChildrenKeepOrder(t *testing.T) {
	manual := g.Tuple("manual").Of(g.Enum("speed", "slow", "fast")).MustBuild()
	c := g.Choice("control").
		Options("none").
		Node(manual).
		Of(g.Leaf("auto"), g.Flag("remote")).
		MustBuild()

	var keys []string
	for _, ch := range c.Children() {
		keys = append(keys, ch.Key())
	}
	if diff := cmp.Diff([]string{"none", "manual", "auto", "remote"}, keys); diff != "" {
		t.Fatalf("order (-want +got):\n%s", diff)
	}
	// 1 + 2 + 1 + 2
	if c.Cardinality().Int64() != 6 {
		t.Fatalf("cardinality: %s", c.Cardinality())
	}
}

func TestBuilder_ReusableTemplate(t *testing.T) {
	dims := g.Tuple("dims").Of(g.Enum("width", "s", "m", "l"), g.Enum("height", "s", "m", "l"))
	a := g.Tuple("a").Of(dims).MustBuild()
	b := g.Tuple("b").Of(dims).MustBuild()
	da, _ := a.Child("dims")
	db, _ := b.Child("dims")
	if da == db {
		t.Fatalf("template should build distinct nodes")
	}
	if da.Path() != "a/dims" || db.Path() != "b/dims" {
		t.Fatalf("paths: %s %s", da.Path(), db.Path())
	}
}

func TestBuilder_Errors(t *testing.T) {
	if _, err := g.Choice("empty").Build(); !errors.Is(err, partcode.SchemaKind) {
		t.Fatalf("empty choice: %v", err)
	}
	if _, err := g.Tuple("t").Keys("a").Of(g.Leaf("a")).Build(); !errors.Is(err, partcode.SchemaKind) {
		t.Fatalf("duplicate key: %v", err)
	}
	// nested failures surface unchanged
	_, err := g.Tuple("outer").Of(g.Choice("inner")).Build()
	iss, ok := partcode.AsIssues(err)
	if !ok || iss[0].Code != partcode.CodeEmptyChoice || iss[0].Path != "inner" {
		t.Fatalf("nested error: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustBuild should panic")
		}
	}()
	g.Choice("empty").MustBuild()
}
