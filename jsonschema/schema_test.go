package jsonschema_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	g "github.com/reoring/partcode/dsl"
	"github.com/reoring/partcode/jsonschema"
)

func TestFromNode_Snapshot(t *testing.T) {
	root := g.Tuple("t").Of(
		g.Flag("a"),
		g.Choice("b").Options("p").Of(g.Tuple("q").Of(g.Leaf("u"))),
	).MustBuild()

	got, err := json.Marshal(jsonschema.FromNode(root))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"title":"t","type":"object","properties":{` +
		`"a":{"title":"a","oneOf":[{"type":"string","enum":["off","on"]},{"type":"object","maxProperties":0},` +
		`{"type":"object","properties":{"off":{"title":"off","type":"null"}},"required":["off"],"additionalProperties":false},` +
		`{"type":"object","properties":{"on":{"title":"on","type":"null"}},"required":["on"],"additionalProperties":false}]},` +
		`"b":{"title":"b","oneOf":[{"type":"string","enum":["p","q"]},{"type":"object","maxProperties":0},` +
		`{"type":"object","properties":{"p":{"title":"p","type":"null"}},"required":["p"],"additionalProperties":false},` +
		`{"type":"object","properties":{"q":{"title":"q","type":"object","properties":{"u":{"title":"u","type":"null"}},"additionalProperties":false}},"required":["q"],"additionalProperties":false}]}` +
		`},"additionalProperties":false}`

	var gotAny, wantAny any
	if err := json.Unmarshal(got, &gotAny); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(want), &wantAny); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(wantAny, gotAny); diff != "" {
		t.Fatalf("schema (-want +got):\n%s", diff)
	}
}

func TestFromNode_Leaf(t *testing.T) {
	s := jsonschema.FromNode(g.Flag("f").MustBuild().Children()[0])
	if s.Type != "null" || s.Title != "off" {
		t.Fatalf("leaf schema: %+v", s)
	}
}
