package partcode_test

import (
	"errors"
	"fmt"

	"github.com/reoring/partcode"
	g "github.com/reoring/partcode/dsl"
)

func Example() {
	search := g.Tuple("search").Of(
		g.Enum("category", "electronics", "clothing", "books"),
		g.Enum("price", "under_25", "25_to_50", "50_to_100", "over_100"),
	).MustBuild()

	tok, _ := search.Hash(partcode.Fields{"category": partcode.Pick("books")})
	m, _ := search.Unhash(tok)
	fmt.Println(search.Cardinality(), tok, partcode.String(m))
	// Output: 12 8 {category:books,price:under_25}
}

func ExampleChoice_Unhash() {
	flag := partcode.MustChoice("flag", partcode.Keys("off", "on")...)
	m, _ := flag.Unhash("1")
	fmt.Println(partcode.String(m))

	_, err := flag.Unhash("2")
	fmt.Println(errors.Is(err, partcode.RangeKind))
	// Output:
	// on
	// true
}
