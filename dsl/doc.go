// Package dsl provides fluent builders for partcode schema trees.
//
// Entry points
//   - Tuple(key): a product part; chain Keys/Of/Node then Build/MustBuild.
//   - Choice(key): a sum part; chain Options/Of/Node then Build/MustBuild.
//   - Enum(key, options...), Flag(key): common choice shapes.
//   - Leaf(key): a unit part, for use inside Of.
//
// Builders are declarative: every Build constructs fresh nodes bottom-up, so
// a builder can be reused as a template under several parents.
//
// Quickstart
//
//	search := dsl.Tuple("search").Of(
//		dsl.Enum("category", "electronics", "clothing", "books"),
//		dsl.Enum("price", "under_25", "25_to_50", "50_to_100", "over_100"),
//		dsl.Tuple("features").Of(
//			dsl.Enum("waterproof", "yes", "no"),
//			dsl.Enum("wireless", "yes", "no"),
//			dsl.Enum("color", "black", "white", "red", "blue"),
//		),
//	).MustBuild()
package dsl
