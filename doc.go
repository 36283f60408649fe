// Package partcode maps named-choice configuration models to compact tokens
// and back.
//
// A schema is a tree of parts:
//
// - Leaf: a unit with one state (the null model).
// - Tuple: a product of named fields; its cardinality is the product of the
// field cardinalities and each field has a mixed-radix place value.
// - Choice: a sum of named branches; its cardinality is the sum of the branch
// cardinalities and each branch owns a contiguous range starting at its offset.
//
// Every node is in bijection with [0, cardinality). The root index is
// rendered by package numeral, a bijective base-64 system, so every token
// decodes to exactly one model and every model has exactly one canonical
// token.
//
// Design policy:
// - Keep only public APIs in the root package; put builders under dsl/,
// document loaders under schemafile/, and the JSON bridge under modeljson/.
// - Errors are Issues carrying a Kind; test them with errors.Is.
//
// Typical usage:
//
//	flag := partcode.MustChoice("flag", partcode.Keys("off", "on")...)
//	tok, err := flag.Hash(partcode.Pick("on")) // "1"
//	m, err := flag.Unhash(tok)                 // partcode.Branch{Key: "on"}
package partcode
