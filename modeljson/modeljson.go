// Package modeljson converts partcode models to and from JSON.
//
// JSON null is Unit, a string is a branch key (Pick), and an object is
// Fields. Objects are read as Fields regardless of the node they are hashed
// against; a Choice accepts a single-key Fields as a branch selection, so
// every canonical model survives a JSON round trip.
package modeljson

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/reoring/partcode"
	"github.com/reoring/partcode/internal/jsondup"
)

// Marshal encodes m as JSON. Object keys are sorted.
func Marshal(m partcode.Model) ([]byte, error) { return json.Marshal(ToAny(m)) }

// MarshalIndent is like Marshal with indentation.
func MarshalIndent(m partcode.Model, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(ToAny(m), prefix, indent)
}

// Unmarshal decodes a JSON document into a model. An object that repeats a
// key fails with partcode.ReferenceKind; malformed JSON, including data
// after the value, fails with partcode.TypeKind and code parse_error.
func Unmarshal(data []byte) (partcode.Model, error) {
	// Decoding into a map would silently keep the last of two equal keys,
	// hiding a model that names one field or branch twice.
	dup, err := jsondup.Check(data)
	if err != nil {
		return nil, parseError(err)
	}
	if dup != nil {
		return nil, partcode.NewIssue(partcode.ReferenceKind, jsondup.Pointer(dup.Path), partcode.CodeDuplicateKey, map[string]any{"key": dup.Key})
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, parseError(err)
	}
	return FromAny(v)
}

func parseError(err error) error {
	iss := partcode.NewIssue(partcode.TypeKind, "/", partcode.CodeParseError, map[string]any{"reason": err.Error()})
	iss[0].Cause = err
	return iss
}

// ToAny converts m to plain Go values (nil, string, map[string]any).
func ToAny(m partcode.Model) any {
	switch m := m.(type) {
	case partcode.Branch:
		if m.Value == nil {
			return m.Key
		}
		return map[string]any{m.Key: ToAny(m.Value)}
	case partcode.Fields:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = ToAny(v)
		}
		return out
	}
	return nil
}

// FromAny converts decoded JSON or YAML values into a model. Numbers,
// booleans and arrays have no model form and fail with partcode.TypeKind.
func FromAny(v any) (partcode.Model, error) { return fromAny(v, nil) }

func fromAny(v any, path []string) (partcode.Model, error) {
	switch v := v.(type) {
	case nil:
		return partcode.Unit{}, nil
	case string:
		return partcode.Pick(v), nil
	case map[string]any:
		out := make(partcode.Fields, len(v))
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sub, err := fromAny(v[k], append(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = sub
		}
		return out, nil
	}
	return nil, partcode.NewIssue(partcode.TypeKind, jsondup.Pointer(path), partcode.CodeInvalidType, map[string]any{"got": kindOf(v), "expected": "null, string or object"})
}

func kindOf(v any) string {
	switch v.(type) {
	case bool:
		return "boolean"
	case []any:
		return "array"
	case json.Number, float64, int, int64, uint64:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

// Hash decodes a JSON model and hashes it against n.
func Hash(n partcode.Node, data []byte) (string, error) {
	m, err := Unmarshal(data)
	if err != nil {
		return "", err
	}
	return n.Hash(m)
}

// Unhash decodes token against n and encodes the canonical model as JSON.
func Unhash(n partcode.Node, token string) ([]byte, error) {
	m, err := n.Unhash(token)
	if err != nil {
		return nil, err
	}
	return Marshal(m)
}

// UnhashIndex is like Unhash for a decimal index string.
func UnhashIndex(n partcode.Node, index string) ([]byte, error) {
	i, ok := new(big.Int).SetString(index, 10)
	if !ok {
		return nil, partcode.NewIssue(partcode.TypeKind, n.Path(), partcode.CodeInvalidFormat, map[string]any{"got": strconv.Quote(index), "format": "decimal index"})
	}
	m, err := partcode.UnhashAs(n, i, partcode.FormatBigInt)
	if err != nil {
		return nil, err
	}
	return Marshal(m)
}
