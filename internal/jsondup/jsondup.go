// Package jsondup walks JSON token streams to find repeated object keys and
// data after the first value, both of which map decoding hides.
package jsondup

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
)

// ErrTrailing reports data after the first complete JSON value, including
// stray closing delimiters.
var ErrTrailing = errors.New("unexpected data after JSON value")

// Duplicate describes a key that appears twice in one object.
type Duplicate struct {
	Key  string
	Path []string // member names and array indices of the object
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	name         string // key or index of this container in its parent
	next         int    // next array index
}

// Check reports the first duplicate key in data. A syntax error or trailing
// data is returned as err; a clean document returns (nil, nil).
func Check(data []byte) (*Duplicate, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var (
		stack    []frame
		key      string // pending member name for the next value
		complete bool   // the top-level value has ended
	)

	// valueDone marks the end of a value inside the current container.
	valueDone := func() {
		if len(stack) == 0 {
			complete = true
			return
		}
		top := &stack[len(stack)-1]
		if top.kind == kindObject {
			top.expectingKey = true
		} else {
			top.next++
		}
	}
	// slot names the position a value is about to occupy.
	slot := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := stack[len(stack)-1]
		if top.kind == kindArray {
			return fmt.Sprint(top.next)
		}
		return key
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if complete {
			return nil, fmt.Errorf("%w: %v", ErrTrailing, tok)
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, frame{kind: kindObject, keys: map[string]struct{}{}, expectingKey: true, name: slot()})
			case '[':
				stack = append(stack, frame{kind: kindArray, name: slot()})
			case '}', ']':
				if len(stack) == 0 {
					return nil, fmt.Errorf("%w: %v", ErrTrailing, v)
				}
				stack = stack[:len(stack)-1]
				valueDone()
			}
		case string:
			if len(stack) > 0 {
				top := &stack[len(stack)-1]
				if top.kind == kindObject && top.expectingKey {
					if _, dup := top.keys[v]; dup {
						return &Duplicate{Key: v, Path: path(stack)}, nil
					}
					top.keys[v] = struct{}{}
					top.expectingKey = false
					key = v
					continue
				}
			}
			valueDone()
		default:
			valueDone()
		}
	}
}

func path(stack []frame) []string {
	out := make([]string, 0, len(stack))
	for i, f := range stack {
		if i == 0 {
			continue
		}
		out = append(out, f.name)
	}
	return out
}

// Pointer renders path as a JSON Pointer (RFC 6901).
func Pointer(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, p := range path {
		b.WriteString("/")
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(p, "~", "~0"), "/", "~1"))
	}
	return b.String()
}
