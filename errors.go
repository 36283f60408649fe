package partcode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/partcode/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeInvalidFormat = "invalid_format"
	CodeUnknownKey    = "unknown_key"
	CodeMultipleKeys  = "multiple_keys"
	CodeOutOfRange    = "out_of_range"
	CodeInvalidSymbol = "invalid_symbol"
	CodeParseError    = "parse_error"
	// Schema construction
	CodeInvalidKey      = "invalid_key"
	CodeDuplicateKey    = "duplicate_key"
	CodeAlreadyAttached = "already_attached"
	CodeEmptyChoice     = "empty_choice"
	CodeInvalidSchema   = "invalid_schema"
)

// Kind classifies an Issue. Kind implements error so callers can test with
// errors.Is(err, partcode.RangeKind).
type Kind int

const (
	// TypeKind: the model shape does not match the node variant, or a value
	// does not match its declared Format.
	TypeKind Kind = iota + 1
	// ReferenceKind: the model names a field or branch the node does not
	// have, or a Choice mapping names more than one branch.
	ReferenceKind
	// RangeKind: an integer falls outside [0, cardinality).
	RangeKind
	// InvalidSymbol: a token contains a character outside the alphabet.
	InvalidSymbol
	// SchemaKind: a tree could not be constructed.
	SchemaKind
)

func (k Kind) String() string {
	switch k {
	case TypeKind:
		return "type"
	case ReferenceKind:
		return "reference"
	case RangeKind:
		return "range"
	case InvalidSymbol:
		return "invalid symbol"
	case SchemaKind:
		return "schema"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k Kind) Error() string { return "partcode: " + k.String() + " error" }

// Issue describes a single failure.
type Issue struct {
	Kind    Kind
	Path    string // Node path, for example search/features/color.
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"index":"9", "max":"5"})
	// for i18n and observability.
	Params map[string]any
	Cause  error // Optional: underlying error.
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. out_of_range at search/price: index 9 ...
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" && it.Message != it.Code {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports whether any issue has the target Kind.
func (iss Issues) Is(target error) bool {
	k, ok := target.(Kind)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Kind == k {
			return true
		}
	}
	return false
}

// Unwrap exposes the underlying causes to errors.Is and errors.As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// KindOf returns the Kind of the first issue in err, or 0.
func KindOf(err error) Kind {
	iss, ok := AsIssues(err)
	if !ok || len(iss) == 0 {
		return 0
	}
	return iss[0].Kind
}

// NewIssue builds a single-issue error whose message comes from i18n.T.
// params values are rendered with fmt.Sprint for the message template.
func NewIssue(kind Kind, path, code string, params map[string]any) Issues {
	data := make(map[string]string, len(params)+1)
	for k, v := range params {
		data[k] = fmt.Sprint(v)
	}
	data["path"] = path
	return Issues{{Kind: kind, Path: path, Code: code, Message: i18n.T(code, data), Params: params}}
}
