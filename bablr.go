package bablr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// --- Attributes ------------------------------------------------------------

// Attrs are attributes of a match request or of an open-node tag.
// Some keys have a meaning for the engine:
//
//    path       attachment point of a nested node within its parent
//    startSpan  a token opens a lexical span with this name
//    endSpan    a token closes the current lexical span
//
// All other keys are passed through to productions and tags untouched.
type Attrs map[string]interface{}

// Well-known attribute keys.
const (
	AttrPath      = "path"
	AttrStartSpan = "startSpan"
	AttrEndSpan   = "endSpan"
)

// Get returns the value for key, or nil.
func (a Attrs) Get(key string) interface{} {
	if a == nil {
		return nil
	}
	return a[key]
}

// Text returns the value for key as a string. Missing keys and nil values
// result in "".
func (a Attrs) Text(key string) string {
	v := a.Get(key)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Has is a predicate: is key set to a non-empty value?
func (a Attrs) Has(key string) bool {
	return a.Text(key) != ""
}

// Copy returns a shallow copy of a. Copying nil results in an empty map.
func (a Attrs) Copy() Attrs {
	c := make(Attrs, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// Keys returns the attribute keys, sorted.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (a Attrs) String() string {
	return a.Format()
}

// Format prints attributes as {k=v, …} in key order.
func (a Attrs) Format() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range a.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, a[k])
	}
	b.WriteString("}")
	return b.String()
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input items. For every match
// the engine tracks which input positions it covers. A span denotes a start
// position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s.To() - s.From()
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s.From(), s.To())
}

// --- Grammar misuse --------------------------------------------------------

// Errors for misuse of a grammar. They are fatal for a parse: the engine will
// never treat them as a failed alternative, but will hand them out to the caller.
// Use errors.Is to check for a specific kind.
var (
	ErrNodeInToken        = errors.New("cannot match a node from inside a token")
	ErrTokenOpen          = errors.New("a token is already started")
	ErrSpanOnNonToken     = errors.New("only tokens can start or end spans")
	ErrMissingPath        = errors.New("nested node match is missing a path attribute")
	ErrLineBreak          = errors.New("invalid line break in token")
	ErrUnknownMatchable   = errors.New("unknown matchable")
	ErrTagMismatch        = errors.New("tag does not match grammar type")
	ErrUnknownType        = errors.New("no production for type")
	ErrInvalidInstruction = errors.New("invalid instruction")
)

// Misuse wraps a grammar-misuse error with the type of the offending match.
func Misuse(err error, typ string) error {
	if typ == "" {
		return err
	}
	return fmt.Errorf("%s: %w", typ, err)
}
