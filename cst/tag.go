package cst

import (
	"fmt"

	bablr "github.com/stirlhoss/bablr-vm"
)

// TagKind is the kind of a tag.
type TagKind int8

// Kinds of tags.
const (
	OpenTag TagKind = iota
	CloseTag
	TokenTag
)

func (k TagKind) String() string {
	switch k {
	case OpenTag:
		return "open"
	case CloseTag:
		return "close"
	case TokenTag:
		return "token"
	}
	return fmt.Sprintf("TagKind(%d)", int(k))
}

// Tag is an emitted unit of a parse. Tags are compared by identity: two tags
// with identical content are different tags.
type Tag struct {
	Kind  TagKind
	Type  string      // node type or token type
	Gap   string      // open tags: type of the enclosing gap
	Attrs bablr.Attrs // open tags: attributes of the match
	Text  string      // token tags: accumulated text
}

// NodeOpen creates an open-node tag.
func NodeOpen(typ string, gap string, attrs bablr.Attrs) *Tag {
	return &Tag{Kind: OpenTag, Type: typ, Gap: gap, Attrs: attrs}
}

// NodeClose creates a close-node tag.
func NodeClose(typ string) *Tag {
	return &Tag{Kind: CloseTag, Type: typ}
}

// Token creates a token tag.
func Token(typ string, text string) *Tag {
	return &Tag{Kind: TokenTag, Type: typ, Text: text}
}

// IsNode is a predicate: is t an open or close tag?
func (t *Tag) IsNode() bool {
	return t != nil && (t.Kind == OpenTag || t.Kind == CloseTag)
}

func (t *Tag) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case OpenTag:
		if len(t.Attrs) > 0 {
			return fmt.Sprintf("<%s %v>", t.Type, t.Attrs)
		}
		return fmt.Sprintf("<%s>", t.Type)
	case CloseTag:
		return fmt.Sprintf("</%s>", t.Type)
	}
	return fmt.Sprintf("%s%q", t.Type, t.Text)
}

// Range denotes a run of tags, from first to last tag (inclusive).
// The zero range is empty.
type Range [2]*Tag

// First returns the first tag of r.
func (r Range) First() *Tag {
	return r[0]
}

// Last returns the last tag of r.
func (r Range) Last() *Tag {
	return r[1]
}

// IsEmpty is a predicate: does r contain no tags?
func (r Range) IsEmpty() bool {
	return r[0] == nil || r[1] == nil
}
