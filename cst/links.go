package cst

import (
	"fmt"

	"github.com/cnf/structhash"
	bablr "github.com/stirlhoss/bablr-vm"
)

// Links stitches emitted tags into order. It records predecessor and successor
// of every tag, and the open tag for every close tag.
//
// Tags are appended in the order their matches resolve. Speculative
// matches may be rolled back with TruncateTo, and an open tag whose emission
// has been deferred may be inserted after the fact with InsertAfter.
type Links struct {
	prevTags map[*Tag]*Tag
	nextTags map[*Tag]*Tag
	tagPairs map[*Tag]*Tag // close tag → open tag
	first    *Tag
	last     *Tag
	count    int
}

// NewLinks creates an empty tag chain.
func NewLinks() *Links {
	return &Links{
		prevTags: make(map[*Tag]*Tag),
		nextTags: make(map[*Tag]*Tag),
		tagPairs: make(map[*Tag]*Tag),
	}
}

// First returns the first tag of the chain.
func (l *Links) First() *Tag {
	return l.first
}

// Last returns the last tag of the chain.
func (l *Links) Last() *Tag {
	return l.last
}

// Len returns the number of linked tags.
func (l *Links) Len() int {
	return l.count
}

// Prev returns the predecessor of tag t, or nil.
func (l *Links) Prev(t *Tag) *Tag {
	return l.prevTags[t]
}

// Next returns the successor of tag t, or nil.
func (l *Links) Next(t *Tag) *Tag {
	return l.nextTags[t]
}

// OpenFor returns the open tag paired with close tag t, or nil.
func (l *Links) OpenFor(t *Tag) *Tag {
	return l.tagPairs[t]
}

// Contains is a predicate: is t linked into the chain?
func (l *Links) Contains(t *Tag) bool {
	if t == nil {
		return false
	}
	_, ok := l.prevTags[t]
	return ok
}

// Append links tag t at the end of the chain.
func (l *Links) Append(t *Tag) {
	l.InsertAfter(l.last, t)
}

// InsertAfter links tag t as the successor of mark. If mark is nil, t is
// inserted at the beginning of the chain.
func (l *Links) InsertAfter(mark *Tag, t *Tag) {
	var succ *Tag
	if mark == nil {
		succ = l.first
		l.first = t
	} else {
		succ = l.nextTags[mark]
		l.nextTags[mark] = t
	}
	l.prevTags[t] = mark
	if succ == nil {
		l.last = t
	} else {
		l.nextTags[t] = succ
		l.prevTags[succ] = t
	}
	l.count++
	tracer().Debugf("link %v after %v", t, mark)
}

// Pair records open tag o as the counterpart of close tag c. Both tags have
// to be of matching type, otherwise an error is returned.
func (l *Links) Pair(c *Tag, o *Tag) error {
	if c == nil || o == nil || c.Kind != CloseTag || o.Kind != OpenTag || c.Type != o.Type {
		return fmt.Errorf("cannot pair %v with %v: %w", c, o, bablr.ErrTagMismatch)
	}
	l.tagPairs[c] = o
	return nil
}

// TruncateTo unlinks every tag following mark. If mark is nil, the chain will
// be empty afterwards.
func (l *Links) TruncateTo(mark *Tag) {
	for t := l.last; t != nil && t != mark; {
		p := l.prevTags[t]
		delete(l.prevTags, t)
		delete(l.nextTags, t)
		delete(l.tagPairs, t)
		l.count--
		tracer().Debugf("unlink %v", t)
		t = p
	}
	l.last = mark
	if mark == nil {
		l.first = nil
	} else {
		delete(l.nextTags, mark)
	}
}

// Tags returns the tags of the chain in document order.
func (l *Links) Tags() []*Tag {
	tags := make([]*Tag, 0, l.count)
	for t := l.first; t != nil; t = l.nextTags[t] {
		tags = append(tags, t)
	}
	return tags
}

// Walk calls f for every tag in document order, together with the tag's
// nesting depth. Open and close tags of a node share a depth; the children of
// a node are one level deeper.
func (l *Links) Walk(f func(t *Tag, depth int)) {
	depth := 0
	for t := l.first; t != nil; t = l.nextTags[t] {
		if t.Kind == CloseTag {
			depth--
		}
		f(t, depth)
		if t.Kind == OpenTag {
			depth++
		}
	}
}

// --- Traversals ------------------------------------------------------------

// TagIterator iterates over a range of tags, in reverse document order.
//
//     it := links.AllTagsFor(r)
//     for it.Next() {
//         t := it.Tag()
//     }
type TagIterator struct {
	links   *Links
	next    *Tag // next tag to visit
	stop    *Tag // predecessor of the range start
	current *Tag
	own     bool
}

// Next moves the iterator to the next tag. It returns false if the range is
// exhausted.
func (it *TagIterator) Next() bool {
	if it.next == nil || it.next == it.stop {
		it.current = nil
		return false
	}
	it.current = it.next
	if it.own && it.current.Kind == CloseTag {
		if open := it.links.tagPairs[it.current]; open != nil {
			it.current = open // skip the subtree, visit its open tag
		}
	}
	it.next = it.links.prevTags[it.current]
	return true
}

// Tag returns the current tag.
func (it *TagIterator) Tag() *Tag {
	return it.current
}

// AllTagsFor returns an iterator over every tag in range r, nested subtrees
// included.
func (l *Links) AllTagsFor(r Range) *TagIterator {
	return l.iterator(r, false)
}

// OwnTagsFor returns an iterator over the tags of r at the nesting level of
// r's boundaries. A nested subtree is visited only once, by its open tag; the
// iterator jumps from the subtree's close tag directly to the open tag.
func (l *Links) OwnTagsFor(r Range) *TagIterator {
	return l.iterator(r, true)
}

func (l *Links) iterator(r Range, own bool) *TagIterator {
	it := &TagIterator{links: l, own: own}
	if r.IsEmpty() || !l.Contains(r[0]) || !l.Contains(r[1]) {
		return it
	}
	it.next = r[1]
	it.stop = l.prevTags[r[0]]
	return it
}

// --- Digest ----------------------------------------------------------------

type tagRecord struct {
	Kind  int
	Type  string
	Gap   string
	Attrs string
	Text  string
}

type tagSequence struct {
	Tags []tagRecord
}

// Digest returns a fingerprint of the tag sequence. Chains with equal tags in
// equal order have equal digests, independent of tag identity.
func (l *Links) Digest() (string, error) {
	seq := tagSequence{Tags: make([]tagRecord, 0, l.count)}
	for t := l.first; t != nil; t = l.nextTags[t] {
		rec := tagRecord{Kind: int(t.Kind), Type: t.Type, Gap: t.Gap, Text: t.Text}
		if len(t.Attrs) > 0 {
			rec.Attrs = t.Attrs.Format()
		}
		seq.Tags = append(seq.Tags, rec)
	}
	return structhash.Hash(seq, 1)
}
