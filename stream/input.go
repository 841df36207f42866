package stream

import (
	"io"
	"unicode/utf8"
)

// --- Input adapters --------------------------------------------------------

// Unit is a pre-tokenized input item, as produced by an external scanner.
// Leaf matches compare against a unit's text as a whole.
type Unit interface {
	UnitType() string
	Text() string
}

// TextUnit is a simple Unit.
type TextUnit struct {
	Type   string
	Lexeme string
}

var _ Unit = TextUnit{}

func (u TextUnit) UnitType() string { return u.Type }
func (u TextUnit) Text() string     { return u.Lexeme }

func (u TextUnit) String() string {
	return u.Type + "(" + u.Lexeme + ")"
}

// Runes returns an iterator over the runes of a string.
func Runes(s string) Iterator {
	return &runeIterator{s: s}
}

type runeIterator struct {
	s   string
	pos int
}

func (it *runeIterator) Next() Step {
	if it.pos >= len(it.s) {
		return EOF
	}
	r, sz := utf8.DecodeRuneInString(it.s[it.pos:])
	it.pos += sz
	return Step{Value: r}
}

// Reader returns an iterator over the runes of a rune reader. Read errors
// other than io.EOF are reported to onError (if non-nil) and end the input.
// If the reader is an io.Closer, it is closed on release.
func Reader(r io.RuneReader, onError func(error)) Iterator {
	return &readerIterator{r: r, onError: onError}
}

type readerIterator struct {
	r       io.RuneReader
	onError func(error)
	eof     bool
}

func (it *readerIterator) Next() Step {
	if it.eof {
		return EOF
	}
	r, _, err := it.r.ReadRune()
	if err != nil {
		it.eof = true
		if err != io.EOF {
			tracer().Errorf("input error: %v", err)
			if it.onError != nil {
				it.onError(err)
			}
		}
		return EOF
	}
	return Step{Value: r}
}

func (it *readerIterator) Release() {
	if c, ok := it.r.(io.Closer); ok {
		if err := c.Close(); err != nil {
			tracer().Errorf("closing input: %v", err)
		}
	}
}

// Slice returns an iterator over a slice of items.
func Slice(items []interface{}) Iterator {
	return &sliceIterator{items: items}
}

type sliceIterator struct {
	items []interface{}
	pos   int
}

func (it *sliceIterator) Next() Step {
	if it.pos >= len(it.items) {
		return EOF
	}
	v := it.items[it.pos]
	it.pos++
	return Step{Value: v}
}

// Func returns an iterator calling next for every item. next returns false
// at end of input. release may be nil.
func Func(next func() (interface{}, bool), release func()) Iterator {
	return &funcIterator{next: next, release: release}
}

type funcIterator struct {
	next    func() (interface{}, bool)
	release func()
	done    bool
}

func (it *funcIterator) Next() Step {
	if it.done {
		return EOF
	}
	v, ok := it.next()
	if !ok {
		it.done = true
		return EOF
	}
	return Step{Value: v}
}

func (it *funcIterator) Release() {
	if it.release != nil {
		it.release()
	}
}

// --- Reading runes from forks ----------------------------------------------

// RuneReader returns an io.RuneReader reading runes from a fork, starting
// with the fork's current item. Items which are not runes end the input.
// The reader advances f; clients will usually pass a clone.
func RuneReader(f *Fork) io.RuneReader {
	return &forkRuneReader{fork: f}
}

type forkRuneReader struct {
	fork *Fork
}

func (rr *forkRuneReader) ReadRune() (rune, int, error) {
	if rr.fork.Position() < 0 {
		if _, err := rr.fork.Advance(); err != nil {
			return utf8.RuneError, 0, io.EOF
		}
	}
	if rr.fork.Done() {
		return utf8.RuneError, 0, io.EOF
	}
	r, ok := rr.fork.Value().(rune)
	if !ok {
		return utf8.RuneError, 0, io.EOF
	}
	if _, err := rr.fork.Advance(); err != nil {
		return utf8.RuneError, 0, io.EOF
	}
	sz := utf8.RuneLen(r)
	if sz < 0 {
		r, sz = utf8.RuneError, utf8.RuneLen(utf8.RuneError)
	}
	return r, sz, nil
}
