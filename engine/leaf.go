package engine

import (
	"io"
	"unicode/utf8"

	bablr "github.com/stirlhoss/bablr-vm"
	"github.com/stirlhoss/bablr-vm/grammar"
	"github.com/stirlhoss/bablr-vm/stream"
)

// leaf performs a string or regex match for frame f. Matching never moves the
// branch's fork; it reads from clones. Eaten text is appended to the open token.
func (ctx *Context) leaf(f *frame, instr grammar.Instruction) (grammar.Result, error) {
	src, st := ctx.source(f.branch), ctx.state(f.branch)
	text, n, ok := matchLeaf(src, instr.Matchable)
	tracer().Debugf("leaf %v @%d: %v %q", instr.Matchable, src.index, ok, text)
	if !ok {
		if instr.Effects.Failure == grammar.FailBranch {
			st.reject()
		}
		return grammar.Result{}, nil
	}
	start := src.index
	if instr.Effects.Success == grammar.EatInput {
		if err := src.Advance(n); err != nil {
			return grammar.Result{}, err
		}
		if st.tokenOpen {
			st.token.WriteString(text)
		} else if f.kind == grammar.TokenKind && text != "" {
			return grammar.Result{}, bablr.Misuse(bablr.ErrTagMismatch, f.typ+" eats text outside of a token")
		} else if text != "" {
			tracer().Debugf("%v: text %q outside of a token is not recorded", f, text)
		}
	}
	return grammar.Result{
		OK:   true,
		Text: text,
		Span: bablr.Span{start, start + uint64(n)},
	}, nil
}

// matchLeaf matches m at the position of src. It returns the matched text and
// the number of input items it covers.
func matchLeaf(src *Source, m grammar.Matchable) (string, int, bool) {
	if src.fork == nil {
		return "", 0, false
	}
	if unit, ok := src.Value().(stream.Unit); ok {
		return matchUnit(unit, m)
	}
	switch m.Kind {
	case grammar.StringMatcher:
		return matchString(src.fork, m.Pattern)
	case grammar.RegexMatcher:
		return matchRegex(src.fork, m)
	}
	return "", 0, false
}

// Pre-tokenized input is matched one unit at a time, against the unit's text.
func matchUnit(unit stream.Unit, m grammar.Matchable) (string, int, bool) {
	text := unit.Text()
	switch m.Kind {
	case grammar.StringMatcher:
		if text == m.Pattern {
			return text, 1, true
		}
	case grammar.RegexMatcher:
		if loc := m.Regexp.FindStringIndex(text); loc != nil && loc[1] == len(text) {
			return text, 1, true
		}
	}
	return "", 0, false
}

func matchString(fork *stream.Fork, pattern string) (string, int, bool) {
	f := fork.Clone()
	defer f.Release()
	n := 0
	for _, r := range pattern {
		if c, ok := f.Value().(rune); !ok || c != r {
			return "", 0, false
		}
		if _, err := f.Advance(); err != nil {
			return "", 0, false
		}
		n++
	}
	return pattern, n, true
}

func matchRegex(fork *stream.Fork, m grammar.Matchable) (string, int, bool) {
	f := fork.Clone()
	defer f.Release()
	rr := &recordingReader{reader: stream.RuneReader(f)}
	loc := m.Regexp.FindReaderIndex(rr)
	if loc == nil || loc[0] != 0 {
		return "", 0, false
	}
	n, size := 0, 0
	for n < len(rr.runes) && size < loc[1] {
		size += utf8.RuneLen(rr.runes[n])
		n++
	}
	return string(rr.runes[:n]), n, true
}

// recordingReader remembers the runes a regular expression has read.
type recordingReader struct {
	reader io.RuneReader
	runes  []rune
}

func (rr *recordingReader) ReadRune() (rune, int, error) {
	r, sz, err := rr.reader.ReadRune()
	if err == nil {
		rr.runes = append(rr.runes, r)
	}
	return r, sz, err
}
