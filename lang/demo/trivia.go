package demo

import (
	"github.com/stirlhoss/bablr-vm/cst"
	"github.com/stirlhoss/bablr-vm/grammar"
)

// SkipTrivia is a production transformer. The wrapped production eats any
// trivia in front of each token it matches, as long as the lexical context
// is "Bare". If both the token to match and the token preceding it are
// word-like, trivia is mandatory.
func SkipTrivia(typ string, p grammar.Production) grammar.Production {
	return func(props grammar.Props) grammar.Coroutine {
		return &trivia{inner: p(props), props: props}
	}
}

type trivia struct {
	inner    grammar.Coroutine
	props    grammar.Props
	pending  *grammar.Instruction // token match waiting for trivia to be eaten
	required bool
	eaten    bool
}

func (tr *trivia) Resume(r grammar.Result) grammar.Instruction {
	if tr.pending != nil {
		if r.OK && r.Span.Len() > 0 {
			tr.eaten = true
			return grammar.EatMatch(grammar.Tok(Trivia, nil))
		}
		if tr.required && !tr.eaten {
			tracer().Debugf("%s: missing separator before %v", tr.props.Type, tr.pending.Matchable)
			tr.pending = nil
			return grammar.Fail()
		}
		instr := *tr.pending
		tr.pending = nil
		return instr
	}
	instr := tr.inner.Resume(r)
	if !tr.wantsTrivia(instr) {
		return instr
	}
	tr.pending = &instr
	tr.required = tr.isWord(instr.Matchable.Type) && tr.isWord(tr.lastToken())
	tr.eaten = false
	return grammar.EatMatch(grammar.Tok(Trivia, nil))
}

func (tr *trivia) wantsTrivia(instr grammar.Instruction) bool {
	if instr.Kind != grammar.MatchInstr || instr.Matchable.Kind != grammar.TokenMatcher {
		return false
	}
	if instr.Effects.Success != grammar.EatInput {
		return false
	}
	if tr.props.State.LexicalContext() != "Bare" {
		return false
	}
	g := tr.props.Context.Grammar(grammar.TokenKind)
	return !g.IsSubtypeOf(Trivia, instr.Matchable.Type)
}

// lastToken returns the type of the last token emitted, or "".
func (tr *trivia) lastToken() string {
	t := tr.props.Context.LastTag()
	if t != nil && t.Kind != cst.TokenTag {
		t = tr.props.Context.PreviousToken(t)
	}
	if t == nil {
		return ""
	}
	return t.Type
}

func (tr *trivia) isWord(typ string) bool {
	g := tr.props.Context.Grammar(grammar.TokenKind)
	return typ != "" && g.IsSubtypeOf(Word, typ)
}
