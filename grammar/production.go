package grammar

import (
	bablr "github.com/stirlhoss/bablr-vm"
	"github.com/stirlhoss/bablr-vm/cst"
)

// Context is the view of a running parse which productions get to see.
type Context interface {
	// Grammar returns the grammar of a kind, or nil.
	Grammar(k Kind) *Grammar
	// PreviousTag returns the tag emitted immediately before t.
	PreviousTag(t *cst.Tag) *cst.Tag
	// PreviousToken returns the token tag preceding t, skipping node tags.
	PreviousToken(t *cst.Tag) *cst.Tag
	// LastTag returns the most recently emitted tag.
	LastTag() *cst.Tag
}

// State is the state of the branch a production runs in.
type State interface {
	// LexicalContext returns the name of the innermost open span, or "Bare".
	LexicalContext() string
	// Position returns the number of input items consumed so far.
	Position() uint64
}

// Props are handed to a production when it is activated.
type Props struct {
	Type    string      // type the production has been activated for
	Attrs   bablr.Attrs // attributes of the match
	Context Context
	State   State
}

// Coroutine is one activation of a production. The engine calls Resume with
// the result of the previously yielded instruction (the zero Result for the
// first call). Returning a DoneInstr or FailInstr ends the activation.
type Coroutine interface {
	Resume(r Result) Instruction
}

// CoroutineFunc adapts a function to the Coroutine interface.
type CoroutineFunc func(r Result) Instruction

// Resume calls f(r).
func (f CoroutineFunc) Resume(r Result) Instruction {
	return f(r)
}

// Production creates coroutines recognizing one grammar type.
type Production func(p Props) Coroutine

// Transformer wraps the production for type typ. Transformers are applied
// to all productions of a grammar, once, when the grammar is built.
type Transformer func(typ string, p Production) Production

// --- Coroutine helpers -----------------------------------------------------

// Sequence yields instrs one after the other and then finishes with the value
// of the last result.
func Sequence(instrs ...Instruction) Coroutine {
	i := 0
	return CoroutineFunc(func(r Result) Instruction {
		if i >= len(instrs) {
			return Done(r.Value)
		}
		instr := instrs[i]
		i++
		return instr
	})
}

// Repeat eats m at least min times, and then as often as it matches. The
// repetition stops on a match consuming no input. An empty match before min
// matches have been eaten fails the branch.
func Repeat(m Matchable, min int) Coroutine {
	n := 0
	started := false
	return CoroutineFunc(func(r Result) Instruction {
		if started {
			if !r.OK || r.Span.Len() == 0 {
				if n < min {
					return Fail()
				}
				return Done(n)
			}
			n++
		}
		started = true
		if n < min {
			return Eat(m)
		}
		return EatMatch(m)
	})
}

// Either tries alternatives in order and eats the first one matching.
// If no alternative matches, the branch fails.
func Either(alternatives ...Matchable) Coroutine {
	i := 0
	return CoroutineFunc(func(r Result) Instruction {
		if i > 0 && r.OK {
			return Done(r.Value)
		}
		if i >= len(alternatives) {
			return Fail()
		}
		m := alternatives[i]
		i++
		return EatMatch(m)
	})
}

// aliasProduction is the default production for an alias: it forwards the
// match attributes to the first member type which matches.
func aliasProduction(kind Kind, members []string) Production {
	return func(p Props) Coroutine {
		alternatives := make([]Matchable, len(members))
		for i, typ := range members {
			if kind == TokenKind {
				alternatives[i] = Tok(typ, p.Attrs)
			} else {
				alternatives[i] = Node(typ, p.Attrs)
			}
		}
		return Either(alternatives...)
	}
}
