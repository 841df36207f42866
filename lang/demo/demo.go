package demo

import (
	bablr "github.com/stirlhoss/bablr-vm"
	"github.com/stirlhoss/bablr-vm/engine"
	"github.com/stirlhoss/bablr-vm/grammar"
	"github.com/stirlhoss/bablr-vm/stream"
)

// Node types.
const (
	Document = "Document"
	Entry    = "Entry" // alias for Pair or Atom
	Pair     = "Pair"
	Atom     = "Atom"
	String   = "String"
)

// Token types.
const (
	Identifier = "Identifier"
	Number     = "Number"
	Punctuator = "Punctuator"
	Quoted     = "Quoted" // a string lexed as a single unit
	Literal    = "Literal"
	Whitespace = "Whitespace"
	Comment    = "Comment"
	LineBreak  = "LineBreak"
	Word       = "Word"   // alias for Identifier or Number
	Trivia     = "Trivia" // alias for Whitespace or Comment
)

// StringSpan is the lexical context inside of string literals.
const StringSpan = "String"

// Language creates the demo language.
func Language() (*grammar.Language, error) {
	nodes, err := grammar.NewBuilder(grammar.NodeKind, "Node").
		Define(Document, document).
		Define(Pair, pair).
		Define(Atom, atom).
		Define(String, str).
		Alias(Entry, Pair, Atom).
		Use(SkipTrivia).
		Grammar()
	if err != nil {
		return nil, err
	}
	tokens, err := grammar.NewBuilder(grammar.TokenKind, "Token").
		Define(Identifier, pattern(`[A-Za-z_][A-Za-z0-9_]*`)).
		Define(Number, pattern(`-?[0-9]+(?:\.[0-9]+)?`)).
		Define(Punctuator, punctuator).
		Define(Quoted, pattern(`"[^"\n]*"`)).
		Define(Literal, pattern(`[^"\n]+`)).
		Define(Whitespace, pattern(`[ \t]+`)).
		Define(Comment, pattern(`#[^\n]*`)).
		Define(LineBreak, pattern(`\r?\n`)).
		Alias(Word, Identifier, Number).
		Alias(Trivia, Whitespace, Comment).
		Grammar()
	if err != nil {
		return nil, err
	}
	return grammar.NewLanguage("demo", nodes, tokens)
}

// Parse parses a document given as a string.
func Parse(input string, opts ...engine.Option) (*engine.Result, error) {
	return ParseInput(stream.Runes(input), opts...)
}

// ParseInput parses a document from an input iterator, which may deliver
// either runes or units.
func ParseInput(input stream.Iterator, opts ...engine.Option) (*engine.Result, error) {
	lang, err := Language()
	if err != nil {
		return nil, err
	}
	return engine.Parse(lang, input, Document, opts...)
}

func at(segment string) bablr.Attrs {
	return bablr.Attrs{bablr.AttrPath: segment}
}

func punct(value string, attrs ...string) grammar.Matchable {
	a := bablr.Attrs{"value": value}
	for i := 0; i+1 < len(attrs); i += 2 {
		a[attrs[i]] = attrs[i+1]
	}
	return grammar.Tok(Punctuator, a)
}

// --- Node productions ------------------------------------------------------

// document eats entries separated by line breaks. Empty lines are allowed.
// It returns the number of entries.
func document(p grammar.Props) grammar.Coroutine {
	entries := 0
	started, afterEntry := false, false
	return grammar.CoroutineFunc(func(r grammar.Result) grammar.Instruction {
		if afterEntry {
			afterEntry = false
			if r.OK && r.Span.Len() > 0 {
				entries++
			}
			return grammar.EatMatch(grammar.Tok(LineBreak, nil))
		}
		if !started || r.OK {
			started, afterEntry = true, true
			return grammar.EatMatch(grammar.Node(Entry, at("entries")))
		}
		return grammar.Done(entries)
	})
}

// pair is an identifier followed by '=' and one or more atoms.
func pair(p grammar.Props) grammar.Coroutine {
	step, values := 0, 0
	return grammar.CoroutineFunc(func(r grammar.Result) grammar.Instruction {
		step++
		switch step {
		case 1:
			return grammar.Eat(grammar.Tok(Identifier, nil))
		case 2:
			return grammar.Eat(punct("="))
		case 3:
			return grammar.Eat(grammar.Node(Atom, at("values")))
		}
		if !r.OK {
			return grammar.Done(values)
		}
		values++
		return grammar.EatMatch(grammar.Node(Atom, at("values")))
	})
}

func atom(p grammar.Props) grammar.Coroutine {
	return grammar.Either(
		grammar.Tok(Number, nil),
		grammar.Tok(Identifier, nil),
		grammar.Node(String, at("value")),
		grammar.Tok(Quoted, nil),
	)
}

// str is a string literal. Its quotes delimit a lexical span, inside of which
// no trivia is allowed.
func str(p grammar.Props) grammar.Coroutine {
	return grammar.Sequence(
		grammar.Eat(punct(`"`, bablr.AttrStartSpan, StringSpan)),
		grammar.EatMatch(grammar.Tok(Literal, nil)),
		grammar.Eat(punct(`"`, bablr.AttrEndSpan, StringSpan)),
	)
}

// --- Token productions -----------------------------------------------------

func pattern(re string) grammar.Production {
	m := grammar.Re(re)
	return func(p grammar.Props) grammar.Coroutine {
		return grammar.Sequence(grammar.Eat(m))
	}
}

func punctuator(p grammar.Props) grammar.Coroutine {
	return grammar.Sequence(grammar.Eat(grammar.Str(p.Attrs.Text("value"))))
}
