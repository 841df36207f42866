/*
Package grammar defines languages, grammars and the contract between
productions and the parsing engine.

Building a Grammar

Grammars are specified using a grammar builder object. A language consists of
a node grammar and a token grammar. Clients define a production for every
type, and aliases which stand for one of several types without ever emitting
a tag themselves.

Example:

    b := grammar.NewBuilder(grammar.NodeKind, "Node")
    b.Define("Document", document)          // Document is a genuine node type
    b.Define("Pair", pair)
    b.Define("Atom", atom)
    b.Alias("Entry", "Pair", "Atom")        // Entry is either a Pair or an Atom
    b.Use(trivia)                           // wrap every production
    g, err := b.Grammar()

The subtype relation of a grammar is computed once, when the grammar is built.

Productions

A production recognizes one grammar type. Productions are step functions:
the engine activates a production, receiving a Coroutine, and resumes the
coroutine with the result of every instruction it yields. Instructions ask
the engine to match a nested node or token, or a primitive string or
pattern; to fail; or to finish with a value.

    func pair(p grammar.Props) grammar.Coroutine {
        return grammar.Sequence(
            grammar.Eat(grammar.Tok("Identifier", nil)),
            grammar.Eat(grammar.Tok("Punctuator", bablr.Attrs{"value": "="})),
            grammar.Eat(grammar.Node("Atom", bablr.Attrs{"path": "value"})),
        )
    }

Productions never see input or tags directly. They see a Context, which
allows inspection of already emitted structure, and the state of their branch.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The bablr-vm authors

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bablr.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("bablr.grammar")
}
