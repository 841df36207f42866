/*
Package demo is a small sample language for the parsing engine: lines of
key/value pairs and bare values.

    name = "demo"
    sizes = 1 2 3   # a comment
    standalone

Whitespace and comments are trivia. They are not mentioned by the node
productions, but are inserted in front of tokens by a production
transformer (see SkipTrivia). Adjacent word-like tokens (identifiers and
numbers) have to be separated by trivia.

The language accepts input as plain runes as well as pre-tokenized units
produced by a lexmachine scanner (see Lexer).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The bablr-vm authors

*/
package demo

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bablr.lang'.
func tracer() tracing.Trace {
	return tracing.Select("bablr.lang")
}
