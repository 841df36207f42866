/*
Command cstrepl is an interactive command line tool for the demo language.
Every line entered is parsed as a document, and its concrete syntax tree is
printed as a tree. cstrepl serves as a sandbox for experiments with grammars
and the parsing engine.

    cstrepl [--trace Debug] [--lex] [--digest] [input …]
    cstrepl --file sample.txt

Input given as arguments or by file is parsed once, after which cstrepl
enters interactive mode. With --lex, input is pre-tokenized by a lexmachine
scanner instead of being read as runes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The bablr-vm authors

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bablr.repl'
func tracer() tracing.Trace {
	return tracing.Select("bablr.repl")
}
