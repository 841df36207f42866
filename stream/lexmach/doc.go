/*
Package lexmach adapts lexmachine scanners as input for the parsing engine.

The engine reads from a stream.Iterator. Usually the items of the stream are
runes, but grammars may as well run on pre-tokenized input. This package
wraps a lexmachine DFA so that every token becomes a stream.Unit, carrying
the token's type name and its lexeme.

    adapter, err := lexmach.NewLMAdapter(init, literals, keywords, tokenIds)
    iter, err := adapter.Scanner("x = 1")   // iter is a stream.Iterator

Leaf matches of the engine compare against the lexeme of a unit as a whole.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The bablr-vm authors

*/
package lexmach
