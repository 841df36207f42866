/*
Package bablr is a backtracking parsing engine producing concrete syntax trees.

A language is described by grammars for nodes and for tokens. Every grammar type
has a production, which is driven by the engine as a step function. Productions
ask the engine to match nested nodes, tokens or primitive strings and patterns;
the engine answers by pulling input, forking it for speculative attempts and
emitting tags. Open-node, close-node and token tags are linked into a flat,
ordered sequence which forms the CST.

Package structure is as follows:

■ stream: Package stream implements a lazy, forkable input. Arbitrarily many
forks read from one shared queue of pulled items.

■ cst: Package cst implements tags and the links which stitch them into a tree.

■ grammar: Package grammar defines languages, grammars, productions and the
instructions productions yield.

■ engine: Package engine implements the trampoline interpreting productions,
together with branch management for backtracking.

■ lang/demo: Package demo is a small sample language, used by the cstrepl
command.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The bablr-vm authors

*/
package bablr
