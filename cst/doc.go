/*
Package cst implements tags and the links which stitch them into a concrete
syntax tree.

A parse results in a flat sequence of tags: open-node, close-node and token.
Tags are not kept in a tree data structure. Instead, Links records for every
tag its predecessor and its successor, and for every close tag the matching
open tag. The tree is implicit:

    open(Root) open(Pair) token(Ident,"a") token(Punct,"=") … close(Pair) close(Root)

Traversals walk the chain backwards, from the end of a range to its start.
OwnTagsFor jumps over nested subtrees using the close→open pairing, AllTagsFor
visits every tag.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The bablr-vm authors

*/
package cst

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bablr.cst'.
func tracer() tracing.Trace {
	return tracing.Select("bablr.cst")
}
