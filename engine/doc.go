/*
Package engine drives grammar productions over a forkable input and links the
tags they produce into a CST.

The engine is a trampoline. Productions are coroutines (see package grammar),
yielding one instruction at a time. The engine keeps an explicit stack of
match frames, one per active production. Matching a nested node or token
pushes a new frame and suspends the current one until the nested frame has
finished. Matching a string or a pattern is a leaf operation, performed
directly on the input.

Backtracking

Some matches are speculative: their outcome is not known in advance, and a
failure must not affect the enclosing production. For such a match the engine
opens a branch. A branch owns a Source (a fork of the input) and a State.
If the match succeeds, the branch is accepted and the parent branch adopts the
branch's input position. If it fails, the branch is rejected: its fork is
released and every tag it emitted is unlinked. Open tags of speculative node
matches are deferred until the match has succeeded. Which matches are
speculative is decided by a BranchPolicy.

Errors

Grammar misuse (matching a node from inside a token, missing path attributes,
malformed line breaks, …) is fatal: Parse returns the error and the parse
stops. Rejection of a branch is not an error; it is the only recoverable kind
of failure. A root match which fails is reported by a Result which is not OK.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The bablr-vm authors

*/
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bablr.engine'.
func tracer() tracing.Trace {
	return tracing.Select("bablr.engine")
}
