/*
Package stream implements a lazy input which may be read by many forks at once.

A backtracking parser has to read ahead speculatively, and has to be able to
return to an earlier position if an attempt fails. Input sources, however, are
often pull-based and may not be re-read: they are streams, possibly infinite,
possibly with side effects. Package stream puts an Exchange between the
source and its readers. The exchange pulls every item exactly once and appends
it to a shared queue. Readers are forks: cheap cursors into the queue, which
may be cloned at any position.

    x := stream.NewExchange(stream.Runes("abc"))
    f := x.AllocateFork(nil)   // fresh fork, positioned before the first item
    f.Advance()                // f.Value() = 'a'
    g := f.Clone()             // g starts at 'a' as well
    g.Advance()                // g.Value() = 'b', f.Value() still 'a'
    f.Release()
    g.Release()                // last fork gone ⇒ source is released

An exchange counts its live forks. When the last fork is released, the
underlying iterator is released (if it implements Releaser), exactly once.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2026 The bablr-vm authors

*/
package stream

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bablr.stream'.
func tracer() tracing.Trace {
	return tracing.Select("bablr.stream")
}
