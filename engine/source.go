package engine

import (
	"fmt"

	"github.com/stirlhoss/bablr-vm/stream"
)

// Source integrates a fork of the input into the branch stack of a parse.
// Every branch owns exactly one Source.
type Source struct {
	ctx      *Context
	fork     *stream.Fork
	exchange *stream.Exchange
	index    uint64 // number of items consumed
	handle   handle
}

// SourceFrom creates the root source for an input. It creates an exchange for
// the input, primes one item of lookahead and installs the source as the base
// branch of ctx.
func SourceFrom(ctx *Context, input stream.Iterator) *Source {
	x := stream.NewExchange(input)
	src := &Source{ctx: ctx, fork: x.AllocateFork(nil), exchange: x}
	src.fork.Advance() // a fresh fork cannot fail to advance
	src.handle = ctx.branches.alloc(noBranch, src, newState(src))
	ctx.root = src.handle
	return src
}

// Value returns the current input item, i.e. the next one to be consumed.
func (src *Source) Value() interface{} {
	return src.fork.Value()
}

// Done is a predicate: is the input exhausted?
func (src *Source) Done() bool {
	return src.fork.Done()
}

// Index returns the number of items consumed.
func (src *Source) Index() uint64 {
	return src.index
}

// Exchange returns the exchange the source's fork reads from.
func (src *Source) Exchange() *stream.Exchange {
	return src.exchange
}

// Advance consumes n items.
func (src *Source) Advance(n int) error {
	for i := 0; i < n; i++ {
		if _, err := src.fork.Advance(); err != nil {
			return fmt.Errorf("source @%d: %w", src.index, err)
		}
		src.index++
	}
	return nil
}

// Branch creates a child source at the current position and pushes it as a
// new branch. The child's state is a copy of this source's state.
func (src *Source) Branch() *Source {
	child := &Source{
		ctx:      src.ctx,
		fork:     src.fork.Clone(),
		exchange: src.exchange,
		index:    src.index,
	}
	var st *State
	if b := src.ctx.branches.get(src.handle); b != nil {
		st = b.state.branch(child)
	} else {
		st = newState(child)
	}
	child.handle = src.ctx.branches.alloc(src.handle, child, st)
	tracer().Debugf("%v: branch at @%d", child.handle, src.index)
	return child
}

// Accept makes src adopt the position of child. The old fork of src is
// released, the child's branch is destroyed.
func (src *Source) Accept(child *Source) {
	tracer().Debugf("%v: accept @%d into %v", child.handle, child.index, src.handle)
	src.fork.Release()
	src.fork = child.fork
	src.index = child.index
	if pb, cb := src.ctx.branches.get(src.handle), src.ctx.branches.get(child.handle); pb != nil && cb != nil {
		pb.state.adopt(cb.state)
	}
	child.fork = nil
	src.ctx.branches.destroy(child.handle)
}

// Reject gives up src. Its fork is released, its branch is destroyed.
// The parent's position is not affected.
func (src *Source) Reject() {
	tracer().Debugf("%v: reject @%d", src.handle, src.index)
	src.release()
	src.ctx.branches.destroy(src.handle)
}

func (src *Source) release() {
	if src.fork != nil {
		src.fork.Release()
	}
}

func (src *Source) String() string {
	return fmt.Sprintf("source[%d]", src.index)
}
