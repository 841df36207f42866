package stream

import (
	"errors"

	"github.com/emirpasic/gods/lists/arraylist"
)

// Step is one item pulled from an input iterator. The final step of an input
// has Done set and carries no value.
type Step struct {
	Value interface{}
	Done  bool
}

// EOF is the step signalling end of input.
var EOF = Step{Done: true}

// Iterator is a synchronous pull-based input. Next must return immediately.
// After Next has returned a step with Done set, it will not be called again.
type Iterator interface {
	Next() Step
}

// Releaser is implemented by iterators holding resources. Release is called
// once all readers of an iterator are gone.
type Releaser interface {
	Release()
}

// ErrForkDone is returned when advancing a fork which is done.
var ErrForkDone = errors.New("cannot advance a fork that is done")

// --- Exchange --------------------------------------------------------------

// Exchange is the shared record of input pulled from an iterator. All forks
// of an exchange read from the same queue; an item is pulled from the
// iterator only when a fork would otherwise run past the end of the queue.
type Exchange struct {
	iterator Iterator
	queue    *arraylist.List // of Step, append-only
	forks    int             // live fork count
	fetched  int             // number of pulls from iterator
	released bool            // iterator has been released
}

// NewExchange creates an exchange for an iterator.
func NewExchange(iterator Iterator) *Exchange {
	return &Exchange{
		iterator: iterator,
		queue:    arraylist.New(),
	}
}

// AllocateFork creates a new fork. If base is nil, the fork is positioned in
// front of the first item; it has to be advanced once to read it. Otherwise
// the new fork starts at base's position.
func (x *Exchange) AllocateFork(base *Fork) *Fork {
	f := &Fork{exchange: x, cursor: -1}
	if base != nil {
		f.cursor = base.cursor
	}
	x.forks++
	tracer().Debugf("allocate fork @%d, %d live forks", f.cursor, x.forks)
	return f
}

// Forks returns the number of live forks.
func (x *Exchange) Forks() int {
	return x.forks
}

// Fetched returns the number of steps pulled from the iterator so far.
func (x *Exchange) Fetched() int {
	return x.fetched
}

// Released is a predicate: has the underlying iterator been released?
func (x *Exchange) Released() bool {
	return x.released
}

// fetch pulls exactly one step from the iterator and appends it to the queue.
func (x *Exchange) fetch() Step {
	step := x.iterator.Next()
	x.fetched++
	x.queue.Add(step)
	return step
}

func (x *Exchange) step(at int) (Step, bool) {
	if at < 0 {
		return Step{}, false
	}
	item, ok := x.queue.Get(at)
	if !ok {
		return Step{}, false
	}
	return item.(Step), true
}

func (x *Exchange) releaseFork() {
	x.forks--
	tracer().Debugf("release fork, %d live forks", x.forks)
	if x.forks == 0 && !x.released {
		x.released = true
		if r, ok := x.iterator.(Releaser); ok {
			tracer().Debugf("releasing input")
			r.Release()
		}
	}
}

// --- Forks -----------------------------------------------------------------

// Fork is a read cursor into the queue of an exchange. Cloning a fork does not
// copy any input, it just creates a new cursor at the same position.
type Fork struct {
	exchange *Exchange
	cursor   int // index into queue, -1 = in front of first item
	released bool
}

// Exchange returns the exchange this fork reads from.
func (f *Fork) Exchange() *Exchange {
	return f.exchange
}

// Done is a predicate: is the fork at end of input, or released?
func (f *Fork) Done() bool {
	if f.released {
		return true
	}
	step, ok := f.exchange.step(f.cursor)
	return ok && step.Done
}

// Value returns the item at the fork's position. A fork which is done or
// which has not been advanced yet returns nil.
func (f *Fork) Value() interface{} {
	if f.Done() {
		return nil
	}
	step, _ := f.exchange.step(f.cursor)
	return step.Value
}

// Step returns the step at the fork's position.
func (f *Fork) Step() Step {
	if f.released {
		return EOF
	}
	step, _ := f.exchange.step(f.cursor)
	return step
}

// Position returns the fork's index into the shared queue.
func (f *Fork) Position() int {
	return f.cursor
}

// Advance moves the fork to the next item and returns it. Items not yet
// present in the queue are pulled from the iterator. Advancing a fork which
// is done is an error.
func (f *Fork) Advance() (Step, error) {
	if f.Done() {
		return EOF, ErrForkDone
	}
	if f.cursor+1 >= f.exchange.queue.Size() {
		f.exchange.fetch()
	}
	f.cursor++
	step, _ := f.exchange.step(f.cursor)
	return step, nil
}

// Clone creates a new fork at the position of f.
func (f *Fork) Clone() *Fork {
	return f.exchange.AllocateFork(f)
}

// Release gives up the fork. Releasing a fork more than once has no effect.
// A released fork is done.
func (f *Fork) Release() {
	if f.released {
		return
	}
	f.released = true
	f.exchange.releaseFork()
}

// Released is a predicate: has f been released?
func (f *Fork) Released() bool {
	return f.released
}

// Iterator returns an iterator over the items starting at f's position.
// It reads from a clone of f, which is released when the end of input is
// reached or when the iterator is released.
func (f *Fork) Iterator() Iterator {
	return &forkIterator{fork: f.Clone()}
}

type forkIterator struct {
	fork *Fork
}

func (it *forkIterator) Next() Step {
	if it.fork.cursor < 0 { // fresh fork
		if _, err := it.fork.Advance(); err != nil {
			return EOF
		}
	}
	if it.fork.Done() {
		it.fork.Release()
		return EOF
	}
	step := it.fork.Step()
	if _, err := it.fork.Advance(); err != nil {
		it.fork.Release()
	}
	return step
}

func (it *forkIterator) Release() {
	it.fork.Release()
}
