package engine

import "fmt"

// Branches are kept in an arena and addressed by handles. A handle carries the
// generation of its slot, so a handle to a resolved branch never resolves to
// a branch which later re-uses the slot.

type handle struct {
	index uint32
	gen   uint32
}

var noBranch = handle{index: ^uint32(0)}

func (h handle) String() string {
	if h == noBranch {
		return "branch(-)"
	}
	return fmt.Sprintf("branch(%d.%d)", h.index, h.gen)
}

type branch struct {
	gen    uint32
	live   bool
	parent handle
	source *Source
	state  *State
}

type arena struct {
	slots []branch
	free  []uint32
	live  int
}

func (a *arena) alloc(parent handle, src *Source, st *State) handle {
	var i uint32
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, branch{})
		i = uint32(len(a.slots) - 1)
	}
	b := &a.slots[i]
	b.gen++
	b.live = true
	b.parent = parent
	b.source = src
	b.state = st
	a.live++
	return handle{index: i, gen: b.gen}
}

// get returns the branch for h, or nil if h is stale.
func (a *arena) get(h handle) *branch {
	if h == noBranch || int(h.index) >= len(a.slots) {
		return nil
	}
	b := &a.slots[h.index]
	if !b.live || b.gen != h.gen {
		return nil
	}
	return b
}

// destroy frees the slot of h. The branch's source and state are dropped
// and will not be kept alive by the arena.
func (a *arena) destroy(h handle) {
	b := a.get(h)
	if b == nil {
		panic(fmt.Sprintf("attempt to destroy stale %v", h))
	}
	b.live = false
	b.source = nil
	b.state = nil
	b.parent = noBranch
	a.free = append(a.free, h.index)
	a.live--
}

// each calls f for every live branch.
func (a *arena) each(f func(h handle, b *branch)) {
	for i := range a.slots {
		b := &a.slots[i]
		if b.live {
			f(handle{index: uint32(i), gen: b.gen}, b)
		}
	}
}
