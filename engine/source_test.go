package engine

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stirlhoss/bablr-vm/grammar"
	"github.com/stirlhoss/bablr-vm/stream"
)

func TestSourceAcceptReject(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.engine")
	defer teardown()
	//
	ctx := NewContext(language(t, single(grammar.Tok("Letter", nil))))
	input := &countingInput{Iterator: stream.Runes("abc")}
	src := SourceFrom(ctx, input)
	if src.Value() != 'a' || src.Index() != 0 {
		t.Fatalf("expected root source to be primed with 'a', is %v", src.Value())
	}
	child := src.Branch()
	if err := child.Advance(2); err != nil {
		t.Fatal(err)
	}
	if src.Index() != 0 || src.Value() != 'a' {
		t.Errorf("expected parent to stay at 'a' while child advances")
	}
	src.Accept(child)
	if src.Index() != 2 || src.Value() != 'c' {
		t.Errorf("expected parent to adopt child position 2, is %d", src.Index())
	}
	if ctx.LiveBranches() != 1 || src.Exchange().Forks() != 1 {
		t.Errorf("expected 1 branch and 1 fork, have %d and %d", ctx.LiveBranches(),
			src.Exchange().Forks())
	}
	child = src.Branch()
	if err := child.Advance(1); err != nil {
		t.Fatal(err)
	}
	child.Reject()
	if src.Index() != 2 || src.Value() != 'c' {
		t.Errorf("expected reject to leave parent at position 2, is %d", src.Index())
	}
	if err := src.Advance(1); err != nil {
		t.Fatal(err)
	}
	if !src.Done() {
		t.Errorf("expected input to be exhausted")
	}
	if err := src.Advance(1); err == nil {
		t.Errorf("expected advancing an exhausted source to fail")
	}
	ctx.releaseAll()
	if input.releases != 1 || ctx.LiveBranches() != 0 {
		t.Errorf("expected input to be released once, was released %d times", input.releases)
	}
	if src.Exchange().Fetched() != 4 {
		t.Errorf("expected 4 pulls from input (3 runes + EOF), have %d", src.Exchange().Fetched())
	}
}

func TestSourceBranchesNoLoss(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.engine")
	defer teardown()
	//
	ctx := NewContext(language(t, single(grammar.Tok("Letter", nil))))
	input := &countingInput{Iterator: stream.Runes("abcdef")}
	src := SourceFrom(ctx, input)
	if err := src.Advance(1); err != nil {
		t.Fatal(err)
	}
	children := []*Source{src.Branch(), src.Branch(), src.Branch()}
	for i, child := range children {
		if err := child.Advance(i); err != nil { // head start of i items
			t.Fatal(err)
		}
	}
	for i, child := range children {
		var read []rune
		for !child.Done() {
			read = append(read, child.Value().(rune))
			if err := child.Advance(1); err != nil {
				t.Fatal(err)
			}
		}
		if expected := "bcdef"[i:]; string(read) != expected {
			t.Errorf("branch %d: expected to read %q, read %q", i, expected, string(read))
		}
		if child.Index() != 6 {
			t.Errorf("branch %d: expected to end at position 6, is %d", i, child.Index())
		}
	}
	if src.Value() != 'b' || src.Index() != 1 {
		t.Errorf("expected parent to stay at 'b', is %v", src.Value())
	}
	if n := src.Exchange().Fetched(); n != 7 {
		t.Errorf("expected input to be read once (6 runes + EOF), was pulled %d times", n)
	}
	for _, child := range children {
		child.Reject()
	}
	if ctx.LiveBranches() != 1 || src.Exchange().Forks() != 1 {
		t.Errorf("expected 1 branch and 1 fork after rejects, have %d and %d", ctx.LiveBranches(),
			src.Exchange().Forks())
	}
	ctx.releaseAll()
	if input.releases != 1 {
		t.Errorf("expected input to be released once, was released %d times", input.releases)
	}
}

func TestArenaHandles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.engine")
	defer teardown()
	//
	var a arena
	h1 := a.alloc(noBranch, nil, nil)
	a.destroy(h1)
	h2 := a.alloc(noBranch, nil, nil)
	if h1.index != h2.index {
		t.Errorf("expected slot to be re-used")
	}
	if a.get(h1) != nil {
		t.Errorf("expected stale handle %v not to resolve", h1)
	}
	if a.get(h2) == nil {
		t.Errorf("expected handle %v to resolve", h2)
	}
	if a.get(noBranch) != nil {
		t.Errorf("expected no branch for noBranch")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("expected destroying a stale handle to panic")
		}
	}()
	a.destroy(h1)
}
