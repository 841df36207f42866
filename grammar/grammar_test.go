package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	bablr "github.com/stirlhoss/bablr-vm"
)

func leaf(p Props) Coroutine {
	return Sequence(Eat(Str("x")))
}

func TestBuilderSubtypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.grammar")
	defer teardown()
	//
	b := NewBuilder(NodeKind, "Node")
	b.Define("Pair", leaf).Define("Atom", leaf).Define("Document", leaf)
	b.Alias("Entry", "Pair", "Atom")
	b.Alias("Item", "Entry")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	if g.Kind() != NodeKind || g.Root() != "Node" {
		t.Errorf("unexpected grammar header: %s %s", g.Kind(), g.Root())
	}
	for _, c := range []struct {
		super, typ string
		is         bool
	}{
		{"Node", "Pair", true},
		{"Entry", "Pair", true},
		{"Item", "Pair", true},
		{"Item", "Entry", true},
		{"Entry", "Document", false},
		{"Pair", "Entry", false},
		{"Pair", "Pair", true},
		{"Node", "Node", true},
		{"Node", "Comment", false},
	} {
		if g.IsSubtypeOf(c.super, c.typ) != c.is {
			t.Errorf("expected %s ⊑ %s to be %v", c.typ, c.super, c.is)
		}
	}
	if !g.IsAlias("Entry") || g.IsAlias("Pair") {
		t.Errorf("expected Entry, but not Pair, to be an alias")
	}
	if s := strings.Join(g.Types(), " "); s != "Atom Document Entry Item Pair" {
		t.Errorf("unexpected types: %s", s)
	}
	if _, ok := g.Production("Entry"); !ok {
		t.Errorf("expected a default production for alias Entry")
	}
}

func TestBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.grammar")
	defer teardown()
	//
	_, err := NewBuilder(NodeKind, "Node").Alias("A", "B").Alias("B", "A").Grammar()
	if !errors.Is(err, errAliasCycle) {
		t.Errorf("expected cyclic aliases to be rejected, have %v", err)
	}
	if _, err = NewBuilder(NodeKind, "Node").Alias("A", "Missing").Grammar(); err == nil {
		t.Errorf("expected alias for undefined type to be rejected")
	}
	if _, err = NewBuilder(NodeKind, "Node").Define("A", leaf).Define("A", leaf).Grammar(); err == nil {
		t.Errorf("expected duplicate definition to be rejected")
	}
	if _, err = NewLanguage("tokens only", nil); err == nil {
		t.Errorf("expected language without node grammar to be rejected")
	}
	g, _ := NewBuilder(NodeKind, "Node").Define("A", leaf).Grammar()
	if _, err = NewLanguage("twice", g, g); err == nil {
		t.Errorf("expected duplicate grammar kind to be rejected")
	}
}

func TestTransformerOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.grammar")
	defer teardown()
	//
	var trace []string
	wrap := func(name string) Transformer {
		return func(typ string, p Production) Production {
			return func(props Props) Coroutine {
				trace = append(trace, name+":"+typ)
				return p(props)
			}
		}
	}
	b := NewBuilder(TokenKind, "Token").Define("Letter", leaf)
	g, err := b.Use(wrap("outer")).Use(wrap("inner")).Grammar()
	if err != nil {
		t.Fatal(err)
	}
	p, _ := g.Production("Letter")
	p(Props{Type: "Letter"})
	if s := strings.Join(trace, " "); s != "outer:Letter inner:Letter" {
		t.Errorf("expected first transformer to be outermost, have %q", s)
	}
}

func TestCoroutineHelpers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.grammar")
	defer teardown()
	//
	seq := Sequence(Eat(Str("a")), Match(Str("b")))
	if instr := seq.Resume(Result{}); instr.Matchable.Pattern != "a" || instr.Effects != (Effects{EatInput, FailBranch}) {
		t.Errorf("unexpected first instruction %v", instr)
	}
	if instr := seq.Resume(Result{OK: true}); instr.Matchable.Pattern != "b" || instr.Effects != (Effects{Lookahead, Continue}) {
		t.Errorf("unexpected second instruction %v", instr)
	}
	if instr := seq.Resume(Result{OK: true, Value: 7}); instr.Kind != DoneInstr || instr.Value != 7 {
		t.Errorf("expected sequence to be done, is %v", instr)
	}
	//
	rep := Repeat(Str("a"), 1)
	if instr := rep.Resume(Result{}); instr.Effects.Failure != FailBranch {
		t.Errorf("expected first repetition to be required, is %v", instr)
	}
	if instr := rep.Resume(Result{OK: true, Span: bablr.Span{0, 1}}); instr.Effects.Failure != Continue {
		t.Errorf("expected second repetition to be optional, is %v", instr)
	}
	if instr := rep.Resume(Result{OK: true, Span: bablr.Span{1, 1}}); instr.Kind != DoneInstr || instr.Value != 1 {
		t.Errorf("expected empty match to end repetition with count 1, is %v", instr)
	}
	rep = Repeat(Str(""), 2)
	rep.Resume(Result{})
	if instr := rep.Resume(Result{OK: true, Span: bablr.Span{0, 0}}); instr.Kind != FailInstr {
		t.Errorf("expected empty match before minimum count to fail, is %v", instr)
	}
	rep = Repeat(Str(""), 0)
	rep.Resume(Result{})
	if instr := rep.Resume(Result{OK: true, Span: bablr.Span{0, 0}}); instr.Kind != DoneInstr || instr.Value != 0 {
		t.Errorf("expected empty optional repetition to be done with count 0, is %v", instr)
	}
	//
	either := Either(Str("a"), Str("b"))
	either.Resume(Result{})
	if instr := either.Resume(Result{}); instr.Matchable.Pattern != "b" {
		t.Errorf("expected second alternative, is %v", instr)
	}
	if instr := either.Resume(Result{}); instr.Kind != FailInstr {
		t.Errorf("expected either to fail, is %v", instr)
	}
}

func TestRegexAnchored(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.grammar")
	defer teardown()
	//
	m := Re(`[0-9]+|x`)
	if m.Regexp.MatchString("ax") {
		t.Errorf("expected regex to be anchored")
	}
	if loc := m.Regexp.FindStringIndex("12a"); loc == nil || loc[1] != 2 {
		t.Errorf("expected regex to match '12', have %v", loc)
	}
	if m.String() != "/[0-9]+|x/" {
		t.Errorf("unexpected string %q", m.String())
	}
}
