package demo

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stirlhoss/bablr-vm/cst"
	"github.com/stirlhoss/bablr-vm/engine"
)

const sample = "name = \"demo\"\nsizes = 1 2 3 # a comment\n\nstandalone\n"

func text(r *engine.Result) string {
	var b strings.Builder
	for _, t := range r.Tags() {
		if t.Kind == cst.TokenTag {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}

func nodes(r *engine.Result) string {
	var types []string
	for _, t := range r.Tags() {
		if t.Kind == cst.OpenTag {
			types = append(types, t.Type)
		}
	}
	return strings.Join(types, " ")
}

func tokens(r *engine.Result, typ string) []string {
	var texts []string
	for _, t := range r.Tags() {
		if t.Kind == cst.TokenTag && t.Type == typ {
			texts = append(texts, t.Text)
		}
	}
	return texts
}

func TestDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.lang")
	defer teardown()
	//
	r, err := Parse(sample)
	if err != nil {
		t.Fatal(err)
	}
	if !r.OK || !r.Complete || r.Value != 3 {
		t.Fatalf("expected complete parse of 3 entries, have ok=%v complete=%v value=%v",
			r.OK, r.Complete, r.Value)
	}
	if s := text(r); s != sample {
		t.Errorf("expected CST to reproduce the input, have %q", s)
	}
	if s := nodes(r); s != "Document Pair Atom String Pair Atom Atom Atom Atom" {
		t.Errorf("unexpected nodes: %s", s)
	}
	if c := tokens(r, Comment); len(c) != 1 || c[0] != "# a comment" {
		t.Errorf("expected one comment, have %v", c)
	}
	if lb := tokens(r, LineBreak); len(lb) != 4 {
		t.Errorf("expected 4 line breaks, have %d", len(lb))
	}
}

func TestStringContext(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.lang")
	defer teardown()
	//
	r, err := Parse(`s = " a  b "`)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Complete {
		t.Fatalf("expected complete parse, consumed %d", r.Consumed)
	}
	if lit := tokens(r, Literal); len(lit) != 1 || lit[0] != " a  b " {
		t.Errorf("expected whitespace to stay inside the literal, have %q", lit)
	}
	if ws := tokens(r, Whitespace); len(ws) != 2 {
		t.Errorf("expected 2 whitespace tokens outside of the string, have %q", ws)
	}
}

func TestWordSeparation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.lang")
	defer teardown()
	//
	r, err := Parse("x = 1 a")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Complete || nodes(r) != "Document Pair Atom Atom" {
		t.Errorf("expected two atoms, have %s", nodes(r))
	}
	r, err = Parse("x = 1a")
	if err != nil {
		t.Fatal(err)
	}
	if !r.OK || r.Complete || r.Consumed != 5 {
		t.Errorf("expected parse to stop in front of 'a', consumed %d", r.Consumed)
	}
	if s := text(r); s != "x = 1" {
		t.Errorf("expected rejected atom to leave no tokens, have %q", s)
	}
}

func TestBareValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.lang")
	defer teardown()
	//
	r, err := Parse("standalone")
	if err != nil {
		t.Fatal(err)
	}
	if s := nodes(r); s != "Document Atom" {
		t.Errorf("expected Pair to be rejected in favour of Atom, have %s", s)
	}
	if open := r.Tags()[1]; open.Gap != Entry || open.Attrs.Text("path") != "entries" {
		t.Errorf("expected Atom to fill gap Entry at path 'entries', is %v", open)
	}
}

func TestLexedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.lang")
	defer teardown()
	//
	units, err := Units(sample)
	if err != nil {
		t.Fatal(err)
	}
	r, err := ParseInput(units)
	if err != nil {
		t.Fatal(err)
	}
	if !r.OK || !r.Complete || r.Value != 3 {
		t.Fatalf("expected complete parse of 3 entries, have ok=%v complete=%v value=%v",
			r.OK, r.Complete, r.Value)
	}
	if s := text(r); s != sample {
		t.Errorf("expected CST to reproduce the input, have %q", s)
	}
	if s := nodes(r); s != "Document Pair Atom Pair Atom Atom Atom Atom" {
		t.Errorf("unexpected nodes: %s", s)
	}
	if q := tokens(r, Quoted); len(q) != 1 || q[0] != `"demo"` {
		t.Errorf("expected string to be a single Quoted token, have %v", q)
	}
}
