package cst

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	bablr "github.com/stirlhoss/bablr-vm"
)

// builds <Root> a <Pair> b c </Pair> d </Root>
func makeChain(t *testing.T) (*Links, map[string]*Tag) {
	l := NewLinks()
	tags := map[string]*Tag{
		"<Root>":  NodeOpen("Root", "", nil),
		"a":       Token("Ident", "a"),
		"<Pair>":  NodeOpen("Pair", "Root", bablr.Attrs{"path": "pairs"}),
		"b":       Token("Ident", "b"),
		"c":       Token("Ident", "c"),
		"</Pair>": NodeClose("Pair"),
		"d":       Token("Ident", "d"),
		"</Root>": NodeClose("Root"),
	}
	for _, k := range []string{"<Root>", "a", "<Pair>", "b", "c", "</Pair>", "d", "</Root>"} {
		l.Append(tags[k])
	}
	if err := l.Pair(tags["</Pair>"], tags["<Pair>"]); err != nil {
		t.Fatal(err)
	}
	if err := l.Pair(tags["</Root>"], tags["<Root>"]); err != nil {
		t.Fatal(err)
	}
	return l, tags
}

func TestLinksOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.cst")
	defer teardown()
	//
	l, tags := makeChain(t)
	if l.Len() != 8 {
		t.Errorf("Expected 8 tags, have %d", l.Len())
	}
	if l.Prev(tags["b"]) != tags["<Pair>"] || l.Next(tags["b"]) != tags["c"] {
		t.Errorf("Expected b to be linked between <Pair> and c")
	}
	if l.OpenFor(tags["</Pair>"]) != tags["<Pair>"] {
		t.Errorf("Expected </Pair> to be paired with <Pair>")
	}
	depths := []int{}
	l.Walk(func(tag *Tag, depth int) {
		depths = append(depths, depth)
	})
	expected := []int{0, 1, 1, 2, 2, 1, 1, 0}
	for i := range expected {
		if depths[i] != expected[i] {
			t.Errorf("Expected depths %v, have %v", expected, depths)
			break
		}
	}
}

func TestPairMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.cst")
	defer teardown()
	//
	l := NewLinks()
	o := NodeOpen("A", "", nil)
	c := NodeClose("B")
	l.Append(o)
	l.Append(c)
	if err := l.Pair(c, o); !errors.Is(err, bablr.ErrTagMismatch) {
		t.Errorf("Expected tag mismatch error, got %v", err)
	}
}

func TestAllTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.cst")
	defer teardown()
	//
	l, tags := makeChain(t)
	seen := map[*Tag]int{}
	it := l.AllTagsFor(Range{tags["a"], tags["d"]})
	for it.Next() {
		seen[it.Tag()]++
	}
	if len(seen) != 6 {
		t.Errorf("Expected 6 tags in range a…d, have %d", len(seen))
	}
	for tag, n := range seen {
		if n != 1 {
			t.Errorf("Expected %v to be visited once, was visited %d times", tag, n)
		}
	}
	// restartable
	it = l.AllTagsFor(Range{tags["a"], tags["d"]})
	n := 0
	for it.Next() {
		n++
	}
	if n != 6 {
		t.Errorf("Expected second traversal to visit 6 tags, visited %d", n)
	}
}

func TestOwnTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.cst")
	defer teardown()
	//
	l, tags := makeChain(t)
	var visited []*Tag
	it := l.OwnTagsFor(Range{tags["a"], tags["d"]})
	for it.Next() {
		visited = append(visited, it.Tag())
	}
	expected := []*Tag{tags["d"], tags["<Pair>"], tags["a"]}
	if len(visited) != len(expected) {
		t.Fatalf("Expected own tags %v, have %v", expected, visited)
	}
	for i := range expected {
		if visited[i] != expected[i] {
			t.Errorf("Expected own tag #%d to be %v, is %v", i, expected[i], visited[i])
		}
	}
	it = l.OwnTagsFor(Range{})
	if it.Next() {
		t.Errorf("Expected empty range to yield no tags")
	}
}

func TestTruncateAndInsert(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bablr.cst")
	defer teardown()
	//
	l, tags := makeChain(t)
	before, _ := l.Digest()
	l.TruncateTo(tags["c"])
	if l.Last() != tags["c"] || l.Len() != 5 || l.Next(tags["c"]) != nil {
		t.Errorf("Expected chain to end at c after truncation, ends at %v", l.Last())
	}
	if l.OpenFor(tags["</Pair>"]) != nil {
		t.Errorf("Expected pairing of truncated close tag to be removed")
	}
	l.Append(tags["</Pair>"])
	l.Append(tags["d"])
	l.Append(tags["</Root>"])
	l.Pair(tags["</Pair>"], tags["<Pair>"])
	l.Pair(tags["</Root>"], tags["<Root>"])
	after, _ := l.Digest()
	if before != after {
		t.Errorf("Expected equal digests for re-built chain, have %s and %s", before, after)
	}
	x := Token("Ident", "x")
	l.InsertAfter(nil, x)
	if l.First() != x || l.Prev(tags["<Root>"]) != x {
		t.Errorf("Expected x to be inserted at the beginning")
	}
	changed, _ := l.Digest()
	if changed == before {
		t.Errorf("Expected digest to change after insertion")
	}
	l.TruncateTo(nil)
	if l.Len() != 0 || l.First() != nil || l.Last() != nil {
		t.Errorf("Expected empty chain")
	}
}
