package engine

import (
	"strings"

	bablr "github.com/stirlhoss/bablr-vm"
	"github.com/stirlhoss/bablr-vm/cst"
	"github.com/stirlhoss/bablr-vm/grammar"
)

// State is the mutable state of a branch.
type State struct {
	source    *Source
	rejected  bool
	tokenOpen bool
	token     strings.Builder // text of the open token
	spans     []string        // stack of lexical spans
}

var _ grammar.State = (*State)(nil)

func newState(src *Source) *State {
	return &State{source: src}
}

// branch creates the state for a child branch.
func (s *State) branch(src *Source) *State {
	child := &State{
		source:    src,
		tokenOpen: s.tokenOpen,
		spans:     append([]string(nil), s.spans...),
	}
	child.token.WriteString(s.token.String())
	return child
}

// adopt takes over everything from an accepted child state, except for its
// source.
func (s *State) adopt(child *State) {
	s.tokenOpen = child.tokenOpen
	s.token.Reset()
	s.token.WriteString(child.token.String())
	s.spans = child.spans
}

// Rejected is a predicate: has the branch been rejected?
func (s *State) Rejected() bool {
	return s.rejected
}

func (s *State) reject() {
	s.rejected = true
}

// Position returns the number of input items consumed on this branch.
func (s *State) Position() uint64 {
	return s.source.index
}

// LexicalContext returns the name of the innermost open span, or "Bare".
func (s *State) LexicalContext() string {
	if len(s.spans) == 0 {
		return "Bare"
	}
	return s.spans[len(s.spans)-1]
}

func (s *State) openToken() {
	s.tokenOpen = true
	s.token.Reset()
}

func (s *State) closeToken() string {
	text := s.token.String()
	s.tokenOpen = false
	s.token.Reset()
	return text
}

// Token text containing line breaks has to be a line break sequence, or has
// to end with a line break.
func validateLineBreaks(text string) error {
	if !strings.ContainsAny(text, "\r\n") {
		return nil
	}
	if strings.Trim(text, "\r\n") == "" {
		return nil
	}
	if strings.HasSuffix(text, "\n") || strings.HasSuffix(text, "\r") {
		return nil
	}
	return bablr.ErrLineBreak
}

// --- Paths -----------------------------------------------------------------

// Path locates a match within the tree: its nesting depth and the type of the
// gap it fills.
type Path struct {
	Depth   int
	GapType string
	Segment string // value of the path attribute
	Parent  *Path
}

// push enters a node.
func (p *Path) push(tag *cst.Tag, segment string) *Path {
	return &Path{Depth: p.Depth + 1, GapType: tag.Type, Segment: segment, Parent: p}
}

// gap narrows the gap type without entering a node, as aliases do.
func (p *Path) gap(typ string) *Path {
	return &Path{Depth: p.Depth, GapType: typ, Segment: p.Segment, Parent: p.Parent}
}
