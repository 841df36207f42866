package engine

import (
	"fmt"

	bablr "github.com/stirlhoss/bablr-vm"
	"github.com/stirlhoss/bablr-vm/cst"
	"github.com/stirlhoss/bablr-vm/grammar"
)

// --- Match frames ----------------------------------------------------------

type frameStatus int8

const (
	running   frameStatus = iota
	suspended             // waiting for a nested match to resolve
	succeeded
	rejected
)

func (s frameStatus) String() string {
	switch s {
	case running:
		return "running"
	case suspended:
		return "deferred"
	case succeeded:
		return "success"
	}
	return "rejected"
}

// frame is one activation of a production.
type frame struct {
	co         grammar.Coroutine
	kind       grammar.Kind
	typ        string
	matchable  grammar.Matchable
	attrs      bablr.Attrs // attributes built for the match
	effects    grammar.Effects
	path       *Path
	branch     handle   // branch the frame runs in
	branched   bool     // the frame owns its branch
	open       *cst.Tag // open tag of a node frame, nil for aliases
	deferOpen  bool     // open tag has not been emitted yet
	opensToken bool     // frame owns the token buffer of its branch
	mark       *cst.Tag // last tag before the frame started
	start      uint64   // input position when the frame started
	value      interface{}
	status     frameStatus
}

func (f *frame) String() string {
	return fmt.Sprintf("[%s %s %v]", f.kind, f.typ, f.status)
}

func (ctx *Context) push(f *frame) {
	ctx.matches.Push(f)
}

func (ctx *Context) top() *frame {
	f, ok := ctx.matches.Peek()
	if !ok {
		panic("attempt to access match frame from empty stack")
	}
	return f.(*frame)
}

func (ctx *Context) pop() *frame {
	f, ok := ctx.matches.Pop()
	if !ok {
		panic("attempt to pop match frame from empty stack")
	}
	return f.(*frame)
}

// --- Trampoline ------------------------------------------------------------

// run drives the frame stack until the root frame has resolved. It returns the
// result of the root match.
func (ctx *Context) run(root *frame) (grammar.Result, error) {
	ctx.push(root)
	var result grammar.Result
	for !ctx.matches.Empty() {
		f := ctx.top()
		st := ctx.state(f.branch)
		if st.Rejected() {
			result = ctx.unwind()
			continue
		}
		f.status = running
		instr := f.co.Resume(result)
		result = grammar.Result{}
		tracer().Debugf("%v %v", f, instr)
		switch instr.Kind {
		case grammar.DoneInstr:
			f.value = instr.Value
			r, err := ctx.complete()
			if err != nil {
				return result, err
			}
			result = r
		case grammar.FailInstr:
			st.reject()
		case grammar.MatchInstr:
			switch instr.Matchable.Kind {
			case grammar.NodeMatcher, grammar.TokenMatcher:
				child, err := ctx.dispatch(f, instr)
				if err != nil {
					return result, err
				}
				f.status = suspended
				ctx.push(child)
			case grammar.StringMatcher, grammar.RegexMatcher:
				r, err := ctx.leaf(f, instr)
				if err != nil {
					return result, err
				}
				result = r
			default:
				return result, bablr.Misuse(bablr.ErrUnknownMatchable, instr.Matchable.Kind.String())
			}
		default:
			return result, bablr.Misuse(bablr.ErrInvalidInstruction, instr.Kind.String())
		}
	}
	return result, nil
}

// dispatch creates the frame for a nested node or token match issued by f.
func (ctx *Context) dispatch(f *frame, instr grammar.Instruction) (*frame, error) {
	m := instr.Matchable
	st := ctx.state(f.branch)
	attrs := ctx.attrs(m.Attrs)
	child := &frame{
		typ:       m.Type,
		matchable: m,
		attrs:     attrs,
		effects:   instr.Effects,
		path:      f.path,
	}
	var g *grammar.Grammar
	switch m.Kind {
	case grammar.NodeMatcher:
		if f.kind == grammar.TokenKind || st.tokenOpen {
			return nil, bablr.Misuse(bablr.ErrNodeInToken, m.Type)
		}
		if attrs.Has(bablr.AttrStartSpan) || attrs.Has(bablr.AttrEndSpan) {
			return nil, bablr.Misuse(bablr.ErrSpanOnNonToken, m.Type)
		}
		g = ctx.grammars[grammar.NodeKind]
		if !g.IsType(m.Type) {
			return nil, bablr.Misuse(bablr.ErrUnknownType, m.Type)
		}
		segment := attrs.Text(bablr.AttrPath)
		if f.path.Depth > 0 && segment == "" {
			return nil, bablr.Misuse(bablr.ErrMissingPath, m.Type)
		}
		child.kind = grammar.NodeKind
		if g.IsAlias(m.Type) {
			child.path = f.path.gap(m.Type)
		} else {
			child.open = cst.NodeOpen(m.Type, f.path.GapType, attrs)
			child.path = f.path.push(child.open, segment)
		}
	case grammar.TokenMatcher:
		g = ctx.grammars[grammar.TokenKind]
		if !g.IsType(m.Type) {
			return nil, bablr.Misuse(bablr.ErrUnknownType, m.Type)
		}
		isToken := !g.IsAlias(m.Type)
		if isToken && st.tokenOpen {
			return nil, bablr.Misuse(bablr.ErrTokenOpen, m.Type)
		}
		if !isToken && (attrs.Has(bablr.AttrStartSpan) || attrs.Has(bablr.AttrEndSpan)) {
			return nil, bablr.Misuse(bablr.ErrSpanOnNonToken, m.Type)
		}
		child.kind = grammar.TokenKind
		child.opensToken = isToken
	}
	production, ok := g.Production(m.Type)
	if !ok {
		return nil, bablr.Misuse(bablr.ErrUnknownType, m.Type)
	}
	child.branch = f.branch
	if ctx.policy(instr.Effects) {
		child.branch = ctx.source(f.branch).Branch().handle
		child.branched = true
	}
	child.mark = ctx.links.Last()
	child.start = ctx.source(child.branch).index
	if child.open != nil {
		if child.branched {
			child.deferOpen = true
		} else {
			ctx.emit(child.open)
		}
	}
	cs := ctx.state(child.branch)
	if child.opensToken {
		cs.openToken()
	}
	child.co = production(grammar.Props{
		Type:    m.Type,
		Attrs:   attrs,
		Context: ctx,
		State:   cs,
	})
	tracer().Debugf("dispatch %v in %v", child, child.branch)
	return child, nil
}

// complete finishes the top frame successfully: it closes the frame's
// grammar type, resolves its branch and pops it. It returns the result for
// the parent frame.
func (ctx *Context) complete() (grammar.Result, error) {
	f := ctx.top()
	src, st := ctx.source(f.branch), ctx.state(f.branch)
	switch f.kind {
	case grammar.NodeKind:
		if f.open != nil {
			inner := f.mark
			if !f.deferOpen {
				inner = f.open
			}
			empty := ctx.links.Last() == inner && src.index == f.start
			if empty {
				ctx.links.TruncateTo(f.mark)
			} else {
				if f.deferOpen {
					ctx.links.InsertAfter(f.mark, f.open)
				}
				closeTag := cst.NodeClose(f.typ)
				ctx.emit(closeTag)
				if err := ctx.links.Pair(closeTag, f.open); err != nil {
					return grammar.Result{}, err
				}
			}
		}
	case grammar.TokenKind:
		if f.opensToken {
			text := st.closeToken()
			if err := validateLineBreaks(text); err != nil {
				return grammar.Result{}, bablr.Misuse(err, fmt.Sprintf("%s %q", f.typ, text))
			}
			if text != "" {
				ctx.emit(cst.Token(f.typ, text))
			}
			attrs := f.attrs
			if attrs.Has(bablr.AttrEndSpan) && len(st.spans) > 0 {
				st.spans = st.spans[:len(st.spans)-1]
			}
			if attrs.Has(bablr.AttrStartSpan) {
				st.spans = append(st.spans, attrs.Text(bablr.AttrStartSpan))
			}
		}
	}
	result := grammar.Result{
		OK:    true,
		Span:  bablr.Span{f.start, src.index},
		Value: f.value,
	}
	if ctx.links.Last() != f.mark {
		first := ctx.links.First()
		if f.mark != nil {
			first = ctx.links.Next(f.mark)
		}
		result.Range = cst.Range{first, ctx.links.Last()}
	}
	if f.branched {
		parent := ctx.source(ctx.branches.get(f.branch).parent)
		if f.effects.Success == grammar.Lookahead {
			ctx.links.TruncateTo(f.mark)
			result.Range = cst.Range{}
			src.Reject()
		} else {
			parent.Accept(src)
		}
	}
	f.status = succeeded
	ctx.pop()
	tracer().Debugf("%v done %v", f, result.Span)
	return result, nil
}

// unwind pops the top frame, whose branch has been rejected. Tags emitted by
// the frame are unlinked. If the frame owns its branch, the branch is
// rejected and the parent frame continues, unless the match was required to
// succeed. A frame sharing its branch with the parent takes the parent down
// with it.
func (ctx *Context) unwind() grammar.Result {
	f := ctx.pop()
	f.status = rejected
	ctx.links.TruncateTo(f.mark)
	if f.branched {
		b := ctx.branches.get(f.branch)
		parent := b.parent
		b.source.Reject()
		if f.effects.Failure == grammar.FailBranch {
			ctx.state(parent).reject()
		}
	}
	tracer().Debugf("%v unwound", f)
	return grammar.Result{}
}
