package engine

import (
	"fmt"

	"github.com/stirlhoss/bablr-vm/cst"
	"github.com/stirlhoss/bablr-vm/grammar"
	"github.com/stirlhoss/bablr-vm/stream"
)

// Result is the outcome of a parse.
type Result struct {
	Context  *Context
	OK       bool   // the root production succeeded
	Consumed uint64 // number of input items consumed
	Complete bool   // the whole input has been consumed
	Value    interface{}
}

// Tags returns the tags of the CST in document order.
func (r *Result) Tags() []*cst.Tag {
	if r == nil || r.Context == nil {
		return nil
	}
	return r.Context.Tags()
}

// Digest returns a fingerprint of the CST.
func (r *Result) Digest() (string, error) {
	return r.Context.links.Digest()
}

// Parse runs the production for node type typ of lang over input.
//
// A grammar misuse is returned as an error, the parse is abandoned. A root
// production which fails is not an error: the result will not be OK, and the
// tags of the failed match are unlinked. In any case every fork of the input
// is released before Parse returns, and input's cleanup (if it implements
// stream.Releaser) will have been called exactly once.
func Parse(lang *grammar.Language, input stream.Iterator, typ string, opts ...Option) (*Result, error) {
	if lang == nil || lang.Grammar(grammar.NodeKind) == nil {
		return nil, fmt.Errorf("parse needs a language with a node grammar")
	}
	ctx := NewContext(lang, opts...)
	src := SourceFrom(ctx, input)
	tracer().Infof("parse %s as %s", lang.Name, typ)
	caller := &frame{
		kind:   grammar.NodeKind,
		typ:    "<parse>",
		path:   &Path{},
		branch: ctx.root,
		status: suspended,
	}
	rootFrame, err := ctx.dispatch(caller, grammar.Eat(grammar.Node(typ, ctx.rootAttrs)))
	if err != nil {
		ctx.releaseAll()
		return nil, err
	}
	r, err := ctx.run(rootFrame)
	if err != nil {
		tracer().Errorf("parse %s: %v", lang.Name, err)
		ctx.releaseAll()
		return nil, err
	}
	result := &Result{
		Context:  ctx,
		OK:       r.OK,
		Consumed: src.index,
		Complete: src.Done(),
		Value:    r.Value,
	}
	tracer().Infof("parse %s: ok=%v, consumed %d items, %d tags", lang.Name, result.OK,
		result.Consumed, ctx.links.Len())
	ctx.releaseAll()
	return result, nil
}

// ParseString parses a string of runes.
func ParseString(lang *grammar.Language, input string, typ string, opts ...Option) (*Result, error) {
	return Parse(lang, stream.Runes(input), typ, opts...)
}
