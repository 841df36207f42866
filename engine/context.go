package engine

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	bablr "github.com/stirlhoss/bablr-vm"
	"github.com/stirlhoss/bablr-vm/cst"
	"github.com/stirlhoss/bablr-vm/grammar"
)

// Context holds everything a parse needs: the grammars of a language, the tag
// links forming the CST, and the branch arena. A context is created once per
// parse.
type Context struct {
	language  *grammar.Language
	grammars  map[grammar.Kind]*grammar.Grammar
	links     *cst.Links
	branches  arena
	root      handle
	matches   *arraystack.Stack // of *frame
	policy    BranchPolicy
	attrs     AttrsBuilder
	rootAttrs bablr.Attrs
}

var _ grammar.Context = (*Context)(nil)

// BranchPolicy decides whether a match with the given effects is speculative.
// Speculative matches run in a branch of their own, and their open tags are
// deferred until they have succeeded.
type BranchPolicy func(effects grammar.Effects) bool

// DefaultBranchPolicy considers a match speculative if its failure does not
// fail the enclosing production, or if it is a lookahead.
func DefaultBranchPolicy(effects grammar.Effects) bool {
	return effects.Success == grammar.Lookahead || effects.Failure == grammar.Continue
}

// AttrsBuilder computes the attributes of a match from the attributes given
// by a production.
type AttrsBuilder func(attrs bablr.Attrs) bablr.Attrs

// CopyAttrs is the default AttrsBuilder.
func CopyAttrs(attrs bablr.Attrs) bablr.Attrs {
	return attrs.Copy()
}

// Option configures a context.
type Option func(ctx *Context)

// WithBranchPolicy sets the policy for speculative matches.
func WithBranchPolicy(policy BranchPolicy) Option {
	return func(ctx *Context) {
		if policy != nil {
			ctx.policy = policy
		}
	}
}

// WithAttrsBuilder sets the builder for match attributes.
func WithAttrsBuilder(builder AttrsBuilder) Option {
	return func(ctx *Context) {
		if builder != nil {
			ctx.attrs = builder
		}
	}
}

// WithRootAttrs sets the attributes of the root match.
func WithRootAttrs(attrs bablr.Attrs) Option {
	return func(ctx *Context) {
		ctx.rootAttrs = attrs
	}
}

// NewContext creates a context for a language.
func NewContext(lang *grammar.Language, opts ...Option) *Context {
	ctx := &Context{
		language: lang,
		grammars: make(map[grammar.Kind]*grammar.Grammar, 2),
		links:    cst.NewLinks(),
		root:     noBranch,
		matches:  arraystack.New(),
		policy:   DefaultBranchPolicy,
		attrs:    CopyAttrs,
	}
	for _, k := range lang.Kinds() {
		ctx.grammars[k] = lang.Grammar(k)
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// Language returns the language of the parse.
func (ctx *Context) Language() *grammar.Language {
	return ctx.language
}

// Grammar returns the grammar of kind k.
func (ctx *Context) Grammar(k grammar.Kind) *grammar.Grammar {
	return ctx.grammars[k]
}

// Links returns the tag links of the parse.
func (ctx *Context) Links() *cst.Links {
	return ctx.links
}

// PreviousTag returns the tag emitted immediately before t.
func (ctx *Context) PreviousTag(t *cst.Tag) *cst.Tag {
	return ctx.links.Prev(t)
}

// PreviousToken returns the closest token tag preceding t.
func (ctx *Context) PreviousToken(t *cst.Tag) *cst.Tag {
	for p := ctx.links.Prev(t); p != nil; p = ctx.links.Prev(p) {
		if p.Kind == cst.TokenTag {
			return p
		}
	}
	return nil
}

// LastTag returns the most recently emitted tag. As branches are resolved
// depth-first, this is the last tag of the currently running branch.
func (ctx *Context) LastTag() *cst.Tag {
	return ctx.links.Last()
}

// LastToken returns the most recently emitted token tag.
func (ctx *Context) LastToken() *cst.Tag {
	last := ctx.links.Last()
	if last == nil || last.Kind == cst.TokenTag {
		return last
	}
	return ctx.PreviousToken(last)
}

// OwnTagsFor iterates over the tags of r at r's nesting level.
func (ctx *Context) OwnTagsFor(r cst.Range) *cst.TagIterator {
	return ctx.links.OwnTagsFor(r)
}

// AllTagsFor iterates over all tags of r.
func (ctx *Context) AllTagsFor(r cst.Range) *cst.TagIterator {
	return ctx.links.AllTagsFor(r)
}

// Tags returns the emitted tags in document order.
func (ctx *Context) Tags() []*cst.Tag {
	return ctx.links.Tags()
}

// LiveBranches returns the number of unresolved branches.
func (ctx *Context) LiveBranches() int {
	return ctx.branches.live
}

func (ctx *Context) source(h handle) *Source {
	if b := ctx.branches.get(h); b != nil {
		return b.source
	}
	return nil
}

func (ctx *Context) state(h handle) *State {
	if b := ctx.branches.get(h); b != nil {
		return b.state
	}
	return nil
}

// emit links a tag at the end of the chain.
func (ctx *Context) emit(t *cst.Tag) {
	tracer().Debugf("emit %v", t)
	ctx.links.Append(t)
}

// releaseAll releases the forks of all live branches and destroys them.
func (ctx *Context) releaseAll() {
	ctx.branches.each(func(h handle, b *branch) {
		b.source.release()
		ctx.branches.destroy(h)
	})
}
