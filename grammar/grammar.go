package grammar

import (
	"errors"
	"fmt"
	"sort"

	"github.com/emirpasic/gods/sets/treeset"
)

// Kind is the category of a grammar.
type Kind int8

// Grammar kinds.
const (
	NodeKind Kind = iota
	TokenKind
)

func (k Kind) String() string {
	if k == TokenKind {
		return "token"
	}
	return "node"
}

// Grammar holds the productions for the types of one kind, together with the
// subtype relation between them. Every type of a grammar is a subtype of the
// grammar's root type. Aliases are types as well, but never emit a tag.
//
// Grammars are immutable once built.
type Grammar struct {
	kind        Kind
	root        string
	productions map[string]Production
	supertypes  map[string]*treeset.Set // type → transitive supertypes
	aliases     *treeset.Set
}

// Kind returns the kind of the grammar.
func (g *Grammar) Kind() Kind {
	return g.kind
}

// Root returns the root type of the grammar.
func (g *Grammar) Root() string {
	return g.root
}

// IsSubtypeOf is a predicate: is typ equal to super or a subtype of it?
func (g *Grammar) IsSubtypeOf(super, typ string) bool {
	if g == nil {
		return false
	}
	if typ == super {
		_, ok := g.productions[typ]
		return ok || typ == g.root
	}
	sup, ok := g.supertypes[typ]
	return ok && sup.Contains(super)
}

// IsType is a predicate: is typ a type of this grammar?
func (g *Grammar) IsType(typ string) bool {
	return g.IsSubtypeOf(g.root, typ)
}

// IsAlias is a predicate: is typ an alias?
func (g *Grammar) IsAlias(typ string) bool {
	return g != nil && g.aliases.Contains(typ)
}

// Production returns the production for typ.
func (g *Grammar) Production(typ string) (Production, bool) {
	if g == nil {
		return nil, false
	}
	p, ok := g.productions[typ]
	return p, ok
}

// Types returns all types of the grammar, sorted.
func (g *Grammar) Types() []string {
	types := make([]string, 0, len(g.productions))
	for typ := range g.productions {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// --- Builder ---------------------------------------------------------------

// Builder is a helper for constructing grammars.
type Builder struct {
	kind         Kind
	root         string
	productions  map[string]Production
	aliases      map[string][]string
	transformers []Transformer
	errs         []error
}

// NewBuilder creates a builder for a grammar of kind k with root type root.
func NewBuilder(k Kind, root string) *Builder {
	return &Builder{
		kind:        k,
		root:        root,
		productions: make(map[string]Production),
		aliases:     make(map[string][]string),
	}
}

// Define sets the production of a type.
func (b *Builder) Define(typ string, p Production) *Builder {
	if _, ok := b.productions[typ]; ok {
		b.errs = append(b.errs, fmt.Errorf("type %q defined twice", typ))
	}
	if typ == "" || typ == b.root || p == nil {
		b.errs = append(b.errs, fmt.Errorf("invalid definition for type %q", typ))
	}
	b.productions[typ] = p
	return b
}

// Alias declares alias to stand for any of members. If no production is
// defined for alias, it matches the first member which matches.
func (b *Builder) Alias(alias string, members ...string) *Builder {
	if len(members) == 0 {
		b.errs = append(b.errs, fmt.Errorf("alias %q has no members", alias))
	}
	b.aliases[alias] = append(b.aliases[alias], members...)
	return b
}

// Use registers production transformers. The first transformer registered
// is the outermost one.
func (b *Builder) Use(transformers ...Transformer) *Builder {
	b.transformers = append(b.transformers, transformers...)
	return b
}

// Grammar checks the definitions, computes the subtype relation, applies
// the transformers and returns the grammar.
func (b *Builder) Grammar() (*Grammar, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	g := &Grammar{
		kind:        b.kind,
		root:        b.root,
		productions: make(map[string]Production, len(b.productions)+len(b.aliases)),
		supertypes:  make(map[string]*treeset.Set),
		aliases:     treeset.NewWithStringComparator(),
	}
	parents := make(map[string][]string) // direct supertypes
	for typ, p := range b.productions {
		g.productions[typ] = p
		parents[typ] = append(parents[typ], b.root)
	}
	for alias, members := range b.aliases {
		if _, ok := b.productions[alias]; !ok {
			g.productions[alias] = aliasProduction(b.kind, members)
			parents[alias] = append(parents[alias], b.root)
		}
		g.aliases.Add(alias)
		for _, m := range members {
			if _, ok := b.productions[m]; !ok {
				if _, ok = b.aliases[m]; !ok {
					return nil, fmt.Errorf("alias %q refers to undefined type %q", alias, m)
				}
			}
			parents[m] = append(parents[m], alias)
		}
	}
	for typ := range g.productions {
		sup, err := closure(typ, parents)
		if err != nil {
			return nil, err
		}
		g.supertypes[typ] = sup
	}
	for i := len(b.transformers) - 1; i >= 0; i-- {
		for typ, p := range g.productions {
			g.productions[typ] = b.transformers[i](typ, p)
		}
	}
	tracer().Debugf("%s grammar %q with %d types", g.kind, g.root, len(g.productions))
	return g, nil
}

var errAliasCycle = errors.New("cyclic alias definition")

// closure collects the transitive supertypes of typ.
func closure(typ string, parents map[string][]string) (*treeset.Set, error) {
	sup := treeset.NewWithStringComparator()
	todo := append([]string{}, parents[typ]...)
	for len(todo) > 0 {
		t := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if t == typ {
			return nil, fmt.Errorf("type %q: %w", typ, errAliasCycle)
		}
		if sup.Contains(t) {
			continue
		}
		sup.Add(t)
		todo = append(todo, parents[t]...)
	}
	return sup, nil
}

// --- Languages -------------------------------------------------------------

// Language is a pair of grammars, one for nodes and one for tokens.
type Language struct {
	Name     string
	grammars map[Kind]*Grammar
}

// NewLanguage creates a language from grammars. A node grammar is required,
// and there may be at most one grammar per kind.
func NewLanguage(name string, grammars ...*Grammar) (*Language, error) {
	lang := &Language{Name: name, grammars: make(map[Kind]*Grammar, 2)}
	for _, g := range grammars {
		if g == nil {
			continue
		}
		if _, ok := lang.grammars[g.kind]; ok {
			return nil, fmt.Errorf("language %q: duplicate %s grammar", name, g.kind)
		}
		lang.grammars[g.kind] = g
	}
	if _, ok := lang.grammars[NodeKind]; !ok {
		return nil, fmt.Errorf("language %q: missing node grammar", name)
	}
	return lang, nil
}

// Grammar returns the grammar for kind k, or nil.
func (lang *Language) Grammar(k Kind) *Grammar {
	return lang.grammars[k]
}

// Kinds returns the kinds of grammars present in the language.
func (lang *Language) Kinds() []Kind {
	kinds := make([]Kind, 0, len(lang.grammars))
	for _, k := range []Kind{NodeKind, TokenKind} {
		if _, ok := lang.grammars[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
