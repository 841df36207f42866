package grammar

import (
	"fmt"
	"regexp"

	bablr "github.com/stirlhoss/bablr-vm"
	"github.com/stirlhoss/bablr-vm/cst"
)

// --- Matchables ------------------------------------------------------------

// MatchableKind tells the engine what to match.
type MatchableKind int8

// Kinds of matchables. Node and token matchables dispatch into the production
// of their type, string and regex matchables are matched against the input
// directly.
const (
	NodeMatcher MatchableKind = iota + 1
	TokenMatcher
	StringMatcher
	RegexMatcher
)

func (k MatchableKind) String() string {
	switch k {
	case NodeMatcher:
		return "NodeMatcher"
	case TokenMatcher:
		return "TokenMatcher"
	case StringMatcher:
		return "StringMatcher"
	case RegexMatcher:
		return "RegexMatcher"
	}
	return fmt.Sprintf("MatchableKind(%d)", int(k))
}

// Matchable is the pattern of a match instruction.
type Matchable struct {
	Kind    MatchableKind
	Type    string         // node/token type
	Attrs   bablr.Attrs    // node/token attributes
	Pattern string         // string matchers
	Regexp  *regexp.Regexp // regex matchers, anchored
}

// Node is a matchable for a node of type typ.
func Node(typ string, attrs bablr.Attrs) Matchable {
	return Matchable{Kind: NodeMatcher, Type: typ, Attrs: attrs}
}

// Tok is a matchable for a token of type typ.
func Tok(typ string, attrs bablr.Attrs) Matchable {
	return Matchable{Kind: TokenMatcher, Type: typ, Attrs: attrs}
}

// Str is a matchable for a literal string.
func Str(s string) Matchable {
	return Matchable{Kind: StringMatcher, Pattern: s}
}

// Re is a matchable for a regular expression. The expression is anchored at
// the current input position. Re panics if pattern does not compile.
func Re(pattern string) Matchable {
	return Regex(regexp.MustCompile(pattern))
}

// Regex is a matchable for a compiled regular expression, which will be
// anchored at the current input position.
func Regex(re *regexp.Regexp) Matchable {
	return Matchable{
		Kind:    RegexMatcher,
		Pattern: re.String(),
		Regexp:  regexp.MustCompile(`^(?:` + re.String() + `)`),
	}
}

func (m Matchable) String() string {
	switch m.Kind {
	case NodeMatcher, TokenMatcher:
		if len(m.Attrs) > 0 {
			return fmt.Sprintf("%s(%s %v)", m.Kind, m.Type, m.Attrs)
		}
		return fmt.Sprintf("%s(%s)", m.Kind, m.Type)
	case StringMatcher:
		return fmt.Sprintf("%q", m.Pattern)
	case RegexMatcher:
		return "/" + m.Pattern + "/"
	}
	return m.Kind.String()
}

// --- Effects ---------------------------------------------------------------

// SuccessEffect determines what happens to input consumed by a successful match.
type SuccessEffect int8

// FailureEffect determines what happens to a production whose match failed.
type FailureEffect int8

const (
	// EatInput consumes the matched input.
	EatInput SuccessEffect = iota
	// Lookahead reports success, but leaves input and tags untouched.
	Lookahead
)

const (
	// FailBranch rejects the branch of the production.
	FailBranch FailureEffect = iota
	// Continue resumes the production with a failed result.
	Continue
)

// Effects of a match instruction.
type Effects struct {
	Success SuccessEffect
	Failure FailureEffect
}

// --- Instructions ----------------------------------------------------------

// InstrKind is the kind of an instruction.
type InstrKind int8

// Kinds of instructions.
const (
	MatchInstr InstrKind = iota + 1
	FailInstr
	DoneInstr
)

func (k InstrKind) String() string {
	switch k {
	case MatchInstr:
		return "match"
	case FailInstr:
		return "fail"
	case DoneInstr:
		return "done"
	}
	return fmt.Sprintf("InstrKind(%d)", int(k))
}

// Instruction is yielded by a production to the engine.
type Instruction struct {
	Kind      InstrKind
	Matchable Matchable
	Effects   Effects
	Value     interface{} // DoneInstr: return value of the production
}

func (instr Instruction) String() string {
	switch instr.Kind {
	case MatchInstr:
		return fmt.Sprintf("match %v %v", instr.Matchable, instr.Effects)
	case DoneInstr:
		return fmt.Sprintf("done %v", instr.Value)
	}
	return instr.Kind.String()
}

// Eat matches m and consumes it. If m does not match, the branch fails.
func Eat(m Matchable) Instruction {
	return Instruction{Kind: MatchInstr, Matchable: m, Effects: Effects{EatInput, FailBranch}}
}

// EatMatch matches m and consumes it. If m does not match, the production
// continues with a failed result.
func EatMatch(m Matchable) Instruction {
	return Instruction{Kind: MatchInstr, Matchable: m, Effects: Effects{EatInput, Continue}}
}

// Match tests if m matches, without consuming input.
func Match(m Matchable) Instruction {
	return Instruction{Kind: MatchInstr, Matchable: m, Effects: Effects{Lookahead, Continue}}
}

// Guard tests if m matches, without consuming input. If m does not match, the
// branch fails.
func Guard(m Matchable) Instruction {
	return Instruction{Kind: MatchInstr, Matchable: m, Effects: Effects{Lookahead, FailBranch}}
}

// Fail rejects the branch of the production.
func Fail() Instruction {
	return Instruction{Kind: FailInstr}
}

// Done terminates the production successfully, returning v.
func Done(v interface{}) Instruction {
	return Instruction{Kind: DoneInstr, Value: v}
}

// --- Results ---------------------------------------------------------------

// Result is what a production is resumed with after an instruction.
type Result struct {
	OK    bool
	Text  string      // text of a string or regex match
	Span  bablr.Span  // input positions covered by the match
	Range cst.Range   // tags emitted by a node or token match
	Value interface{} // value returned by the nested production
}
