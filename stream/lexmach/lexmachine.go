package lexmach

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/stirlhoss/bablr-vm/stream"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'bablr.stream'.
func tracer() tracing.Trace {
	return tracing.Select("bablr.stream")
}

// LMAdapter is a lexmachine adapter to use lexmachine as an input stream.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	names map[int]string
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{names: make(map[int]string, len(tokenIds))}
	for name, id := range tokenIds {
		adapter.names[id] = name
	}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// stream.Iterator interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, names: lm.names, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// stream.Iterator interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	names   map[int]string
	Error   func(error)
	eof     bool
}

var _ stream.Iterator = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// Next is part of the stream.Iterator interface. Unconsumed input is reported
// to the error handler and skipped.
func (lms *LMScanner) Next() stream.Step {
	if lms.eof || lms.scanner == nil {
		return stream.EOF
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		lms.eof = true
		return stream.EOF
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("unit %s|%q", lms.names[token.Type], token.Lexeme)
	return stream.Step{Value: stream.TextUnit{
		Type:   lms.names[token.Type],
		Lexeme: string(token.Lexeme),
	}}
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
