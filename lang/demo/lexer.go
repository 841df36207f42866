package demo

import (
	"sync"

	"github.com/stirlhoss/bablr-vm/stream"
	"github.com/stirlhoss/bablr-vm/stream/lexmach"
	"github.com/timtadh/lexmachine"
)

var tokenIds = map[string]int{
	Identifier: 1,
	Number:     2,
	Punctuator: 3,
	Quoted:     4,
	Whitespace: 5,
	Comment:    6,
	LineBreak:  7,
}

var lexer struct {
	once    sync.Once
	adapter *lexmach.LMAdapter
	err     error
}

// Lexer returns a lexmachine adapter splitting demo input into units. The
// DFA is compiled once, on first use. Strings are lexed as a single unit of
// type Quoted.
func Lexer() (*lexmach.LMAdapter, error) {
	lexer.once.Do(func() {
		init := func(lx *lexmachine.Lexer) {
			lx.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), lexmach.MakeToken(Identifier, tokenIds[Identifier]))
			lx.Add([]byte(`\-?[0-9]+(\.[0-9]+)?`), lexmach.MakeToken(Number, tokenIds[Number]))
			lx.Add([]byte(`=`), lexmach.MakeToken(Punctuator, tokenIds[Punctuator]))
			lx.Add([]byte(`\"[^"\n]*\"`), lexmach.MakeToken(Quoted, tokenIds[Quoted]))
			lx.Add([]byte(`( |\t)+`), lexmach.MakeToken(Whitespace, tokenIds[Whitespace]))
			lx.Add([]byte(`#[^\n]*`), lexmach.MakeToken(Comment, tokenIds[Comment]))
			lx.Add([]byte(`\r?\n`), lexmach.MakeToken(LineBreak, tokenIds[LineBreak]))
		}
		lexer.adapter, lexer.err = lexmach.NewLMAdapter(init, nil, nil, tokenIds)
	})
	return lexer.adapter, lexer.err
}

// Units returns an input iterator delivering the units of input.
func Units(input string) (stream.Iterator, error) {
	lm, err := Lexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lm.Scanner(input)
	if err != nil {
		return nil, err
	}
	return scanner, nil
}
