package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/stirlhoss/bablr-vm/cst"
	"github.com/stirlhoss/bablr-vm/engine"
	"github.com/stirlhoss/bablr-vm/lang/demo"
	"github.com/stirlhoss/bablr-vm/stream"
)

// Intp is our interpreter object
type Intp struct {
	repl   *readline.Instance
	lex    bool // pre-tokenize input
	digest bool // print CST digests
	last   *engine.Result
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if line == ":lex" {
			intp.lex = !intp.lex
			pterm.Info.Println(fmt.Sprintf("pre-tokenize input: %v", intp.lex))
			continue
		}
		intp.Eval(line)
	}
	println("Good bye!")
}

// Eval parses a document and prints its CST.
func (intp *Intp) Eval(input string) error {
	r, err := intp.parse(input)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	intp.last = r
	if !r.OK {
		pterm.Error.Println("input is not a document")
		return fmt.Errorf("input is not a document")
	}
	if r.Context.Links().Len() > 0 {
		pterm.DefaultTree.WithRoot(treeFrom(r.Context.Links())).Render()
	}
	if !r.Complete {
		pterm.Info.Println(fmt.Sprintf("parse stopped after %d input items", r.Consumed))
	}
	if intp.digest {
		d, err := r.Digest()
		if err != nil {
			pterm.Error.Println(err.Error())
			return err
		}
		pterm.Info.Println("digest " + d)
	}
	return nil
}

func (intp *Intp) parse(input string) (*engine.Result, error) {
	var it stream.Iterator = stream.Runes(input)
	if intp.lex {
		units, err := demo.Units(input)
		if err != nil {
			return nil, err
		}
		it = units
	}
	return demo.ParseInput(it)
}

// treeFrom creates a pterm tree from the tags of a CST. Close tags are
// implied by the nesting.
func treeFrom(links *cst.Links) pterm.TreeNode {
	ll := pterm.LeveledList{}
	links.Walk(func(t *cst.Tag, depth int) {
		var text string
		switch t.Kind {
		case cst.CloseTag:
			return
		case cst.OpenTag:
			text = t.Type
			if t.Gap != "" {
				text += " ⊂ " + t.Gap
			}
			if len(t.Attrs) > 0 {
				text += " " + t.Attrs.Format()
			}
		case cst.TokenTag:
			text = fmt.Sprintf("%s %q", t.Type, t.Text)
		}
		ll = append(ll, pterm.LeveledListItem{Level: depth, Text: text})
	})
	tracer().Debugf("|ll| = %d", len(ll))
	return pterm.NewTreeFromLeveledList(ll)
}
