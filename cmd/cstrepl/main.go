package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type options struct {
	trace  string
	lex    bool
	digest bool
	file   string
	batch  bool
}

func main() {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "cstrepl [input …]",
		Short: "Parse demo documents and display their concrete syntax tree",
		Long: `Parse demo documents and display their concrete syntax tree.

Input given as arguments or with --file is parsed first. Then cstrepl
reads lines interactively, parsing each one. Quit with <ctrl>D.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args)
		},
		SilenceUsage: true,
	}
	flags := rootCmd.Flags()
	flags.StringVar(&opts.trace, "trace", "Info", "Trace level [Debug|Info|Error]")
	flags.BoolVar(&opts.lex, "lex", false, "Pre-tokenize input with a lexmachine scanner")
	flags.BoolVar(&opts.digest, "digest", false, "Print a digest of every CST")
	flags.StringVarP(&opts.file, "file", "f", "", "Parse a file before going interactive")
	flags.BoolVarP(&opts.batch, "batch", "b", false, "Do not go interactive after parsing the input")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts *options, args []string) error {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to CSTREPL")  // colored welcome message
	tracer().Infof("Trace level is %s", opts.trace)
	level := tracing.TraceLevelFromString(opts.trace)
	tracer().SetTraceLevel(level)
	for _, key := range []string{"bablr.engine", "bablr.stream", "bablr.grammar", "bablr.cst", "bablr.lang"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	intp := &Intp{lex: opts.lex, digest: opts.digest}
	input := strings.TrimSpace(strings.Join(args, " "))
	if opts.file != "" {
		content, err := ioutil.ReadFile(opts.file)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		input = string(content)
	}
	if input != "" {
		tracer().Infof("Input argument is %q", input)
		if err := intp.Eval(input); err != nil {
			if opts.batch {
				return err
			}
		}
	}
	if opts.batch {
		return nil
	}
	// set up REPL
	repl, err := readline.New("cst> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                         // go into interactive mode
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
