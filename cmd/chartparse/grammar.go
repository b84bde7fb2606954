package main

import (
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dhamidi/chartparse/grammar"
)

// grammarFlags are shared by every command that parses sentences.
type grammarFlags struct {
	file       string
	start      string
	privileged []string
}

func (f *grammarFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.file, "grammar", "g", os.Getenv("CHARTPARSE_GRAMMAR"), "EBNF grammar file (default: built-in demo grammar, or $CHARTPARSE_GRAMMAR)")
	flags.StringVarP(&f.start, "start", "s", "", "start production (default: first production in the file)")
	flags.StringSliceVarP(&f.privileged, "privileged", "p", nil, "lexical categories matched against tokens; a category is only tried where a predicted row expects it, one level below the dot (default: all lexical categories)")
}

// load returns the grammar and privileged set selected by the flags.
func (f *grammarFlags) load() (*grammar.Grammar, []grammar.Symbol, error) {
	var g *grammar.Grammar
	var privileged []grammar.Symbol

	if f.file == "" {
		g = grammar.Toy()
		privileged = grammar.ToyPrivileged()
	} else {
		var opts []grammar.LoadOption
		if f.start != "" {
			opts = append(opts, grammar.WithStart(f.start))
		}
		loaded, err := grammar.LoadFile(f.file, opts...)
		if err != nil {
			return nil, nil, err
		}
		g = loaded
		privileged = g.LexicalCategories()
	}

	if len(f.privileged) > 0 {
		privileged = privileged[:0:0]
		for _, p := range f.privileged {
			if p = strings.TrimSpace(p); p != "" {
				privileged = append(privileged, grammar.Symbol(p))
			}
		}
	}
	return g, privileged, nil
}
