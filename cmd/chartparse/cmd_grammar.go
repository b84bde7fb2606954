package main

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/chartparse/grammar"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Grammar tools",
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarShowCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Load and verify an EBNF grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []grammar.LoadOption{grammar.WithVerify()}
			if start != "" {
				opts = append(opts, grammar.WithStart(start))
			}

			g, err := grammar.LoadFile(args[0], opts...)
			if err != nil {
				printErrors(cmd, err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d nonterminals, %d terminals, start %s\n",
				args[0], len(g.Nonterminals()), len(g.Terminals()), g.Start())
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "start production (default: first production in the file)")

	return cmd
}

func newGrammarShowCmd() *cobra.Command {
	var gf grammarFlags

	cmd := &cobra.Command{
		Use:          "show",
		Short:        "Print the expanded grammar and its privileged categories",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, privileged, err := gf.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, g.String())
			fmt.Fprintf(out, "\nprivileged: %v\n", privileged)
			return nil
		},
	}

	gf.register(cmd.Flags())

	return cmd
}

// printErrors prints each entry of an ebnf error list on its own line.
func printErrors(cmd *cobra.Command, err error) {
	out := cmd.ErrOrStderr()
	list := reflect.ValueOf(errors.Unwrap(err))
	if list.Kind() != reflect.Slice {
		fmt.Fprintln(out, err)
		return
	}
	for i := 0; i < list.Len(); i++ {
		fmt.Fprintln(out, list.Index(i).Interface())
	}
}
