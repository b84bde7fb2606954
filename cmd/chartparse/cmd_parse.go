package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/chartparse/chart"
	"github.com/dhamidi/chartparse/format"
	"github.com/dhamidi/chartparse/tokens"
)

func newParseCmd() *cobra.Command {
	var gf grammarFlags
	var outputFormat string
	var trees bool

	cmd := &cobra.Command{
		Use:   "parse [tokens...]",
		Short: "Parse a sentence and print the chart",
		Long: `Parse a sentence and print the chart.

Each argument is split on whitespace, so both of these are the same sentence:
  chartparse parse they fish in rivers
  chartparse parse "they fish in rivers"

Output formats:
  text  - every row of every section followed by the summary (default)
  json  - the chart and derivations as a JSON document
  line  - the summary only

Environment variables:
  CHARTPARSE_GRAMMAR - default grammar file`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, privileged, err := gf.load()
			if err != nil {
				return err
			}

			var sentence []string
			for _, arg := range args {
				sentence = append(sentence, tokens.Split(arg)...)
			}

			enc, err := newEncoder(cmd.OutOrStdout(), outputFormat, trees)
			if err != nil {
				return err
			}
			return enc.Encode(sentence, chart.Parse(sentence, g, privileged))
		},
	}

	gf.register(cmd.Flags())
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text, json, line")
	cmd.Flags().BoolVarP(&trees, "trees", "t", false, "print a tree for every derivation (text format)")

	return cmd
}

func newEncoder(w io.Writer, name string, trees bool) (format.Encoder, error) {
	switch name {
	case "text":
		var opts []format.TraceOption
		if trees {
			opts = append(opts, format.WithTrees())
		}
		return format.NewTraceEncoder(w, opts...), nil
	case "json":
		return format.NewJSONEncoder(w), nil
	case "line":
		return format.NewLineEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q", name)
	}
}
