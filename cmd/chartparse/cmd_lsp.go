package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/chartparse/lsp"
)

const version = "0.1.0"

func newLSPCmd() *cobra.Command {
	var gf grammarFlags

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start a language server on stdio. Every line of an open document is
parsed as a sentence; rejected lines are reported as errors and ambiguous
lines as information diagnostics.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, privileged, err := gf.load()
			if err != nil {
				return err
			}
			return lsp.NewServer(version, g, privileged).RunStdio()
		},
	}

	gf.register(cmd.Flags())

	return cmd
}
