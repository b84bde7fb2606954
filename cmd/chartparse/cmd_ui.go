package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/chartparse/ui"
)

func newUICmd() *cobra.Command {
	var gf grammarFlags
	var addr string

	cmd := &cobra.Command{
		Use:          "ui",
		Short:        "Start the chart viewer web server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, privileged, err := gf.load()
			if err != nil {
				return err
			}
			server, err := ui.NewServer(g, privileged)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Starting server at http://%s\n", displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	gf.register(cmd.Flags())
	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")

	return cmd
}
