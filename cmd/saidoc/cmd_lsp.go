package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/saidoc/java/codebase"
)

func newLSPCmd(g *globals) *cobra.Command {
	var poll time.Duration

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start a language server answering hovers with documentation metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := codebase.NewLSPServer(version, codebase.LSPOptions{
				Include:  g.cfg.Paths.Include,
				Exclude:  g.cfg.Paths.Exclude,
				Jobs:     g.cfg.Jobs,
				Notation: g.commentNotation(),
				Poll:     poll,
			})
			return server.RunStdio()
		},
	}

	cmd.Flags().DurationVar(&poll, "poll", 2*time.Second, "interval for picking up changed files, 0 to disable")

	return cmd
}
