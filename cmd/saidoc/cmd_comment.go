package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/saidoc/java/javadoc"
)

type commentOutput struct {
	Comment    javadoc.Comment    `json:"comment" yaml:"comment"`
	Directives javadoc.Directives `json:"directives" yaml:"directives"`
}

func newCommentCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "comment [file]",
		Short: "Tokenize a documentation comment read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			raw, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("reading comment: %w", err)
			}

			c, err := javadoc.Parse(string(raw), g.commentNotation())
			if err != nil {
				return err
			}

			enc, err := g.encoder(cmd)
			if err != nil {
				return err
			}
			if g.cfg.Output.Format == "text" {
				return enc.Encode(c)
			}
			return enc.Encode(commentOutput{Comment: c, Directives: javadoc.Interpret(c)})
		},
	}
}
