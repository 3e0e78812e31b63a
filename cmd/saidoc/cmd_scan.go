package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/saidoc/java"
)

func newScanCmd(g *globals) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Parse the project sources and list the classes found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			start := time.Now()
			cb, err := g.scan(ctx)
			if err != nil {
				return err
			}

			var classes []*java.ClassModel
			for _, path := range cb.Paths() {
				if f := cb.GetFile(path).File; f != nil {
					classes = append(classes, f.Classes...)
				}
			}

			enc, err := g.encoder(cmd)
			if err != nil {
				return err
			}
			if err := enc.Encode(classes); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "%s %d classes in %d files (%s)\n",
				headerColor.Sprint("scanned"), len(classes), len(cb.Paths()), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "abort the scan after this long")

	return cmd
}
