package main

import (
	"github.com/spf13/cobra"
)

func newMethodsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "methods <Type>",
		Short: "List the documented methods of a type, inherited ones included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := g.scan(cmd.Context())
			if err != nil {
				return err
			}
			index := cb.Index()

			t, err := resolveType(index, args[0])
			if err != nil {
				return err
			}
			methods, err := g.aggregator(index).Methods(cmd.Context(), t)
			printWarnings(err)

			enc, err := g.encoder(cmd)
			if err != nil {
				return err
			}
			return enc.Encode(methods)
		},
	}
}
