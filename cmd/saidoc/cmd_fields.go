package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/saidoc/java"
)

func newFieldsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <Type>...",
		Short: "Aggregate the documented fields of one or more types",
		Long: `Aggregate the documented fields of one or more types.

A type is a class name, simple or qualified, optionally with type
arguments such as 'Result<UserInfo>'. Inherited fields, @unwrapped
fields and enum options are included.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := g.scan(cmd.Context())
			if err != nil {
				return err
			}
			index := cb.Index()

			types := make([]java.TypeModel, len(args))
			for i, arg := range args {
				if types[i], err = resolveType(index, arg); err != nil {
					return err
				}
			}

			results, err := g.aggregator(index).FieldsAll(cmd.Context(), types, g.cfg.Jobs)
			printWarnings(err)

			enc, err := g.encoder(cmd)
			if err != nil {
				return err
			}
			for i, views := range results {
				if len(results) > 1 && g.cfg.Output.Format == "text" {
					headerColor.Fprintln(cmd.OutOrStdout(), types[i].String())
				}
				if err := enc.Encode(views); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
