package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/saidoc/java/enumconst"
)

func newEnumCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "enum <Type>",
		Short: "Resolve the constructor of every constant of an enum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := g.scan(cmd.Context())
			if err != nil {
				return err
			}
			class, err := findClass(cb.Index(), args[0])
			if err != nil {
				return err
			}
			if !class.IsEnum() {
				return fmt.Errorf("%s is a %s, not an enum", class.Name, class.Kind)
			}

			values, err := enumconst.ResolveEnum(class)
			printWarnings(err)

			enc, err := g.encoder(cmd)
			if err != nil {
				return err
			}
			return enc.Encode(values)
		},
	}
}
