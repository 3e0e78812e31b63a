package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/saidoc/java"
	"github.com/dhamidi/saidoc/java/javadoc"
	"github.com/dhamidi/saidoc/java/link"
)

func newLinksCmd(g *globals) *cobra.Command {
	var rewrite bool

	cmd := &cobra.Command{
		Use:   "links <Type>[#member]",
		Short: "List the links in the documentation of a class or member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cb, err := g.scan(cmd.Context())
			if err != nil {
				return err
			}
			index := cb.Index()

			typeName, member, _ := strings.Cut(args[0], "#")
			class, err := findClass(index, typeName)
			if err != nil {
				return err
			}
			raw, err := memberJavadoc(class, member)
			if err != nil {
				return err
			}
			c, err := javadoc.Parse(raw, g.commentNotation())
			if err != nil {
				return err
			}

			resolver := link.NewResolver(index)
			if rewrite {
				text := resolver.Rewrite(c, class, func(ref link.Reference) string {
					refs := withURLs(index, g.cfg.Links.BaseURL, []link.Reference{ref})
					if url := refs[0].Resolution.URL; url != "" {
						return fmt.Sprintf("[%s](%s)", ref.Label(), url)
					}
					return ref.Label()
				})
				_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			}

			refs := withURLs(index, g.cfg.Links.BaseURL, resolver.Resolve(c, class))
			enc, err := g.encoder(cmd)
			if err != nil {
				return err
			}
			return enc.Encode(refs)
		},
	}

	cmd.Flags().BoolVar(&rewrite, "rewrite", false, "print the description with links rendered as Markdown")

	return cmd
}

// memberJavadoc returns the raw comment of class or of its named member.
// Overloaded methods yield the first documented overload.
func memberJavadoc(class *java.ClassModel, member string) (string, error) {
	if member == "" {
		return class.Javadoc, nil
	}
	if f, ok := class.Field(member); ok {
		return f.Javadoc, nil
	}
	if ec, ok := class.EnumConstant(member); ok {
		return ec.Javadoc, nil
	}
	methods := class.MethodsNamed(member)
	for _, m := range methods {
		if m.Javadoc != "" {
			return m.Javadoc, nil
		}
	}
	if len(methods) > 0 {
		return "", nil
	}
	return "", fmt.Errorf("%s has no member %s", class.Name, member)
}
