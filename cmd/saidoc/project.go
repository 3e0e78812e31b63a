package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/saidoc/java"
	"github.com/dhamidi/saidoc/java/aggregate"
	"github.com/dhamidi/saidoc/java/codebase"
	"github.com/dhamidi/saidoc/java/link"
	"github.com/dhamidi/saidoc/java/source"
)

// scan indexes the sources below the project root. Files that fail to
// parse are reported as warnings.
func (g *globals) scan(ctx context.Context) (*codebase.Codebase, error) {
	cb, err := codebase.New(g.root,
		codebase.WithInclude(g.cfg.Paths.Include...),
		codebase.WithExclude(g.cfg.Paths.Exclude...),
	)
	if err != nil {
		return nil, err
	}
	if err := cb.ScanAll(ctx, g.cfg.Jobs); err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		printWarnings(err)
	}
	return cb, nil
}

func (g *globals) aggregator(index *java.Index) *aggregate.Aggregator {
	return aggregate.New(index,
		aggregate.WithNotation(g.commentNotation()),
		aggregate.WithLinkResolver(link.NewResolver(index)),
	)
}

// resolveType parses expr and qualifies its class names. A simple name
// matches the indexed class with that simple name when there is exactly
// one.
func resolveType(index *java.Index, expr string) (java.TypeModel, error) {
	t, err := source.ParseType(expr)
	if err != nil {
		return java.TypeModel{}, err
	}
	return qualifyType(index, t)
}

func qualifyType(index *java.Index, t java.TypeModel) (java.TypeModel, error) {
	if !java.IsPrimitiveName(t.Name) {
		c, err := findClass(index, t.Name)
		if err != nil {
			return java.TypeModel{}, err
		}
		t.Name = c.Name
	}
	for i, arg := range t.TypeArguments {
		if arg.Type == nil {
			continue
		}
		q, err := qualifyType(index, *arg.Type)
		if err != nil {
			return java.TypeModel{}, err
		}
		t.TypeArguments[i].Type = &q
	}
	return t, nil
}

func findClass(index *java.Index, name string) (*java.ClassModel, error) {
	if c, ok := index.Class(name); ok {
		return c, nil
	}
	var matches []string
	var found *java.ClassModel
	for _, c := range index.Classes() {
		if c.SimpleName == name || strings.HasSuffix(c.Name, "."+name) {
			matches = append(matches, c.Name)
			found = c
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no class named %s", name)
	case 1:
		return found, nil
	}
	sort.Strings(matches)
	return nil, fmt.Errorf("%s is ambiguous: %s", name, strings.Join(matches, ", "))
}

// withURLs points resolved symbol links at javadoc pages below baseURL.
func withURLs(index *java.Index, baseURL string, refs []link.Reference) []link.Reference {
	if baseURL == "" {
		return refs
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	for i, ref := range refs {
		sym := ref.Resolution.Symbol
		if sym == nil {
			continue
		}
		className, anchor := sym.QualifiedName, ""
		if sym.IsMember() {
			className, anchor = sym.Declaring, "#"+sym.Name
		}
		c, ok := index.Class(className)
		if !ok {
			continue
		}
		page := c.Name
		if c.Package != "" {
			page = strings.ReplaceAll(c.Package, ".", "/") + "/" + strings.TrimPrefix(c.Name, c.Package+".")
		}
		refs[i].Resolution.URL = baseURL + "/" + page + ".html" + anchor
	}
	return refs
}
