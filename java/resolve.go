package java

import "strings"

// ResolveInnerClassReferences rewrites type references of the form
// pkg.Simple to pkg.Outer.Simple when Simple names a nested class declared
// in another compilation unit of the same package. The source front end
// resolves one file at a time and cannot see nested classes of its
// siblings, so this runs after a whole scan.
func ResolveInnerClassReferences(classes []*ClassModel) {
	known := knownClasses(classes)

	inner := make(map[string]string)
	for _, c := range classes {
		if c.EnclosingClass == "" || c.Package == "" {
			continue
		}
		guess := c.Package + "." + c.SimpleName
		if known[guess] {
			continue
		}
		if _, dup := inner[guess]; dup {
			// ambiguous between two outer classes
			inner[guess] = ""
			continue
		}
		inner[guess] = c.Name
	}

	for _, c := range classes {
		rewriteTypes(c, func(t *TypeModel) {
			if full := inner[t.Name]; full != "" {
				t.Name = full
			}
		})
	}
}

// ResolveWildcardReferences rewrites references the front end qualified
// with the class's own package when the class is unknown there but is
// declared in a package the class imports with a wildcard.
func ResolveWildcardReferences(classes []*ClassModel) {
	known := knownClasses(classes)
	for _, c := range classes {
		var wildcards []string
		for _, imp := range c.Imports {
			if imp.IsWildcard && !imp.IsStatic {
				wildcards = append(wildcards, imp.QualifiedName)
			}
		}
		if len(wildcards) == 0 {
			continue
		}
		prefix := c.Package + "."
		rewriteTypes(c, func(t *TypeModel) {
			if known[t.Name] || !strings.HasPrefix(t.Name, prefix) {
				return
			}
			simple := t.Name[len(prefix):]
			for _, pkg := range wildcards {
				if candidate := pkg + "." + simple; known[candidate] {
					t.Name = candidate
					return
				}
			}
		})
	}
}

func knownClasses(classes []*ClassModel) map[string]bool {
	known := make(map[string]bool, len(classes))
	for _, c := range classes {
		known[c.Name] = true
	}
	return known
}

// rewriteTypes applies fix to every non-variable type reference declared
// by c, including nested type arguments.
func rewriteTypes(c *ClassModel, fix func(*TypeModel)) {
	visit := func(t *TypeModel) { visitTypeModel(t, fix) }
	if c.SuperType != nil {
		visit(c.SuperType)
	}
	for i := range c.Interfaces {
		visit(&c.Interfaces[i])
	}
	for i := range c.Fields {
		visit(&c.Fields[i].Type)
	}
	for _, methods := range [][]MethodModel{c.Methods, c.Constructors} {
		for i := range methods {
			visit(&methods[i].ReturnType)
			for j := range methods[i].Parameters {
				visit(&methods[i].Parameters[j].Type)
			}
		}
	}
	for i := range c.TypeParameters {
		for j := range c.TypeParameters[i].Bounds {
			visit(&c.TypeParameters[i].Bounds[j])
		}
	}
}

func visitTypeModel(t *TypeModel, fix func(*TypeModel)) {
	if !t.TypeVariable {
		fix(t)
	}
	for i := range t.TypeArguments {
		if t.TypeArguments[i].Type != nil {
			visitTypeModel(t.TypeArguments[i].Type, fix)
		}
		if t.TypeArguments[i].Bound != nil {
			visitTypeModel(t.TypeArguments[i].Bound, fix)
		}
	}
}
