package source

import (
	"strings"

	"github.com/dhamidi/saidoc/java"
)

// docBefore returns the documentation comment attached to the declaration
// whose first token is the code token at index at: the nearest preceding
// /** */ comment or run of /// lines, with only other comments in between.
func (p *parser) docBefore(at int) string {
	if at >= len(p.code) {
		return ""
	}
	var run []string
	line := 0
	for j := p.code[at] - 1; j >= 0 && p.all[j].IsComment(); j-- {
		t := p.all[j]
		if t.Kind == TokenComment {
			if len(run) > 0 {
				break
			}
			if strings.HasPrefix(t.Literal, "/**") && t.Literal != "/**/" {
				return t.Literal
			}
			continue
		}
		trailing := j > 0 && !t.NewlineBefore
		if strings.HasPrefix(t.Literal, "///") && !trailing {
			if len(run) > 0 && t.Start.Line != line-1 {
				break
			}
			run = append(run, t.Literal)
			line = t.Start.Line
			continue
		}
		if len(run) > 0 || trailing {
			break
		}
	}
	for i, j := 0, len(run)-1; i < j; i, j = i+1, j-1 {
		run[i], run[j] = run[j], run[i]
	}
	return strings.Join(run, "\n")
}

// eolComment returns the text of a // comment on the same line as the
// token just consumed.
func (p *parser) eolComment() string {
	if p.pos == 0 {
		return ""
	}
	k := p.code[p.pos-1] + 1
	if k >= len(p.all) {
		return ""
	}
	t := p.all[k]
	if t.Kind != TokenLineComment || t.NewlineBefore {
		return ""
	}
	return strings.TrimSpace(strings.TrimLeft(t.Literal, "/"))
}

var javaLangTypes = map[string]bool{
	"Object": true, "String": true, "Class": true, "System": true,
	"Throwable": true, "Exception": true, "RuntimeException": true, "Error": true,
	"Integer": true, "Long": true, "Short": true, "Byte": true,
	"Float": true, "Double": true, "Character": true, "Boolean": true,
	"Number": true, "Comparable": true, "CharSequence": true,
	"Iterable": true, "Cloneable": true, "Runnable": true,
	"Thread": true, "StringBuilder": true, "StringBuffer": true,
	"Math": true, "Enum": true, "Record": true, "Void": true,
	"Override": true, "Deprecated": true, "SuppressWarnings": true, "FunctionalInterface": true,
}

// typeResolver qualifies the names written in one compilation unit. Names
// that could come from a wildcard import fall back to the file's package;
// java.ResolveWildcardReferences corrects them once all files are known.
type typeResolver struct {
	pkg     string
	imports []java.ImportModel
	classes map[string]*java.ClassModel
}

func (p *parser) resolveTypes() {
	r := &typeResolver{pkg: p.pkg, imports: p.imports, classes: make(map[string]*java.ClassModel, len(p.classes))}
	for _, c := range p.classes {
		r.classes[c.Name] = c
	}
	for _, c := range p.classes {
		vars := r.typeVariables(c)
		if c.SuperType != nil {
			t := r.resolveType(*c.SuperType, c, vars)
			c.SuperType = &t
		}
		for i := range c.Interfaces {
			c.Interfaces[i] = r.resolveType(c.Interfaces[i], c, vars)
		}
		r.resolveBounds(c.TypeParameters, c, vars)
		for i := range c.Fields {
			c.Fields[i].Type = r.resolveType(c.Fields[i].Type, c, vars)
		}
		for _, methods := range [][]java.MethodModel{c.Methods, c.Constructors} {
			for i := range methods {
				r.resolveMethod(&methods[i], c, vars)
			}
		}
	}
}

func (r *typeResolver) resolveMethod(m *java.MethodModel, c *java.ClassModel, vars map[string]bool) {
	if len(m.TypeParameters) > 0 {
		scoped := make(map[string]bool, len(vars)+len(m.TypeParameters))
		for name := range vars {
			scoped[name] = true
		}
		for _, tp := range m.TypeParameters {
			scoped[tp.Name] = true
		}
		vars = scoped
		r.resolveBounds(m.TypeParameters, c, vars)
	}
	m.ReturnType = r.resolveType(m.ReturnType, c, vars)
	for i := range m.Parameters {
		m.Parameters[i].Type = r.resolveType(m.Parameters[i].Type, c, vars)
	}
}

func (r *typeResolver) resolveBounds(params []java.TypeParameterModel, c *java.ClassModel, vars map[string]bool) {
	for i := range params {
		for j := range params[i].Bounds {
			params[i].Bounds[j] = r.resolveType(params[i].Bounds[j], c, vars)
		}
	}
}

// typeVariables collects the type parameters visible in c: its own and
// those of its enclosing classes.
func (r *typeResolver) typeVariables(c *java.ClassModel) map[string]bool {
	vars := make(map[string]bool)
	for cur := c; cur != nil; cur = r.classes[cur.EnclosingClass] {
		for _, tp := range cur.TypeParameters {
			vars[tp.Name] = true
		}
	}
	return vars
}

func (r *typeResolver) resolveType(t java.TypeModel, scope *java.ClassModel, vars map[string]bool) java.TypeModel {
	if vars[t.Name] {
		t.TypeVariable = true
	} else {
		t.Name = r.resolve(t.Name, scope)
	}
	if len(t.TypeArguments) == 0 {
		return t
	}
	args := make([]java.TypeArgumentModel, len(t.TypeArguments))
	for i, arg := range t.TypeArguments {
		if arg.Type != nil {
			resolved := r.resolveType(*arg.Type, scope, vars)
			arg.Type = &resolved
		}
		if arg.Bound != nil {
			resolved := r.resolveType(*arg.Bound, scope, vars)
			arg.Bound = &resolved
		}
		args[i] = arg
	}
	t.TypeArguments = args
	return t
}

func (r *typeResolver) resolve(name string, scope *java.ClassModel) string {
	if name == "" || name == "void" || java.IsPrimitiveName(name) {
		return name
	}
	head, rest := name, ""
	if i := strings.IndexByte(name, '.'); i >= 0 {
		head, rest = name[:i], name[i:]
	}

	for cur := scope; cur != nil; cur = r.classes[cur.EnclosingClass] {
		if cur.SimpleName == head {
			return cur.Name + rest
		}
		if _, ok := r.classes[cur.Name+"."+head]; ok {
			return cur.Name + "." + head + rest
		}
	}

	for _, imp := range r.imports {
		if imp.IsWildcard || imp.IsStatic {
			continue
		}
		if java.SimpleNameOf(imp.QualifiedName) == head {
			return imp.QualifiedName + rest
		}
	}

	if rest != "" && head[0] >= 'a' && head[0] <= 'z' {
		// already qualified
		return name
	}
	if javaLangTypes[head] {
		return "java.lang." + head + rest
	}
	return r.qualify(head) + rest
}

func (r *typeResolver) qualify(name string) string {
	if r.pkg == "" {
		return name
	}
	return r.pkg + "." + name
}
