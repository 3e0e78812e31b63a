package aggregate

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"github.com/dhamidi/saidoc/java"
	"github.com/dhamidi/saidoc/java/javadoc"
	"github.com/dhamidi/saidoc/java/link"
	"github.com/dhamidi/saidoc/java/source"
)

// chainLink is one class of an inheritance chain together with the
// bindings in effect for its type parameters.
type chainLink struct {
	class    *java.ClassModel
	bindings java.Bindings
}

// chain returns t's class followed by its superclasses, most derived
// first. The walk stops at unknown classes and at classes already seen.
func (a *Aggregator) chain(ctx context.Context, t java.TypeModel) ([]chainLink, error) {
	if t.IsArray() || t.IsPrimitive() || t.TypeVariable {
		return nil, &UnknownTypeError{Name: t.String()}
	}
	class, ok := a.table.Class(t.Name)
	if !ok {
		return nil, &UnknownTypeError{Name: t.Name}
	}

	bindings := java.Bindings{}.BindClass(class, t)
	links := []chainLink{{class: class, bindings: bindings}}
	seen := map[string]bool{class.Name: true}
	for class.SuperType != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		super := bindings.Substitute(*class.SuperType, class.Name)
		next, ok := a.table.Class(super.Name)
		if !ok || seen[next.Name] {
			break
		}
		seen[next.Name] = true
		bindings = bindings.BindClass(next, super)
		class = next
		links = append(links, chainLink{class: class, bindings: bindings})
	}
	return links, nil
}

func (a *Aggregator) fieldView(links []chainLink, i int, f *java.FieldModel) (FieldView, error) {
	l := links[i]
	doc, err := a.doc(l.class, f.Name, f.Javadoc)
	if err != nil {
		return FieldView{}, err
	}
	d := doc.directives

	typ := l.bindings.Substitute(f.Type, l.class.Name)
	if d.Type != "" {
		typ = a.directiveType(l.class, d.Type)
	}

	description := joinDescription(doc.comment.Description(), f.EOLComment)
	if l.class.Kind == java.ClassKindRecord {
		description = joinDescription(a.componentDoc(l.class, f.Name), description)
	}

	view := FieldView{
		Name:        d.ApplyName(f.Name),
		FieldName:   f.Name,
		Declaring:   l.class.Name,
		Type:        typ,
		TypeName:    typ.String(),
		Headline:    doc.comment.Headline,
		Description: description,
		Desc:        d.Desc,
		Single:      d.Single,
		Modules:     d.Modules,
		Tags:        d.Tags,
		Links:       doc.links,
		Line:        f.Line,
		expand:      d.Unwrapped,
	}
	if declared := f.Type.String(); declared != view.TypeName {
		view.DeclaredType = declared
	}

	if d.Ignore {
		view.IgnoredForRead = true
		view.IgnoredForWrite = true
	}
	if a.accessorIgnored(links, getterNames(f.Name), 0) {
		view.IgnoredForRead = true
	}
	if a.accessorIgnored(links, []string{"set" + capitalize(f.Name)}, 1) {
		view.IgnoredForWrite = true
	}

	if enum, ok := a.enumClass(typ); ok {
		view.EnumValues = a.enumValues(enum)
	}
	return view, nil
}

// componentDoc returns what the record's own comment says about the
// component name through @param.
func (a *Aggregator) componentDoc(record *java.ClassModel, name string) string {
	doc, err := a.doc(record, "", record.Javadoc)
	if err != nil {
		log.Debugf("%s: %s", record.Name, err)
		return ""
	}
	text, _ := doc.directives.ParamDoc(name)
	return text
}

// directiveType parses the argument of @type and qualifies every class
// name in it from the declaring class. Unknown names are kept as written.
func (a *Aggregator) directiveType(scope *java.ClassModel, expr string) java.TypeModel {
	t, err := source.ParseType(expr)
	if err != nil {
		log.Warningf("%s: bad @type %q: %s", scope.Name, expr, err)
		return java.TypeModel{Name: expr}
	}
	return a.qualify(scope, t)
}

func (a *Aggregator) qualify(scope *java.ClassModel, t java.TypeModel) java.TypeModel {
	if !java.IsPrimitiveName(t.Name) && t.Name != "void" {
		if sym, ok := a.table.Resolve(scope, t.Name); ok && sym.Kind == java.SymbolClass {
			t.Name = sym.QualifiedName
		}
	}
	if len(t.TypeArguments) == 0 {
		return t
	}
	args := make([]java.TypeArgumentModel, len(t.TypeArguments))
	for i, arg := range t.TypeArguments {
		if arg.Type != nil {
			q := a.qualify(scope, *arg.Type)
			arg.Type = &q
		}
		if arg.Bound != nil {
			q := a.qualify(scope, *arg.Bound)
			arg.Bound = &q
		}
		args[i] = arg
	}
	t.TypeArguments = args
	return t
}

// accessorIgnored reports whether a method with one of names and the given
// arity anywhere in the chain carries @ignore.
func (a *Aggregator) accessorIgnored(links []chainLink, names []string, arity int) bool {
	for _, l := range links {
		for _, name := range names {
			for _, m := range l.class.MethodsNamed(name) {
				if len(m.Parameters) != arity || m.Javadoc == "" {
					continue
				}
				doc, err := a.doc(l.class, methodKey(m), m.Javadoc)
				if err != nil {
					log.Debugf("%s.%s: %s", l.class.Name, name, err)
					continue
				}
				if doc.directives.Ignore {
					return true
				}
			}
		}
	}
	return false
}

// enumClass finds the enum a field of type t enumerates: t itself, the
// element of an array or the argument of a single-argument generic type.
func (a *Aggregator) enumClass(t java.TypeModel) (*java.ClassModel, bool) {
	candidate := t.ElementType()
	if candidate.IsArray() {
		return nil, false
	}
	if len(candidate.TypeArguments) == 1 {
		if arg, ok := candidate.Argument(0); ok && !arg.IsArray() {
			if c, ok := a.table.Class(arg.Name); ok && c.IsEnum() {
				return c, true
			}
		}
	}
	c, ok := a.table.Class(candidate.Name)
	if !ok || !c.IsEnum() {
		return nil, false
	}
	return c, true
}

// memberDoc is the parsed and interpreted comment of one member.
type memberDoc struct {
	once       sync.Once
	comment    javadoc.Comment
	directives javadoc.Directives
	links      []link.Reference
	err        error
}

// doc parses and interprets raw once per class member.
func (a *Aggregator) doc(class *java.ClassModel, member, raw string) (*memberDoc, error) {
	v, _ := a.docs.LoadOrStore(class.Name+"#"+member, &memberDoc{})
	d := v.(*memberDoc)
	d.once.Do(func() {
		if strings.TrimSpace(raw) == "" {
			return
		}
		d.comment, d.err = javadoc.Parse(raw, a.notation)
		if d.err != nil {
			return
		}
		d.directives = javadoc.Interpret(d.comment)
		d.links = a.links.Resolve(d.comment, class)
	})
	return d, d.err
}

func methodKey(m *java.MethodModel) string {
	var sb strings.Builder
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	for i, p := range m.Parameters {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(p.Type.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func joinDescription(doc, eol string) string {
	eol = strings.TrimSpace(eol)
	switch {
	case doc == "":
		return eol
	case eol == "":
		return doc
	}
	return doc + "\n" + eol
}

func getterNames(field string) []string {
	c := capitalize(field)
	return []string{"get" + c, "is" + c}
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
