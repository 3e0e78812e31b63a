package aggregate

import (
	"context"
	"errors"
	"fmt"

	"github.com/dhamidi/saidoc/java"
)

// Methods returns the method views of t, ancestor methods first. A method
// redeclared lower in the chain with the same name and arity replaces the
// inherited one. Constructors are not included.
func (a *Aggregator) Methods(ctx context.Context, t java.TypeModel) ([]MethodView, error) {
	links, err := a.chain(ctx, t)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	visible := make([][]*java.MethodModel, len(links))
	for i, l := range links {
		for j := range l.class.Methods {
			m := &l.class.Methods[j]
			sig := fmt.Sprintf("%s/%d", m.Name, len(m.Parameters))
			if seen[sig] {
				continue
			}
			seen[sig] = true
			visible[i] = append(visible[i], m)
		}
	}

	var views []MethodView
	var errs []error
	for i := len(links) - 1; i >= 0; i-- {
		l := links[i]
		for _, m := range visible[i] {
			if err := ctx.Err(); err != nil {
				return views, err
			}
			doc, err := a.doc(l.class, methodKey(m), m.Javadoc)
			if err != nil {
				errs = append(errs, &FieldError{Field: l.class.Name + "#" + m.Name, Err: err})
				continue
			}
			// a method's own type parameters hide the class's
			bindings := l.bindings
			for _, tp := range m.TypeParameters {
				bindings = bindings.Bind(l.class.Name, tp.Name, java.TypeModel{Name: tp.Name, TypeVariable: true})
			}
			view := MethodView{
				Name:        m.Name,
				Declaring:   l.class.Name,
				ReturnType:  bindings.Substitute(m.ReturnType, l.class.Name).String(),
				IsStatic:    m.IsStatic,
				Headline:    doc.comment.Headline,
				Description: doc.comment.Description(),
				Tags:        doc.directives.Tags,
				Links:       doc.links,
				Line:        m.Line,
			}
			if ret, ok := doc.comment.Tag("return"); ok && !m.ReturnType.IsVoid() {
				view.Returns = ret.Text()
			}
			for _, p := range m.Parameters {
				pv := ParameterView{
					Name: p.Name,
					Type: bindings.Substitute(p.Type, l.class.Name).String(),
				}
				pv.Description, _ = doc.directives.ParamDoc(p.Name)
				view.Parameters = append(view.Parameters, pv)
			}
			views = append(views, view)
		}
	}
	return views, errors.Join(errs...)
}
