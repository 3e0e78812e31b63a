package java

// GenericBinding resolves a type parameter declared by scope to the concrete
// type bound to it.
type GenericBinding interface {
	Resolve(param, scope string) (TypeModel, bool)
}

type bindingKey struct {
	scope string
	param string
}

// Bindings maps type parameters, identified by their declaring class and
// name, to concrete types. The zero value is ready to use; Bind returns a
// copy so a map can be shared between ancestors of different chains.
type Bindings struct {
	m map[bindingKey]TypeModel
}

// Bind returns a copy of b extended with param of scope bound to t.
func (b Bindings) Bind(scope, param string, t TypeModel) Bindings {
	m := make(map[bindingKey]TypeModel, len(b.m)+1)
	for k, v := range b.m {
		m[k] = v
	}
	m[bindingKey{scope: scope, param: param}] = t
	return Bindings{m: m}
}

func (b Bindings) Resolve(param, scope string) (TypeModel, bool) {
	t, ok := b.m[bindingKey{scope: scope, param: param}]
	return t, ok
}

func (b Bindings) Len() int {
	return len(b.m)
}

// Substitute replaces every type variable in t that has a binding in scope.
// Unbound variables are left in place.
func (b Bindings) Substitute(t TypeModel, scope string) TypeModel {
	if t.TypeVariable {
		bound, ok := b.Resolve(t.Name, scope)
		if !ok {
			return t
		}
		bound.ArrayDepth += t.ArrayDepth
		return bound
	}
	if len(t.TypeArguments) == 0 {
		return t
	}
	out := t
	out.TypeArguments = make([]TypeArgumentModel, len(t.TypeArguments))
	for i, arg := range t.TypeArguments {
		if arg.Type != nil {
			sub := b.Substitute(*arg.Type, scope)
			arg.Type = &sub
		}
		if arg.Bound != nil {
			sub := b.Substitute(*arg.Bound, scope)
			arg.Bound = &sub
		}
		out.TypeArguments[i] = arg
	}
	return out
}

// BindClass binds the type parameters of class to the arguments carried by
// t. Missing arguments (raw use) leave parameters unbound.
func (b Bindings) BindClass(class *ClassModel, t TypeModel) Bindings {
	for i, tp := range class.TypeParameters {
		arg, ok := t.Argument(i)
		if !ok {
			continue
		}
		b = b.Bind(class.Name, tp.Name, arg)
	}
	return b
}
