package java

import (
	"strings"
)

// TypeModel is a (possibly generic) type reference. Names are fully
// qualified except for primitives and type variables.
type TypeModel struct {
	Name          string
	ArrayDepth    int
	TypeArguments []TypeArgumentModel
	TypeVariable  bool
}

type TypeArgumentModel struct {
	Type       *TypeModel
	IsWildcard bool
	BoundKind  string // "extends", "super", or "" for unbounded
	Bound      *TypeModel
}

// TypeOf is a shorthand for a non-generic type reference.
func TypeOf(name string, args ...TypeModel) TypeModel {
	t := TypeModel{Name: name}
	for i := range args {
		arg := args[i]
		t.TypeArguments = append(t.TypeArguments, TypeArgumentModel{Type: &arg})
	}
	return t
}

func (t TypeModel) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t TypeModel) write(sb *strings.Builder) {
	sb.WriteString(t.Name)
	if len(t.TypeArguments) > 0 {
		sb.WriteByte('<')
		for i, arg := range t.TypeArguments {
			if i > 0 {
				sb.WriteByte(',')
			}
			arg.write(sb)
		}
		sb.WriteByte('>')
	}
	for i := 0; i < t.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
}

func (a TypeArgumentModel) write(sb *strings.Builder) {
	if a.IsWildcard {
		sb.WriteByte('?')
		if a.Bound != nil {
			sb.WriteByte(' ')
			sb.WriteString(a.BoundKind)
			sb.WriteByte(' ')
			a.Bound.write(sb)
		}
		return
	}
	if a.Type != nil {
		a.Type.write(sb)
	}
}

// Key identifies a type together with its generic arguments. Two
// references with the same key denote the same instantiation.
func (t TypeModel) Key() string {
	return t.String()
}

func (t TypeModel) IsPrimitive() bool {
	if t.ArrayDepth > 0 {
		return false
	}
	return IsPrimitiveName(t.Name)
}

func IsPrimitiveName(name string) bool {
	switch name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

func (t TypeModel) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t TypeModel) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}

func (t TypeModel) ElementType() TypeModel {
	if t.ArrayDepth == 0 {
		return t
	}
	e := t
	e.ArrayDepth--
	return e
}

// Argument returns the i-th concrete type argument, if present.
func (t TypeModel) Argument(i int) (TypeModel, bool) {
	if i >= len(t.TypeArguments) {
		return TypeModel{}, false
	}
	arg := t.TypeArguments[i]
	if arg.Type != nil {
		return *arg.Type, true
	}
	if arg.Bound != nil && arg.BoundKind == "extends" {
		return *arg.Bound, true
	}
	return TypeModel{}, false
}

// Raw returns the type without generic arguments.
func (t TypeModel) Raw() TypeModel {
	return TypeModel{Name: t.Name, ArrayDepth: t.ArrayDepth, TypeVariable: t.TypeVariable}
}
