package java

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
	ClassKindRecord     ClassKind = "record"
)

// ClassModel is the declaration of a class, interface, enum or record as it
// was read from source. Models are built once per parse pass and treated as
// immutable afterwards.
type ClassModel struct {
	Name           string // fully qualified, nested classes as Outer.Inner
	SimpleName     string
	Package        string
	SourceFile     string
	Kind           ClassKind
	Visibility     Visibility
	IsAbstract     bool
	IsStatic       bool
	IsFinal        bool
	Javadoc        string
	Line           int
	EndLine        int
	SuperType      *TypeModel
	Interfaces     []TypeModel
	TypeParameters []TypeParameterModel
	Imports        []ImportModel
	EnclosingClass string
	InnerClasses   []string
	EnumConstants  []EnumConstantModel
	Fields         []FieldModel
	Methods        []MethodModel
	Constructors   []MethodModel
}

// ImportModel is one import declaration of the compilation unit a class was
// declared in.
type ImportModel struct {
	QualifiedName string // for wildcard imports the package name
	IsStatic      bool
	IsWildcard    bool
}

type EnumConstantModel struct {
	Name       string
	Arguments  []string // literal source text of each argument
	HasArgList bool
	Ordinal    int
	Javadoc    string
	Line       int
}

type FieldModel struct {
	Name        string
	Type        TypeModel
	Visibility  Visibility
	IsStatic    bool
	IsFinal     bool
	IsTransient bool
	Javadoc     string
	EOLComment  string
	Line        int
}

// MethodModel describes a method or, when IsConstructor is set, a
// constructor. Body holds the source text between the outer braces.
type MethodModel struct {
	Name           string
	ReturnType     TypeModel
	Parameters     []ParameterModel
	Visibility     Visibility
	IsStatic       bool
	IsAbstract     bool
	IsConstructor  bool
	IsVarargs      bool
	Javadoc        string
	Body           string
	HasBody        bool
	TypeParameters []TypeParameterModel
	Line           int
}

type ParameterModel struct {
	Name      string
	Type      TypeModel
	IsFinal   bool
	IsVarargs bool
}

type TypeParameterModel struct {
	Name   string
	Bounds []TypeModel
}

// SimpleNameOf returns the last dotted component of a qualified name.
func SimpleNameOf(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}

// PackageOf returns everything before the last dotted component.
func PackageOf(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return ""
}

func (c *ClassModel) IsEnum() bool {
	return c.Kind == ClassKindEnum
}

func (c *ClassModel) IsInterface() bool {
	return c.Kind == ClassKindInterface || c.Kind == ClassKindAnnotation
}

// Field returns the declared field with the given name.
func (c *ClassModel) Field(name string) (*FieldModel, bool) {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i], true
		}
	}
	return nil, false
}

// MethodsNamed returns all declared methods with the given name in source
// order.
func (c *ClassModel) MethodsNamed(name string) []*MethodModel {
	var result []*MethodModel
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			result = append(result, &c.Methods[i])
		}
	}
	return result
}

// EnumConstant returns the enum constant with the given name.
func (c *ClassModel) EnumConstant(name string) (*EnumConstantModel, bool) {
	for i := range c.EnumConstants {
		if c.EnumConstants[i].Name == name {
			return &c.EnumConstants[i], true
		}
	}
	return nil, false
}

// TypeParameterNames returns the names of the class's type parameters in
// declaration order.
func (c *ClassModel) TypeParameterNames() []string {
	names := make([]string, len(c.TypeParameters))
	for i, tp := range c.TypeParameters {
		names[i] = tp.Name
	}
	return names
}
