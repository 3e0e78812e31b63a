package aggregate

import (
	"fmt"
	"strings"

	"github.com/dhamidi/saidoc/java"
	"github.com/dhamidi/saidoc/java/enumconst"
	"github.com/dhamidi/saidoc/java/javadoc"
	"github.com/dhamidi/saidoc/java/link"
)

// FieldView is the documented shape of one field after inheritance,
// generic substitution, tag directives and @unwrapped expansion.
type FieldView struct {
	// Name is the effective name, with @prefix and @suffix applied.
	Name      string         `json:"name" yaml:"name"`
	FieldName string         `json:"fieldName" yaml:"fieldName"`
	Declaring string         `json:"declaring" yaml:"declaring"`
	Type      java.TypeModel `json:"-" yaml:"-"`
	TypeName  string         `json:"type" yaml:"type"`
	// DeclaredType is the type as written in source when it differs from
	// Type because of substitution or @type.
	DeclaredType string `json:"declaredType,omitempty" yaml:"declaredType,omitempty"`

	Headline    string `json:"headline,omitempty" yaml:"headline,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Desc        string `json:"desc,omitempty" yaml:"desc,omitempty"`

	Single          bool   `json:"single,omitempty" yaml:"single,omitempty"`
	IgnoredForRead  bool   `json:"ignoredForRead,omitempty" yaml:"ignoredForRead,omitempty"`
	IgnoredForWrite bool   `json:"ignoredForWrite,omitempty" yaml:"ignoredForWrite,omitempty"`
	Unwrapped       bool   `json:"unwrapped,omitempty" yaml:"unwrapped,omitempty"`
	UnwrappedFrom   string `json:"unwrappedFrom,omitempty" yaml:"unwrappedFrom,omitempty"`

	Modules    []javadoc.ModuleGroup `json:"modules,omitempty" yaml:"modules,omitempty"`
	Tags       map[string][]string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Links      []link.Reference      `json:"links,omitempty" yaml:"links,omitempty"`
	EnumValues []enumconst.EnumValue `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`
	Line       int                   `json:"line,omitempty" yaml:"line,omitempty"`

	expand bool
}

// MethodView is the documented shape of one method as seen from the
// aggregated type.
type MethodView struct {
	Name        string              `json:"name" yaml:"name"`
	Declaring   string              `json:"declaring" yaml:"declaring"`
	ReturnType  string              `json:"returnType" yaml:"returnType"`
	Parameters  []ParameterView     `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Returns     string              `json:"returns,omitempty" yaml:"returns,omitempty"`
	IsStatic    bool                `json:"static,omitempty" yaml:"static,omitempty"`
	Headline    string              `json:"headline,omitempty" yaml:"headline,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        map[string][]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Links       []link.Reference    `json:"links,omitempty" yaml:"links,omitempty"`
	Line        int                 `json:"line,omitempty" yaml:"line,omitempty"`
}

type ParameterView struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// CyclicUnwrapError reports an @unwrapped field whose type is already
// being expanded further up. Path lists the type keys from the outermost
// type to the repeated one.
type CyclicUnwrapError struct {
	Field string
	Path  []string
}

func (e *CyclicUnwrapError) Error() string {
	return fmt.Sprintf("cyclic @unwrapped at %s: %s", e.Field, strings.Join(e.Path, " -> "))
}

// FieldError attaches the declaring field to a failure scoped to it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
