package enumconst

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/saidoc/java"
)

var log = commonlog.GetLogger("saidoc.enumconst")

type NoMatchingConstructorError struct {
	Constant string
	Args     []string
}

func (e *NoMatchingConstructorError) Error() string {
	return fmt.Sprintf("no constructor matches %s(%s)", e.Constant, strings.Join(e.Args, ", "))
}

// Param is one constructor parameter bound to an argument value. A variadic
// parameter collects all trailing arguments into a []any.
type Param struct {
	Name     string
	Type     java.TypeModel
	Value    any
	Variadic bool
}

// ResolvedArgs is the result of matching one enum constant against the
// enum's constructors. Constructor is nil for the implicit no-arg
// constructor of an enum that declares none.
type ResolvedArgs struct {
	Constant    java.EnumConstantModel
	Constructor *java.MethodModel
	Args        []Literal
	Params      []Param
}

// Bindings maps parameter names to their bound values.
func (r *ResolvedArgs) Bindings() map[string]any {
	m := make(map[string]any, len(r.Params))
	for _, p := range r.Params {
		m[p.Name] = p.Value
	}
	return m
}

// Resolve picks the constructor the constant's argument list invokes.
// Candidates are filtered by arity, then scored per argument. A match that
// needs no variadic expansion always beats one that does; among the rest
// the cheapest candidate wins and ties go to the one declared first.
func Resolve(constant java.EnumConstantModel, candidates []java.MethodModel) (*ResolvedArgs, error) {
	args := make([]Literal, len(constant.Arguments))
	for i, text := range constant.Arguments {
		args[i] = ParseLiteral(text)
	}
	res := &ResolvedArgs{Constant: constant, Args: args}

	if len(candidates) == 0 {
		if len(args) == 0 {
			return res, nil
		}
		return nil, &NoMatchingConstructorError{Constant: constant.Name, Args: constant.Arguments}
	}

	best, bestCost, variadic := -1, 0, false
	for i := range candidates {
		cost, expand, ok := score(args, candidates[i].Parameters)
		if !ok {
			continue
		}
		if best < 0 || better(expand, cost, variadic, bestCost) {
			best, bestCost, variadic = i, cost, expand
		}
	}
	if best < 0 {
		return nil, &NoMatchingConstructorError{Constant: constant.Name, Args: constant.Arguments}
	}

	ctor := &candidates[best]
	res.Constructor = ctor
	res.Params = bind(args, ctor.Parameters, variadic)
	log.Debugf("%s binds to constructor %d of %d (cost %d)", constant.Name, best+1, len(candidates), bestCost)
	return res, nil
}

// score returns the cost of calling params with args and whether the call
// needs a variadic expansion.
func score(args []Literal, params []java.ParameterModel) (int, bool, bool) {
	n := len(params)
	if len(args) == n {
		if cost, ok := fixedCost(args, params); ok {
			return cost, false, true
		}
	}
	if n == 0 || !params[n-1].IsVarargs || len(args) < n-1 {
		return 0, false, false
	}
	cost, ok := fixedCost(args[:n-1], params[:n-1])
	if !ok {
		return 0, false, false
	}
	elem := params[n-1].Type.ElementType()
	for _, arg := range args[n-1:] {
		c, ok := argCost(arg, elem)
		if !ok {
			return 0, false, false
		}
		cost += c
	}
	return cost, true, true
}

// better orders candidates by (needs variadic expansion, cost).
func better(expand bool, cost int, bestExpand bool, bestCost int) bool {
	if expand != bestExpand {
		return !expand
	}
	return cost < bestCost
}

func fixedCost(args []Literal, params []java.ParameterModel) (int, bool) {
	total := 0
	for i, arg := range args {
		c, ok := argCost(arg, params[i].Type)
		if !ok {
			return 0, false
		}
		total += c
	}
	return total, true
}

var widening = map[LiteralKind][]string{
	LiteralChar:  {"int", "long", "float", "double"},
	LiteralInt:   {"long", "float", "double"},
	LiteralLong:  {"float", "double"},
	LiteralFloat: {"double"},
}

var boxes = map[LiteralKind]string{
	LiteralChar:    "java.lang.Character",
	LiteralInt:     "java.lang.Integer",
	LiteralLong:    "java.lang.Long",
	LiteralFloat:   "java.lang.Float",
	LiteralDouble:  "java.lang.Double",
	LiteralBoolean: "java.lang.Boolean",
}

// argCost scores passing arg to a parameter of type t: 0 for an exact
// match, 1 for widening or null, 2 for boxing, Object or an opaque
// expression.
func argCost(arg Literal, t java.TypeModel) (int, bool) {
	if arg.Kind == LiteralExpression {
		return 2, true
	}
	if arg.Kind == LiteralNull {
		if t.Name == "java.lang.Object" {
			return 2, true
		}
		return 1, !t.IsPrimitive()
	}
	if t.IsArray() {
		return 0, false
	}
	if t.TypeVariable {
		return 2, true
	}
	if t.IsPrimitive() {
		if string(arg.Kind) == t.Name {
			return 0, true
		}
		for _, to := range widening[arg.Kind] {
			if to == t.Name {
				return 1, true
			}
		}
		return 0, false
	}

	switch t.Name {
	case "java.lang.Object", "java.io.Serializable":
		return 2, true
	case "java.lang.String":
		return 0, arg.Kind == LiteralString
	case "java.lang.CharSequence":
		return 2, arg.Kind == LiteralString
	case "java.lang.Comparable":
		return 2, arg.Kind == LiteralString || boxes[arg.Kind] != ""
	case "java.lang.Number":
		switch arg.Kind {
		case LiteralInt, LiteralLong, LiteralFloat, LiteralDouble:
			return 2, true
		}
		return 0, false
	}
	if box, ok := boxes[arg.Kind]; ok && box == t.Name {
		return 2, true
	}
	return 0, false
}

func bind(args []Literal, params []java.ParameterModel, variadic bool) []Param {
	bound := make([]Param, len(params))
	for i, p := range params {
		bound[i] = Param{Name: p.Name, Type: p.Type}
		if variadic && i == len(params)-1 {
			elem := p.Type.ElementType()
			values := make([]any, 0, len(args)-i)
			for _, arg := range args[i:] {
				values = append(values, coerce(arg.Value, elem))
			}
			bound[i].Value = values
			bound[i].Variadic = true
			continue
		}
		bound[i].Value = coerce(args[i].Value, p.Type)
	}
	return bound
}

// EnumValue is one constant of an enum together with the field values its
// constructor assigns.
type EnumValue struct {
	Name    string         `json:"name" yaml:"name"`
	Ordinal int            `json:"ordinal" yaml:"ordinal"`
	Fields  map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// ResolveEnum resolves every constant of class. A constant that cannot be
// resolved is still listed, without fields, and its error is joined into
// the returned error.
func ResolveEnum(class *java.ClassModel) ([]EnumValue, error) {
	values := make([]EnumValue, 0, len(class.EnumConstants))
	var errs []error
	for _, ec := range class.EnumConstants {
		v := EnumValue{Name: ec.Name, Ordinal: ec.Ordinal}
		res, err := Resolve(ec, class.Constructors)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", class.Name, ec.Name, err))
			values = append(values, v)
			continue
		}
		fields, err := Evaluate(class, res)
		if err != nil {
			log.Warningf("%s.%s: %s, copying constructor arguments", class.Name, ec.Name, err)
			fields = res.Bindings()
		}
		addGetters(class, fields)
		v.Fields = Normalize(fields).(map[string]any)
		values = append(values, v)
	}
	return values, errors.Join(errs...)
}
