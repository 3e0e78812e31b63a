package enumconst

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/dhamidi/saidoc/java"
	"github.com/dhamidi/saidoc/java/source"
)

var ErrUnsupported = errors.New("unsupported constructor body")

// Evaluate runs the body of the chosen constructor against the bound
// arguments and returns the resulting field values. It understands field
// and local assignments, compound assignment, enhanced for loops over a
// collected variadic argument, arithmetic, string concatenation and
// String.valueOf. Any other construct yields an error wrapping
// ErrUnsupported; callers then fall back to Bindings.
func Evaluate(class *java.ClassModel, r *ResolvedArgs) (map[string]any, error) {
	if r.Constructor == nil || strings.TrimSpace(r.Constructor.Body) == "" {
		return r.Bindings(), nil
	}

	e := &evaluator{class: class, vars: make(map[string]*variable), fields: make(map[string]any)}
	for _, tok := range source.Tokenize(r.Constructor.Body) {
		if !tok.IsComment() {
			e.toks = append(e.toks, tok)
		}
	}
	for _, p := range r.Params {
		e.vars[p.Name] = &variable{typ: p.Type, value: p.Value}
	}
	for !e.eof() {
		if err := e.statement(); err != nil {
			return nil, err
		}
	}
	return e.fields, nil
}

type variable struct {
	typ   java.TypeModel
	value any
}

type evaluator struct {
	class  *java.ClassModel
	toks   []source.Token
	pos    int
	vars   map[string]*variable
	fields map[string]any
}

func (e *evaluator) eof() bool {
	return e.pos >= len(e.toks)
}

func (e *evaluator) peek(n int) source.Token {
	if e.pos+n >= len(e.toks) {
		return source.Token{Kind: source.TokenEOF}
	}
	return e.toks[e.pos+n]
}

func (e *evaluator) tok() source.Token {
	return e.peek(0)
}

func (e *evaluator) next() source.Token {
	t := e.tok()
	e.pos++
	return t
}

func (e *evaluator) is(literal string) bool {
	return e.tok().Is(literal)
}

func (e *evaluator) expect(literal string) error {
	if !e.is(literal) {
		return e.unsupported()
	}
	e.next()
	return nil
}

func (e *evaluator) ident() (string, error) {
	if e.tok().Kind != source.TokenIdent {
		return "", e.unsupported()
	}
	return e.next().Literal, nil
}

func (e *evaluator) unsupported() error {
	t := e.tok()
	if t.Kind == source.TokenEOF {
		return fmt.Errorf("%w: unexpected end of body", ErrUnsupported)
	}
	return fmt.Errorf("%w: %q at line %d", ErrUnsupported, t.Literal, t.Start.Line)
}

func (e *evaluator) statement() error {
	t := e.tok()
	switch {
	case t.Is(";"):
		e.next()
		return nil
	case t.Is("{"):
		e.next()
		for !e.is("}") {
			if e.eof() {
				return e.unsupported()
			}
			if err := e.statement(); err != nil {
				return err
			}
		}
		e.next()
		return nil
	case t.Is("for"):
		return e.forEach()
	case t.Is("this") && e.peek(1).Is("."):
		e.next()
		e.next()
		name, err := e.ident()
		if err != nil {
			return err
		}
		return e.assign(name, true)
	case t.Is("final"):
		e.next()
		return e.declaration()
	case e.isDeclaration():
		return e.declaration()
	case t.Kind == source.TokenIdent:
		e.next()
		return e.assign(t.Literal, false)
	}
	return e.unsupported()
}

func (e *evaluator) isDeclaration() bool {
	t := e.tok()
	if t.Kind == source.TokenKeyword && java.IsPrimitiveName(t.Literal) {
		return true
	}
	if t.Kind != source.TokenIdent {
		return false
	}
	next := e.peek(1)
	return next.Kind == source.TokenIdent || (next.Is("[") && e.peek(2).Is("]"))
}

func (e *evaluator) localType() (java.TypeModel, error) {
	t := e.next()
	if t.Kind != source.TokenIdent && !(t.Kind == source.TokenKeyword && java.IsPrimitiveName(t.Literal)) {
		return java.TypeModel{}, e.unsupported()
	}
	typ := java.TypeModel{Name: t.Literal}
	for e.is("[") && e.peek(1).Is("]") {
		e.next()
		e.next()
		typ.ArrayDepth++
	}
	return typ, nil
}

func (e *evaluator) declaration() error {
	typ, err := e.localType()
	if err != nil {
		return err
	}
	for {
		name, err := e.ident()
		if err != nil {
			return err
		}
		v := &variable{typ: typ}
		if e.is("=") {
			e.next()
			value, err := e.expr()
			if err != nil {
				return err
			}
			v.value = coerce(value, typ)
		}
		e.vars[name] = v
		if !e.is(",") {
			break
		}
		e.next()
	}
	return e.expect(";")
}

func (e *evaluator) assign(name string, field bool) error {
	op := e.next()
	var value any
	switch op.Literal {
	case "++", "--":
		value = int64(1)
	case "=", "+=", "-=", "*=", "/=":
		var err error
		if value, err = e.expr(); err != nil {
			return err
		}
	default:
		e.pos--
		return e.unsupported()
	}
	if err := e.expect(";"); err != nil {
		return err
	}

	local, isLocal := e.vars[name]
	isLocal = isLocal && !field

	if op.Literal != "=" {
		var current any
		if isLocal {
			current = local.value
		} else if v, ok := e.fields[name]; ok {
			current = v
		} else {
			return fmt.Errorf("%w: %s read before assignment", ErrUnsupported, name)
		}
		var err error
		if value, err = binary(op.Literal[:1], current, value); err != nil {
			return err
		}
	}

	if isLocal {
		local.value = coerce(value, local.typ)
		return nil
	}
	if f, ok := e.class.Field(name); ok {
		value = coerce(value, f.Type)
	}
	e.fields[name] = value
	return nil
}

func (e *evaluator) forEach() error {
	e.next()
	if err := e.expect("("); err != nil {
		return err
	}
	if e.is("final") {
		e.next()
	}
	typ, err := e.localType()
	if err != nil {
		return err
	}
	name, err := e.ident()
	if err != nil {
		return err
	}
	if err := e.expect(":"); err != nil {
		return err
	}
	iterable, err := e.expr()
	if err != nil {
		return err
	}
	if err := e.expect(")"); err != nil {
		return err
	}
	items, ok := iterable.([]any)
	if !ok {
		return fmt.Errorf("%w: for over %T", ErrUnsupported, iterable)
	}

	body := e.pos
	if len(items) == 0 {
		return e.skipStatement()
	}
	for _, item := range items {
		e.pos = body
		e.vars[name] = &variable{typ: typ, value: coerce(item, typ)}
		if err := e.statement(); err != nil {
			return err
		}
	}
	return nil
}

func (e *evaluator) skipStatement() error {
	depth := 0
	for !e.eof() {
		t := e.next()
		switch {
		case t.Is("{"):
			depth++
		case t.Is("}"):
			depth--
			if depth == 0 {
				return nil
			}
		case t.Is(";") && depth == 0:
			return nil
		}
	}
	return e.unsupported()
}

func (e *evaluator) expr() (any, error) {
	left, err := e.term()
	if err != nil {
		return nil, err
	}
	for e.is("+") || e.is("-") {
		op := e.next().Literal
		right, err := e.term()
		if err != nil {
			return nil, err
		}
		if left, err = binary(op, left, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (e *evaluator) term() (any, error) {
	left, err := e.unary()
	if err != nil {
		return nil, err
	}
	for e.is("*") || e.is("/") || e.is("%") {
		op := e.next().Literal
		right, err := e.unary()
		if err != nil {
			return nil, err
		}
		if left, err = binary(op, left, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (e *evaluator) unary() (any, error) {
	switch {
	case e.is("-"):
		e.next()
		v, err := e.unary()
		if err != nil {
			return nil, err
		}
		return binary("-", int64(0), v)
	case e.is("+"):
		e.next()
		return e.unary()
	case e.is("(") && e.peek(2).Is(")") && e.peek(1).Kind == source.TokenKeyword && java.IsPrimitiveName(e.peek(1).Literal):
		e.next()
		typ := java.TypeModel{Name: e.next().Literal}
		e.next()
		v, err := e.unary()
		if err != nil {
			return nil, err
		}
		return coerce(v, typ), nil
	}
	return e.primary()
}

func (e *evaluator) primary() (any, error) {
	t := e.tok()
	switch {
	case t.IsLiteral():
		e.next()
		lit := ParseLiteral(t.Literal)
		if lit.Kind == LiteralExpression {
			return nil, e.unsupported()
		}
		return lit.Value, nil
	case t.Is("("):
		e.next()
		v, err := e.expr()
		if err != nil {
			return nil, err
		}
		return v, e.expect(")")
	case t.Is("this") && e.peek(1).Is("."):
		e.next()
		e.next()
		name, err := e.ident()
		if err != nil {
			return nil, err
		}
		return e.field(name)
	case t.Kind == source.TokenIdent && t.Literal == "String" && e.peek(1).Is(".") && e.peek(2).Literal == "valueOf":
		e.pos += 3
		if err := e.expect("("); err != nil {
			return nil, err
		}
		v, err := e.expr()
		if err != nil {
			return nil, err
		}
		return javaString(v), e.expect(")")
	case t.Kind == source.TokenIdent:
		e.next()
		if e.is(".") || e.is("(") {
			e.pos--
			return nil, e.unsupported()
		}
		if v, ok := e.vars[t.Literal]; ok {
			return v.value, nil
		}
		return e.field(t.Literal)
	}
	return nil, e.unsupported()
}

func (e *evaluator) field(name string) (any, error) {
	if v, ok := e.fields[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s read before assignment", ErrUnsupported, name)
}

// binary applies op with Java's binary numeric promotion. '+' with a
// string operand concatenates.
func binary(op string, a, b any) (any, error) {
	if op == "+" {
		_, as := a.(string)
		_, bs := b.(string)
		if as || bs {
			return javaString(a) + javaString(b), nil
		}
	}
	if r, ok := a.(rune); ok {
		a = int64(r)
	}
	if r, ok := b.(rune); ok {
		b = int64(r)
	}

	switch {
	case isKind[float64](a) || isKind[float64](b):
		x, y, ok := asFloat(a, b)
		if !ok {
			break
		}
		return floatOp(op, x, y)
	case isKind[float32](a) || isKind[float32](b):
		x, y, ok := asFloat(a, b)
		if !ok {
			break
		}
		v, err := floatOp(op, float64(float32(x)), float64(float32(y)))
		if err != nil {
			return nil, err
		}
		return float32(v.(float64)), nil
	default:
		x, xok := a.(int64)
		y, yok := b.(int64)
		if !xok || !yok {
			break
		}
		switch op {
		case "+":
			return x + y, nil
		case "-":
			return x - y, nil
		case "*":
			return x * y, nil
		case "/", "%":
			if y == 0 {
				return nil, fmt.Errorf("%w: division by zero", ErrUnsupported)
			}
			if op == "/" {
				return x / y, nil
			}
			return x % y, nil
		}
	}
	return nil, fmt.Errorf("%w: %T %s %T", ErrUnsupported, a, op, b)
}

func isKind[T any](v any) bool {
	_, ok := v.(T)
	return ok
}

func asFloat(a, b any) (float64, float64, bool) {
	x, xok := toFloat(a)
	y, yok := toFloat(b)
	return x, y, xok && yok
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func floatOp(op string, x, y float64) (any, error) {
	switch op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		return x / y, nil
	case "%":
		return math.Mod(x, y), nil
	}
	return nil, fmt.Errorf("%w: operator %s", ErrUnsupported, op)
}

// coerce converts v to the representation of type t: int64 for integral
// types, float32 for float, float64 for double and rune for char.
func coerce(v any, t java.TypeModel) any {
	if t.IsArray() || v == nil {
		return v
	}
	switch java.SimpleNameOf(t.Name) {
	case "int", "long", "short", "byte", "Integer", "Long", "Short", "Byte":
		switch n := v.(type) {
		case float32:
			return int64(n)
		case float64:
			return int64(n)
		case rune:
			return int64(n)
		}
	case "float", "Float":
		if f, ok := toFloat(v); ok {
			return float32(f)
		}
		if r, ok := v.(rune); ok {
			return float32(r)
		}
	case "double", "Double":
		if f, ok := toFloat(v); ok {
			return f
		}
		if r, ok := v.(rune); ok {
			return float64(r)
		}
	case "char", "Character":
		if n, ok := v.(int64); ok {
			return rune(n)
		}
	}
	return v
}

// javaString renders v the way String.valueOf would.
func javaString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case rune:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case float32:
		return formatJavaFloat(round(float64(x), 7))
	case float64:
		return formatJavaFloat(round(x, 15))
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = javaString(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprint(v)
}

func formatJavaFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	s := strconv.FormatFloat(f, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	n, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(n)
}

// round keeps digits significant decimal digits of f.
func round(f float64, digits int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'g', digits, 64), 64)
	if err != nil {
		return f
	}
	return r
}

// Normalize converts evaluated values into plain output values: floats are
// rounded to 7 significant digits and doubles to 15, chars become strings.
func Normalize(v any) any {
	switch x := v.(type) {
	case float32:
		return round(float64(x), 7)
	case float64:
		return round(x, 15)
	case rune:
		return string(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = Normalize(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = Normalize(item)
		}
		return out
	}
	return v
}

var returnField = regexp.MustCompile(`^\s*return\s+(?:this\.)?(\w+)\s*;\s*$`)

// addGetters adds a property for every getter that returns a field already
// present in fields under a different name.
func addGetters(class *java.ClassModel, fields map[string]any) {
	for _, m := range class.Methods {
		if m.IsStatic || !m.HasBody || len(m.Parameters) > 0 {
			continue
		}
		prop := propertyName(m.Name)
		if prop == "" {
			continue
		}
		match := returnField.FindStringSubmatch(m.Body)
		if match == nil || match[1] == prop {
			continue
		}
		if v, ok := fields[match[1]]; ok {
			if _, exists := fields[prop]; !exists {
				fields[prop] = v
			}
		}
	}
}

func propertyName(method string) string {
	for _, prefix := range []string{"get", "is"} {
		rest, ok := strings.CutPrefix(method, prefix)
		if !ok || rest == "" || !unicode.IsUpper(rune(rest[0])) {
			continue
		}
		return strings.ToLower(rest[:1]) + rest[1:]
	}
	return ""
}
