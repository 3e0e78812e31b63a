// Package source reads Java compilation units into class models. It parses
// declarations only: member bodies and initializers are kept as raw text or
// skipped.
package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/saidoc/java"
)

// File is the result of parsing one compilation unit. Classes lists every
// declared class, nested ones following their enclosing class.
type File struct {
	Name    string
	Package string
	Imports []java.ImportModel
	Classes []*java.ClassModel
}

type ParseError struct {
	File   string
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Msg)
}

// StructuralParseError rejects a whole declaration, such as an enum whose
// constant list contains an empty slot.
type StructuralParseError struct {
	File   string
	Class  string
	Line   int
	Reason string
}

func (e *StructuralParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Class, e.Reason)
}

// ParseFile parses src. Declarations that fail to parse are reported in the
// returned error; everything else is still returned in File.
func ParseFile(name, src string) (*File, error) {
	p := newParser(name, src)
	p.parseCompilationUnit()
	p.resolveTypes()
	f := &File{Name: name, Package: p.pkg, Imports: p.imports, Classes: p.classes}
	return f, errors.Join(p.errs...)
}

// ParseType parses a type expression such as java.util.List<com.x.User>[].
// Names are kept as written.
func ParseType(expr string) (java.TypeModel, error) {
	p := newParser("<type>", expr)
	t, err := p.parseType()
	if err != nil {
		return java.TypeModel{}, err
	}
	if !p.eof() {
		return java.TypeModel{}, p.errorf(p.tok(), "unexpected %q after type", p.tok().Literal)
	}
	return t, nil
}

type parser struct {
	file string
	src  string
	all  []Token
	code []int // indices into all of the non-comment tokens
	pos  int

	pkg     string
	imports []java.ImportModel
	classes []*java.ClassModel
	errs    []error
}

func newParser(file, src string) *parser {
	p := &parser{file: file, src: src}
	p.all = Tokenize(src)
	for i, t := range p.all {
		if !t.IsComment() {
			p.code = append(p.code, i)
		}
	}
	return p
}

func (p *parser) eof() bool {
	return p.pos >= len(p.code)
}

func (p *parser) peek(n int) Token {
	if p.pos+n >= len(p.code) {
		end := Position{Offset: len(p.src)}
		return Token{Kind: TokenEOF, Start: end, End: end}
	}
	return p.all[p.code[p.pos+n]]
}

func (p *parser) tok() Token {
	return p.peek(0)
}

func (p *parser) next() Token {
	t := p.tok()
	if !p.eof() {
		p.pos++
	}
	return t
}

func (p *parser) is(literal string) bool {
	return p.tok().Is(literal)
}

func (p *parser) isIdent(name string) bool {
	t := p.tok()
	return t.Kind == TokenIdent && t.Literal == name
}

func (p *parser) accept(literal string) bool {
	if p.is(literal) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(literal string) (Token, error) {
	t := p.tok()
	if !t.Is(literal) {
		return t, p.errorf(t, "expected %q, found %q", literal, t.Literal)
	}
	return p.next(), nil
}

func (p *parser) ident() (Token, error) {
	t := p.tok()
	if t.Kind != TokenIdent {
		return t, p.errorf(t, "expected identifier, found %q", t.Literal)
	}
	return p.next(), nil
}

func (p *parser) errorf(t Token, format string, args ...any) error {
	if t.Kind == TokenEOF {
		format = "unexpected end of file: " + format
	}
	return &ParseError{File: p.file, Line: t.Start.Line, Column: t.Start.Column, Msg: fmt.Sprintf(format, args...)}
}

// qualifiedName reads Ident(.Ident)*, stopping before ".*".
func (p *parser) qualifiedName() (string, error) {
	t, err := p.ident()
	if err != nil {
		return "", err
	}
	parts := []string{t.Literal}
	for p.is(".") && p.peek(1).Kind == TokenIdent {
		p.next()
		parts = append(parts, p.next().Literal)
	}
	return strings.Join(parts, "."), nil
}

// skipBalanced consumes a bracketed group starting at the current token and
// returns its closing token.
func (p *parser) skipBalanced(open, close string) (Token, error) {
	start, err := p.expect(open)
	if err != nil {
		return start, err
	}
	depth := 1
	for !p.eof() {
		t := p.next()
		switch {
		case t.Is(open):
			depth++
		case t.Is(close):
			depth--
			if depth == 0 {
				return t, nil
			}
		}
	}
	return p.tok(), p.errorf(start, "unbalanced %q", open)
}

func (p *parser) parseCompilationUnit() {
	if p.is("@") && !p.peek(1).Is("interface") {
		save := p.pos
		p.parseModifiers()
		if !p.is("package") {
			p.pos = save
		}
	}
	if p.accept("package") {
		name, err := p.qualifiedName()
		if err == nil {
			_, err = p.expect(";")
		}
		if err != nil {
			p.errs = append(p.errs, err)
		}
		p.pkg = name
	}
	for p.is("import") {
		if err := p.parseImport(); err != nil {
			p.errs = append(p.errs, err)
			p.skipPast(";")
		}
	}
	for !p.eof() {
		if p.accept(";") {
			continue
		}
		start := p.pos
		if err := p.parseTypeDecl(nil); err != nil {
			p.errs = append(p.errs, err)
			var structural *StructuralParseError
			if errors.As(err, &structural) {
				continue
			}
			if p.pos == start {
				p.next()
			}
			p.syncMember()
		}
	}
}

func (p *parser) parseImport() error {
	p.next()
	imp := java.ImportModel{IsStatic: p.accept("static")}
	name, err := p.qualifiedName()
	if err != nil {
		return err
	}
	if p.is(".") && p.peek(1).Is("*") {
		p.next()
		p.next()
		imp.IsWildcard = true
	}
	imp.QualifiedName = name
	if _, err := p.expect(";"); err != nil {
		return err
	}
	p.imports = append(p.imports, imp)
	return nil
}

func (p *parser) skipPast(literal string) {
	for !p.eof() {
		if p.next().Is(literal) {
			return
		}
	}
}

// syncMember skips to the end of the current member: past a ';' or a
// balanced brace group, or up to the '}' closing the enclosing body.
func (p *parser) syncMember() {
	depth := 0
	for !p.eof() {
		t := p.tok()
		switch {
		case t.Is("{"), t.Is("("), t.Is("["):
			depth++
		case t.Is(")"), t.Is("]"):
			depth--
		case t.Is("}"):
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.next()
				return
			}
		case t.Is(";"):
			if depth <= 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}

type modifiers struct {
	start      int
	visibility java.Visibility
	isStatic   bool
	isFinal    bool
	isAbstract bool
	isDefault  bool
	transient  bool
}

func (p *parser) parseModifiers() modifiers {
	m := modifiers{start: p.pos}
	for {
		t := p.tok()
		switch {
		case t.Is("@") && !p.peek(1).Is("interface"):
			p.skipAnnotation()
			continue
		case t.Kind == TokenKeyword:
			switch t.Literal {
			case "public":
				m.visibility = java.VisibilityPublic
			case "protected":
				m.visibility = java.VisibilityProtected
			case "private":
				m.visibility = java.VisibilityPrivate
			case "static":
				m.isStatic = true
			case "final":
				m.isFinal = true
			case "abstract":
				m.isAbstract = true
			case "transient":
				m.transient = true
			case "default":
				if p.peek(1).Is(":") {
					return m
				}
				m.isDefault = true
			case "native", "synchronized", "volatile", "strictfp":
			default:
				return m
			}
			p.next()
		case t.Kind == TokenIdent && t.Literal == "sealed" && p.peek(1).Kind != TokenOperator:
			p.next()
		case t.Kind == TokenIdent && t.Literal == "non" && p.peek(1).Is("-") && p.peek(2).Literal == "sealed":
			p.next()
			p.next()
			p.next()
		default:
			return m
		}
	}
}

func (p *parser) skipAnnotation() {
	p.next()
	if _, err := p.qualifiedName(); err != nil {
		return
	}
	if p.is("(") {
		p.skipBalanced("(", ")")
	}
}

func (p *parser) isTypeDeclStart() bool {
	t := p.tok()
	switch {
	case t.Is("class"), t.Is("interface"), t.Is("enum"):
		return true
	case t.Is("@") && p.peek(1).Is("interface"):
		return true
	case t.Kind == TokenIdent && t.Literal == "record" && p.peek(1).Kind == TokenIdent:
		next := p.peek(2)
		return next.Is("(") || next.Is("<")
	}
	return false
}

func (p *parser) parseTypeDecl(outer *java.ClassModel) error {
	mods := p.parseModifiers()
	doc := p.docBefore(mods.start)

	kw := p.tok()
	var kind java.ClassKind
	switch {
	case kw.Is("class"):
		kind = java.ClassKindClass
	case kw.Is("interface"):
		kind = java.ClassKindInterface
	case kw.Is("enum"):
		kind = java.ClassKindEnum
	case kw.Is("@") && p.peek(1).Is("interface"):
		p.next()
		kind = java.ClassKindAnnotation
	case kw.Kind == TokenIdent && kw.Literal == "record":
		kind = java.ClassKindRecord
	default:
		return p.errorf(kw, "expected type declaration, found %q", kw.Literal)
	}
	p.next()

	name, err := p.ident()
	if err != nil {
		return err
	}

	c := &java.ClassModel{
		SimpleName: name.Literal,
		Package:    p.pkg,
		SourceFile: p.file,
		Kind:       kind,
		Visibility: mods.visibility,
		IsAbstract: mods.isAbstract || kind == java.ClassKindInterface,
		IsStatic:   mods.isStatic,
		IsFinal:    mods.isFinal,
		Javadoc:    doc,
		Line:       kw.Start.Line,
		Imports:    p.imports,
	}
	if c.Visibility == "" {
		c.Visibility = java.VisibilityPackage
	}
	if outer != nil {
		c.Name = outer.Name + "." + c.SimpleName
		c.EnclosingClass = outer.Name
		if outer.IsInterface() || kind != java.ClassKindClass {
			c.IsStatic = true
		}
		if outer.IsInterface() && mods.visibility == "" {
			c.Visibility = java.VisibilityPublic
		}
	} else if p.pkg != "" {
		c.Name = p.pkg + "." + c.SimpleName
	} else {
		c.Name = c.SimpleName
	}

	if p.is("<") {
		if c.TypeParameters, err = p.typeParameters(); err != nil {
			return err
		}
	}
	if kind == java.ClassKindRecord {
		if err := p.recordComponents(c); err != nil {
			return err
		}
	}
	if p.accept("extends") {
		types, err := p.typeList()
		if err != nil {
			return err
		}
		if c.IsInterface() {
			c.Interfaces = append(c.Interfaces, types...)
		} else if len(types) > 0 {
			c.SuperType = &types[0]
		}
	}
	if p.accept("implements") {
		types, err := p.typeList()
		if err != nil {
			return err
		}
		c.Interfaces = append(c.Interfaces, types...)
	}
	if p.isIdent("permits") {
		p.next()
		if _, err := p.typeList(); err != nil {
			return err
		}
	}

	index := len(p.classes)
	p.classes = append(p.classes, c)
	if outer != nil {
		outer.InnerClasses = append(outer.InnerClasses, c.Name)
	}

	if kind == java.ClassKindEnum {
		err = p.enumBody(c)
	} else {
		err = p.classBody(c)
	}

	var structural *StructuralParseError
	if errors.As(err, &structural) {
		// drop the rejected declaration together with its nested classes
		p.classes = p.classes[:index]
		if outer != nil {
			outer.InnerClasses = outer.InnerClasses[:len(outer.InnerClasses)-1]
		}
	}
	return err
}

// recordComponents turns the record header into private final fields. A
// component keeps the /** */ comment written before it and a // comment
// after it on the same line.
func (p *parser) recordComponents(c *java.ClassModel) error {
	if _, err := p.expect("("); err != nil {
		return err
	}
	for !p.is(")") {
		start := p.pos
		p.parseModifiers()
		typ, err := p.parseType()
		if err != nil {
			return err
		}
		if p.accept("...") {
			typ.ArrayDepth++
		}
		name, err := p.ident()
		if err != nil {
			return err
		}
		f := java.FieldModel{
			Name:       name.Literal,
			Type:       typ,
			Visibility: java.VisibilityPrivate,
			IsFinal:    true,
			Javadoc:    p.docBefore(start),
			Line:       name.Start.Line,
		}
		more := p.accept(",")
		f.EOLComment = p.eolComment()
		c.Fields = append(c.Fields, f)
		if !more {
			break
		}
	}
	_, err := p.expect(")")
	return err
}

func (p *parser) classBody(c *java.ClassModel) error {
	if _, err := p.expect("{"); err != nil {
		return err
	}
	for !p.is("}") {
		if p.eof() {
			return p.errorf(p.tok(), "unterminated body of %s", c.Name)
		}
		start := p.pos
		if err := p.member(c); err != nil {
			p.errs = append(p.errs, err)
			var structural *StructuralParseError
			if errors.As(err, &structural) {
				continue
			}
			if p.pos == start {
				p.next()
			}
			p.syncMember()
		}
	}
	c.EndLine = p.next().Start.Line
	return nil
}

func (p *parser) member(c *java.ClassModel) error {
	if p.accept(";") {
		return nil
	}
	if p.is("{") || (p.is("static") && p.peek(1).Is("{")) {
		p.accept("static")
		_, err := p.skipBalanced("{", "}")
		return err
	}

	mods := p.parseModifiers()
	if p.isTypeDeclStart() {
		p.pos = mods.start
		return p.parseTypeDecl(c)
	}

	var typeParams []java.TypeParameterModel
	if p.is("<") {
		var err error
		if typeParams, err = p.typeParameters(); err != nil {
			return err
		}
	}

	t := p.tok()
	if t.Kind == TokenIdent && t.Literal == c.SimpleName {
		switch {
		case p.peek(1).Is("("):
			return p.method(c, mods, typeParams, nil)
		case p.peek(1).Is("{") && c.Kind == java.ClassKindRecord:
			p.next()
			_, err := p.skipBalanced("{", "}")
			return err
		}
	}

	typ, err := p.parseType()
	if err != nil {
		return err
	}
	if p.peek(1).Is("(") {
		return p.method(c, mods, typeParams, &typ)
	}
	return p.fields(c, mods, typ)
}

func (p *parser) method(c *java.ClassModel, mods modifiers, typeParams []java.TypeParameterModel, ret *java.TypeModel) error {
	name, err := p.ident()
	if err != nil {
		return err
	}
	params, err := p.parameters()
	if err != nil {
		return err
	}
	m := java.MethodModel{
		Name:           name.Literal,
		Parameters:     params,
		Visibility:     mods.visibility,
		IsStatic:       mods.isStatic,
		IsAbstract:     mods.isAbstract,
		IsConstructor:  ret == nil,
		TypeParameters: typeParams,
		Javadoc:        p.docBefore(mods.start),
		Line:           name.Start.Line,
	}
	if len(params) > 0 && params[len(params)-1].IsVarargs {
		m.IsVarargs = true
	}
	if ret != nil {
		m.ReturnType = *ret
		for p.is("[") && p.peek(1).Is("]") {
			p.next()
			p.next()
			m.ReturnType.ArrayDepth++
		}
	} else {
		m.ReturnType = java.TypeModel{Name: "void"}
	}
	if p.accept("throws") {
		if _, err := p.typeList(); err != nil {
			return err
		}
	}
	if p.accept("default") {
		// annotation element default value
		p.skipInitializer()
	}

	if p.is("{") {
		open := p.tok()
		end, err := p.skipBalanced("{", "}")
		if err != nil {
			return err
		}
		m.Body = p.src[open.End.Offset:end.Start.Offset]
		m.HasBody = true
	} else if _, err := p.expect(";"); err != nil {
		return err
	}

	if c.IsInterface() {
		if m.Visibility == "" {
			m.Visibility = java.VisibilityPublic
		}
		if !m.HasBody && !m.IsStatic {
			m.IsAbstract = true
		}
	} else if m.Visibility == "" {
		m.Visibility = java.VisibilityPackage
	}

	if m.IsConstructor {
		if c.IsEnum() && m.Visibility == java.VisibilityPackage {
			m.Visibility = java.VisibilityPrivate
		}
		c.Constructors = append(c.Constructors, m)
	} else {
		c.Methods = append(c.Methods, m)
	}
	return nil
}

func (p *parser) parameters() ([]java.ParameterModel, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	var params []java.ParameterModel
	for !p.is(")") {
		mods := p.parseModifiers()
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		param := java.ParameterModel{IsFinal: mods.isFinal}
		if p.accept("...") {
			param.IsVarargs = true
			typ.ArrayDepth++
		}
		if p.is("this") {
			// receiver parameter
			p.next()
			if !p.accept(",") {
				break
			}
			continue
		}
		name, err := p.ident()
		if err != nil {
			return nil, err
		}
		for p.is("[") && p.peek(1).Is("]") {
			p.next()
			p.next()
			typ.ArrayDepth++
		}
		param.Name = name.Literal
		param.Type = typ
		params = append(params, param)
		if !p.accept(",") {
			break
		}
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *parser) fields(c *java.ClassModel, mods modifiers, typ java.TypeModel) error {
	doc := p.docBefore(mods.start)
	var declared []java.FieldModel
	for {
		name, err := p.ident()
		if err != nil {
			return err
		}
		f := java.FieldModel{
			Name:        name.Literal,
			Type:        typ,
			Visibility:  mods.visibility,
			IsStatic:    mods.isStatic,
			IsFinal:     mods.isFinal,
			IsTransient: mods.transient,
			Javadoc:     doc,
			Line:        name.Start.Line,
		}
		for p.is("[") && p.peek(1).Is("]") {
			p.next()
			p.next()
			f.Type.ArrayDepth++
		}
		if p.accept("=") {
			p.skipInitializer()
		}
		declared = append(declared, f)
		if !p.accept(",") {
			break
		}
	}
	if _, err := p.expect(";"); err != nil {
		return err
	}
	eol := p.eolComment()
	for i := range declared {
		declared[i].EOLComment = eol
		if c.IsInterface() {
			declared[i].IsStatic = true
			declared[i].IsFinal = true
			declared[i].Visibility = java.VisibilityPublic
		} else if declared[i].Visibility == "" {
			declared[i].Visibility = java.VisibilityPackage
		}
	}
	c.Fields = append(c.Fields, declared...)
	return nil
}

// skipInitializer skips a variable initializer up to the ',' that starts
// the next declarator or the terminating ';'.
func (p *parser) skipInitializer() {
	depth := 0
	for !p.eof() {
		t := p.tok()
		switch {
		case t.Is("("), t.Is("["), t.Is("{"):
			depth++
		case t.Is(")"), t.Is("]"), t.Is("}"):
			if depth == 0 {
				return
			}
			depth--
		case t.Is(";") && depth == 0:
			return
		case t.Is(",") && depth == 0:
			if next := p.peek(1); next.Kind == TokenIdent {
				after := p.peek(2)
				if after.Is("=") || after.Is(",") || after.Is(";") || after.Is("[") {
					return
				}
			}
		}
		p.next()
	}
}

func (p *parser) enumBody(c *java.ClassModel) error {
	open, err := p.expect("{")
	if err != nil {
		return err
	}
	openIdx := p.pos - 1

	for ordinal := 0; !p.is(";") && !p.is("}"); ordinal++ {
		if p.is(",") {
			return p.rejectEnum(c, openIdx, p.tok(), "empty enum constant slot")
		}
		mods := p.parseModifiers()
		name, err := p.ident()
		if err != nil {
			return err
		}
		ec := java.EnumConstantModel{
			Name:    name.Literal,
			Ordinal: ordinal,
			Javadoc: p.docBefore(mods.start),
			Line:    name.Start.Line,
		}
		if p.is("(") {
			args, bad, err := p.arguments()
			if err != nil {
				return err
			}
			if bad != nil {
				return p.rejectEnum(c, openIdx, *bad, "empty argument in enum constant "+ec.Name)
			}
			ec.Arguments = args
			ec.HasArgList = true
		}
		if p.is("{") {
			if _, err := p.skipBalanced("{", "}"); err != nil {
				return err
			}
		}
		c.EnumConstants = append(c.EnumConstants, ec)
		if !p.accept(",") {
			break
		}
	}

	if p.accept(";") {
		for !p.is("}") {
			if p.eof() {
				return p.errorf(open, "unterminated body of %s", c.Name)
			}
			start := p.pos
			if err := p.member(c); err != nil {
				p.errs = append(p.errs, err)
				if p.pos == start {
					p.next()
				}
				p.syncMember()
			}
		}
	}
	end, err := p.expect("}")
	if err != nil {
		return err
	}
	c.EndLine = end.Start.Line
	return nil
}

// rejectEnum skips the rest of the enum body opened at code index openIdx
// and reports the structural error.
func (p *parser) rejectEnum(c *java.ClassModel, openIdx int, at Token, reason string) error {
	p.pos = openIdx
	p.skipBalanced("{", "}")
	return &StructuralParseError{File: p.file, Class: c.Name, Line: at.Start.Line, Reason: reason}
}

// arguments reads a parenthesised argument list and returns the source text
// of each argument. An empty argument is returned as bad.
func (p *parser) arguments() ([]string, *Token, error) {
	open, err := p.expect("(")
	if err != nil {
		return nil, nil, err
	}
	if p.accept(")") {
		return nil, nil, nil
	}
	var args []string
	var bad *Token
	depth := 0
	first := -1
	last := -1
	flush := func(at Token) {
		if first < 0 {
			if bad == nil {
				t := at
				bad = &t
			}
			return
		}
		args = append(args, strings.TrimSpace(p.src[p.all[p.code[first]].Start.Offset:p.all[p.code[last]].End.Offset]))
		first, last = -1, -1
	}
	for !p.eof() {
		t := p.tok()
		switch {
		case t.Is("("), t.Is("["), t.Is("{"):
			depth++
		case t.Is(")") && depth == 0:
			flush(t)
			p.next()
			return args, bad, nil
		case t.Is(")"), t.Is("]"), t.Is("}"):
			depth--
		case t.Is(",") && depth == 0:
			flush(t)
			p.next()
			continue
		}
		if first < 0 {
			first = p.pos
		}
		last = p.pos
		p.next()
	}
	return nil, nil, p.errorf(open, "unterminated argument list")
}

func (p *parser) typeList() ([]java.TypeModel, error) {
	var types []java.TypeModel
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		if !p.accept(",") {
			return types, nil
		}
	}
}

func (p *parser) typeParameters() ([]java.TypeParameterModel, error) {
	p.next()
	var params []java.TypeParameterModel
	for {
		p.parseModifiers()
		name, err := p.ident()
		if err != nil {
			return nil, err
		}
		tp := java.TypeParameterModel{Name: name.Literal}
		if p.accept("extends") {
			for {
				bound, err := p.parseType()
				if err != nil {
					return nil, err
				}
				tp.Bounds = append(tp.Bounds, bound)
				if !p.accept("&") {
					break
				}
			}
		}
		params = append(params, tp)
		if !p.accept(",") {
			break
		}
	}
	return params, p.closeAngle()
}

// closeAngle consumes one '>' even when the lexer merged it into '>>' or
// '>>>'.
func (p *parser) closeAngle() error {
	t := p.tok()
	if t.Kind != TokenOperator || !strings.HasPrefix(t.Literal, ">") {
		return p.errorf(t, "expected '>', found %q", t.Literal)
	}
	if t.Literal == ">" {
		p.next()
		return nil
	}
	rest := &p.all[p.code[p.pos]]
	rest.Literal = rest.Literal[1:]
	rest.Start.Offset++
	rest.Start.Column++
	return nil
}

func (p *parser) parseType() (java.TypeModel, error) {
	for p.is("@") {
		p.skipAnnotation()
	}
	t := p.tok()
	var typ java.TypeModel
	switch {
	case t.Kind == TokenKeyword && (java.IsPrimitiveName(t.Literal) || t.Literal == "void"):
		p.next()
		typ.Name = t.Literal
	case t.Kind == TokenIdent:
		p.next()
		name := t.Literal
		var err error
		if p.is("<") {
			if typ.TypeArguments, err = p.typeArguments(); err != nil {
				return typ, err
			}
		}
		for p.is(".") && (p.peek(1).Kind == TokenIdent || p.peek(1).Is("@")) {
			p.next()
			for p.is("@") {
				p.skipAnnotation()
			}
			name += "." + p.next().Literal
			if p.is("<") {
				if typ.TypeArguments, err = p.typeArguments(); err != nil {
					return typ, err
				}
			}
		}
		typ.Name = name
	default:
		return typ, p.errorf(t, "expected type, found %q", t.Literal)
	}
	for p.is("[") && p.peek(1).Is("]") {
		p.next()
		p.next()
		typ.ArrayDepth++
	}
	return typ, nil
}

func (p *parser) typeArguments() ([]java.TypeArgumentModel, error) {
	p.next()
	var args []java.TypeArgumentModel
	if p.tok().Kind == TokenOperator && strings.HasPrefix(p.tok().Literal, ">") {
		return nil, p.closeAngle()
	}
	for {
		for p.is("@") {
			p.skipAnnotation()
		}
		var arg java.TypeArgumentModel
		if p.accept("?") {
			arg.IsWildcard = true
			if p.is("extends") || p.is("super") {
				arg.BoundKind = p.next().Literal
				bound, err := p.parseType()
				if err != nil {
					return nil, err
				}
				arg.Bound = &bound
			}
		} else {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			arg.Type = &t
		}
		args = append(args, arg)
		if !p.accept(",") {
			break
		}
	}
	return args, p.closeAngle()
}
