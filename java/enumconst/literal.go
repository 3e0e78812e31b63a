// Package enumconst binds enum constant arguments to the enum's constructors
// and computes the field values each constant ends up with.
package enumconst

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/saidoc/java/source"
)

type LiteralKind string

const (
	LiteralString  LiteralKind = "string"
	LiteralChar    LiteralKind = "char"
	LiteralInt     LiteralKind = "int"
	LiteralLong    LiteralKind = "long"
	LiteralFloat   LiteralKind = "float"
	LiteralDouble  LiteralKind = "double"
	LiteralBoolean LiteralKind = "boolean"
	LiteralNull    LiteralKind = "null"
	// LiteralExpression is any argument that is not a single literal, such
	// as a constant reference or a method call. Its Value is the source text.
	LiteralExpression LiteralKind = "expression"
)

// Literal is a typed enum constant argument. Value holds a string, rune,
// int64, float32, float64, bool or nil depending on Kind.
type Literal struct {
	Text  string
	Kind  LiteralKind
	Value any
}

// ParseLiteral classifies the source text of one argument.
func ParseLiteral(text string) Literal {
	text = strings.TrimSpace(text)
	opaque := Literal{Text: text, Kind: LiteralExpression, Value: text}

	negative := false
	body := text
	if strings.HasPrefix(body, "-") {
		negative = true
		body = strings.TrimSpace(body[1:])
	}

	tokens := source.Tokenize(body)
	if len(tokens) != 1 {
		return opaque
	}
	tok := tokens[0]
	if negative && tok.Kind != source.TokenIntLiteral && tok.Kind != source.TokenFloatLiteral {
		return opaque
	}

	switch tok.Kind {
	case source.TokenStringLiteral:
		return Literal{Text: text, Kind: LiteralString, Value: unquote(tok.Literal)}
	case source.TokenTextBlock:
		return Literal{Text: text, Kind: LiteralString, Value: textBlock(tok.Literal)}
	case source.TokenCharLiteral:
		s := unquote(tok.Literal)
		r, _ := utf8.DecodeRuneInString(s)
		return Literal{Text: text, Kind: LiteralChar, Value: r}
	case source.TokenIntLiteral:
		return parseInt(text, body, negative, opaque)
	case source.TokenFloatLiteral:
		return parseFloat(text, body, negative, opaque)
	case source.TokenKeyword:
		switch tok.Literal {
		case "true", "false":
			return Literal{Text: text, Kind: LiteralBoolean, Value: tok.Literal == "true"}
		case "null":
			return Literal{Text: text, Kind: LiteralNull}
		}
	}
	return opaque
}

func parseInt(text, body string, negative bool, opaque Literal) Literal {
	kind := LiteralInt
	digits := body
	if last := digits[len(digits)-1]; last == 'l' || last == 'L' {
		kind = LiteralLong
		digits = digits[:len(digits)-1]
	}
	if len(digits) > 1 && digits[0] == '0' && digits[1] >= '0' && digits[1] <= '9' {
		digits = "0o" + digits[1:]
	}
	if negative {
		digits = "-" + digits
	}
	v, err := strconv.ParseInt(digits, 0, 64)
	if err != nil {
		return opaque
	}
	return Literal{Text: text, Kind: kind, Value: v}
}

func parseFloat(text, body string, negative bool, opaque Literal) Literal {
	digits := strings.ReplaceAll(body, "_", "")
	bits := 64
	switch digits[len(digits)-1] {
	case 'f', 'F':
		bits = 32
		digits = digits[:len(digits)-1]
	case 'd', 'D':
		digits = digits[:len(digits)-1]
	}
	if negative {
		digits = "-" + digits
	}
	v, err := strconv.ParseFloat(digits, bits)
	if err != nil {
		return opaque
	}
	if bits == 32 {
		return Literal{Text: text, Kind: LiteralFloat, Value: float32(v)}
	}
	return Literal{Text: text, Kind: LiteralDouble, Value: v}
}

func unquote(quoted string) string {
	if s, err := strconv.Unquote(quoted); err == nil {
		return s
	}
	if quoted[0] == '\'' {
		// Go rejects '\"' and similar escapes that Java accepts
		if s, err := strconv.Unquote(`"` + quoted[1:len(quoted)-1] + `"`); err == nil {
			return s
		}
	}
	return quoted[1 : len(quoted)-1]
}

func textBlock(literal string) string {
	body := strings.TrimPrefix(literal, `"""`)
	body = strings.TrimSuffix(body, `"""`)
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	}
	lines := strings.Split(body, "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	last := lines[len(lines)-1]
	if strings.TrimSpace(last) == "" && (indent < 0 || len(last) < indent) {
		indent = len(last)
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			line = line[indent:]
		}
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
