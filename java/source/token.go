package source

type Position struct {
	Offset int
	Line   int
	Column int
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenComment
	TokenLineComment
	TokenIdent
	TokenKeyword
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock
	TokenOperator
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenComment:       "Comment",
	TokenLineComment:   "LineComment",
	TokenIdent:         "Identifier",
	TokenKeyword:       "Keyword",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTextBlock:     "TextBlock",
	TokenOperator:      "Operator",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one lexeme. Literal is the exact source text; keywords and
// operators are matched by their literal.
type Token struct {
	Kind    TokenKind
	Start   Position
	End     Position
	Literal string
	// NewlineBefore is set when a line break separates the token from the
	// previous token.
	NewlineBefore bool
}

// Is reports whether the token is the given keyword or operator.
func (t Token) Is(literal string) bool {
	return (t.Kind == TokenKeyword || t.Kind == TokenOperator) && t.Literal == literal
}

func (t Token) IsComment() bool {
	return t.Kind == TokenComment || t.Kind == TokenLineComment
}

func (t Token) IsLiteral() bool {
	switch t.Kind {
	case TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral, TokenStringLiteral, TokenTextBlock:
		return true
	case TokenKeyword:
		return t.Literal == "true" || t.Literal == "false" || t.Literal == "null"
	}
	return false
}

var keywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true,
	"class": true, "const": true, "continue": true, "default": true,
	"do": true, "double": true, "else": true, "enum": true,
	"extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true,
	"long": true, "native": true, "new": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true,
	"throws": true, "transient": true, "try": true, "void": true,
	"volatile": true, "while": true, "true": true, "false": true,
	"null": true,
}

// IsKeyword reports whether ident is a reserved word. Contextual keywords
// such as record, var and sealed lex as identifiers.
func IsKeyword(ident string) bool {
	return keywords[ident]
}
