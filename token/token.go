package token

import (
	"fmt"
	"strconv"
)

type TokenType int

const (
	ILLEGAL = iota
	EOF

	literal_beg
	// Identifiers + literals
	IDENT  // count, factorial, n, ...
	INT    // 1343456
	STRING // "abc"
	literal_end

	operator_beg
	// Operators and delimiters
	ASSIGN // =

	ADD // +
	SUB // -
	MUL // *
	QUO // /

	LPAREN // (
	RPAREN // )
	COMMA  // ,
	COLON  // :
	operator_end

	comparison_beg
	EQL // ==
	LSS // <
	GTR // >

	LEQ // <=
	GEQ // >=
	comparison_end

	keyword_beg
	DEF
	RETURN
	IF
	ELSE
	WHILE

	AND
	OR
	NOT
	keyword_end

	NEWLINE
	INDENT
	DEINDENT
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",

	EOF: "EOF",

	IDENT:  "IDENT",
	INT:    "INT",
	STRING: "STRING",

	ASSIGN: "=",

	ADD: "+",
	SUB: "-",
	MUL: "*",
	QUO: "/",

	LPAREN: "(",
	RPAREN: ")",
	COMMA:  ",",
	COLON:  ":",

	EQL: "==",
	LSS: "<",
	GTR: ">",

	LEQ: "<=",
	GEQ: ">=",

	DEF:    "def",
	RETURN: "return",
	IF:     "if",
	ELSE:   "else",
	WHILE:  "while",

	AND: "and",
	OR:  "or",
	NOT: "not",

	NEWLINE:  "\n",
	INDENT:   "INDENT",
	DEINDENT: "DEINDENT",
}

// Token is one lexical unit of source text. Line and Column are 1-based
// and point at the token's first character.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) IsComparison() bool {
	return t.Type.IsComparison()
}

func (t Token) String() string {
	return t.Type.String()
}

func (tokenType TokenType) IsComparison() bool {
	return comparison_beg < tokenType && comparison_end > tokenType
}

func (tokenType TokenType) IsKeyword() bool {
	return keyword_beg < tokenType && keyword_end > tokenType
}

func (tokenType TokenType) String() string {
	s := ""
	if 0 <= tokenType && tokenType < TokenType(len(tokens)) {
		s = tokens[tokenType]
	}

	if s == "" {
		s = "token(" + strconv.Itoa(int(tokenType)) + ")"
	}

	return s
}

// CompileError is an error tied to a source position.
type CompileError struct {
	Token Token
	Msg   string
}

func (ce *CompileError) Error() string {
	return fmt.Sprintf("%d:%d: %s", ce.Token.Line, ce.Token.Column, ce.Msg)
}
