// lexer.go — scanner turning Lox source text into tokens.
//
// The scanner keeps a single forward byte cursor over the source. It never
// aborts: a lexical fault is handed to the Reporter and scanning continues, so
// one pass surfaces every lexical error in the input. The token slice always
// ends with exactly one EOF token carrying the final line number.
package lox

import "strconv"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Punctuation
	LPAREN    // "("
	RPAREN    // ")"
	LBRACE    // "{"
	RBRACE    // "}"
	COMMA     // ","
	DOT       // "."
	SEMICOLON // ";"
	QUESTION  // "?"
	COLON     // ":"

	// Operators
	PLUS
	MINUS
	MULT
	DIV
	ASSIGN // "="
	EQ     // "=="
	NEQ    // "!="
	BANG   // "!"
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ

	// Literals & identifiers
	ID
	STRING
	NUMBER

	// Keywords
	AND
	CLASS
	ELSE
	FALSE
	FUN
	FOR
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
)

// Token is a lexical token with an optional literal value. Immutable once
// produced; Line is 1-based.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // parsed value for literals
	Line    int
}

// keywords map: reserved lexemes remapped to keyword token types. The
// declaration-ish keywords double as parser synchronization points, so the
// whole set stays reserved even where no construct uses it yet.
var keywords = map[string]TokenType{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// Lexer scans a Lox source string into tokens.
type Lexer struct {
	src    string
	rep    *Reporter
	tokens []Token
	start  int // start index of current lexeme
	cur    int // current index
	line   int // 1-based
}

// NewLexer creates a new lexer for the given source. Lexical faults are
// reported through rep.
func NewLexer(src string, rep *Reporter) *Lexer {
	return &Lexer{
		src:  src,
		rep:  rep,
		line: 1,
	}
}

// Scan tokenizes the entire source and returns the tokens (EOF included).
func (l *Lexer) Scan() []Token {
	for !l.isAtEnd() {
		l.start = l.cur
		l.scanToken()
	}

	l.tokens = append(l.tokens, Token{Type: EOF, Lexeme: "", Line: l.line})
	return l.tokens
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) advance() byte {
	ch := l.src[l.cur]
	l.cur++
	return ch
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.src[l.cur]
}

func (l *Lexer) peekNext() byte {
	if l.cur+1 >= len(l.src) {
		return 0
	}
	return l.src[l.cur+1]
}

// match consumes the next byte iff it equals expected.
func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.src[l.cur] != expected {
		return false
	}
	l.cur++
	return true
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.line,
	})
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isAlpha: no underscore in this language.
func isAlpha(b byte) bool    { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

func (l *Lexer) scanToken() {
	ch := l.advance()
	switch ch {

	// Single-character tokens.
	case '(':
		l.addToken(LPAREN, nil)
	case ')':
		l.addToken(RPAREN, nil)
	case '{':
		l.addToken(LBRACE, nil)
	case '}':
		l.addToken(RBRACE, nil)
	case ',':
		l.addToken(COMMA, nil)
	case '.':
		l.addToken(DOT, nil)
	case ';':
		l.addToken(SEMICOLON, nil)
	case '?':
		l.addToken(QUESTION, nil)
	case ':':
		l.addToken(COLON, nil)
	case '+':
		l.addToken(PLUS, nil)
	case '-':
		l.addToken(MINUS, nil)
	case '*':
		l.addToken(MULT, nil)

	// One or two character operators.
	case '!':
		if l.match('=') {
			l.addToken(NEQ, nil)
		} else {
			l.addToken(BANG, nil)
		}
	case '=':
		if l.match('=') {
			l.addToken(EQ, nil)
		} else {
			l.addToken(ASSIGN, nil)
		}
	case '<':
		if l.match('=') {
			l.addToken(LESS_EQ, nil)
		} else {
			l.addToken(LESS, nil)
		}
	case '>':
		if l.match('=') {
			l.addToken(GREATER_EQ, nil)
		} else {
			l.addToken(GREATER, nil)
		}

	// '/' also begins both comment forms.
	case '/':
		if l.match('/') {
			l.lineComment()
		} else if l.match('*') {
			l.blockComment()
		} else {
			l.addToken(DIV, nil)
		}

	// Whitespace.
	case ' ', '\r', '\t':
	case '\n':
		l.line++

	case '"':
		l.scanString()

	default:
		if isDigit(ch) {
			l.scanNumber()
		} else if isAlpha(ch) {
			l.scanIdentifier()
		} else {
			l.rep.Error(l.line, "Unexpected character.")
		}
	}
}

// lineComment eats until '\n' or EOF. The newline itself is left for
// scanToken so the line counter stays in one place.
func (l *Lexer) lineComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
}

// blockComment eats a non-nesting "/* ... */" run, counting newlines.
func (l *Lexer) blockComment() {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}
	l.rep.Error(l.line, "Unterminated block comment.")
}

// scanString reads a '"'-delimited literal, which may span lines. On EOF a
// best-effort token is still emitted so downstream phases see the text.
func (l *Lexer) scanString() {
	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}

	if l.isAtEnd() {
		l.rep.Error(l.line, "Unterminated string.")
		l.addToken(STRING, l.src[l.start+1:l.cur])
		return
	}

	// Closing '"'.
	l.advance()
	l.addToken(STRING, l.src[l.start+1:l.cur-1])
}

// scanNumber reads decimal digits with at most one fractional part. No
// exponents, and no leading bare dot (a '.' without a following digit belongs
// to the next token).
func (l *Lexer) scanNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	v, _ := strconv.ParseFloat(l.src[l.start:l.cur], 64)
	l.addToken(NUMBER, v)
}

func (l *Lexer) scanIdentifier() {
	for isAlphaNum(l.peek()) {
		l.advance()
	}

	lex := l.src[l.start:l.cur]
	if tt, ok := keywords[lex]; ok {
		l.addToken(tt, nil)
		return
	}
	l.addToken(ID, nil)
}
