// parser.go — recursive-descent parser from tokens to statements.
//
// OVERVIEW
// --------
// The parser walks the token slice produced by the lexer (see lexer.go) and
// builds the statement sequence defined in ast.go. Grammar, descending
// precedence:
//
//	program     := declaration* EOF
//	declaration := varDecl | statement
//	statement   := exprStmt | printStmt | ifStmt | whileStmt | forStmt | block
//	expression  := assignment
//	assignment  := IDENTIFIER "=" assignment | logicOr
//	logicOr     := logicAnd ("or" logicAnd)*
//	logicAnd    := conditional ("and" conditional)*
//	conditional := comma ("?" comma ":" comma)?
//	comma       := equality ("," equality)*
//	equality    := comparison (("!=" | "==") comparison)*
//	comparison  := term ((">" | ">=" | "<" | "<=") term)*
//	term        := factor (("+" | "-") factor)*
//	factor      := unary (("/" | "*") unary)*
//	unary       := ("!" | "-") unary | primary
//	primary     := NUMBER | STRING | "true" | "false" | "nil"
//	             | IDENTIFIER | "(" expression ")"
//
// Both operands of "and"/"or" sit at the conditional level, so the ternary
// extension relates to the logical operators the same way on either side.
//
// "for" has no AST node: it is desugared here into an initializer block
// wrapping a while loop, with a literal true condition when none is written.
//
// ERROR RECOVERY
// --------------
// A syntax fault is reported through the Reporter at the point of detection,
// then unwinds the current statement as an explicit error return (never a
// panic). declaration() catches it, discards tokens up to a likely statement
// boundary (panic-mode synchronize), plants a BadStmt marker in the slot, and
// resumes — so one pass can report many independent faults while still
// returning a best-effort statement sequence.
package lox

// Parser turns an ordered token slice into an ordered statement sequence.
type Parser struct {
	toks []Token
	cur  int // offset of the token under consideration
	rep  *Reporter
}

// NewParser creates a parser over toks. Syntax faults are reported through
// rep; the caller must check rep.HadError before interpreting the result.
func NewParser(toks []Token, rep *Reporter) *Parser {
	return &Parser{toks: toks, rep: rep}
}

// Parse consumes the whole token stream and returns the statement sequence.
// Statements that failed to parse appear as BadStmt markers, never as nil.
func (p *Parser) Parse() []Stmt {
	var stmts []Stmt
	for !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	return stmts
}

// parseError is the sentinel unwinding one malformed statement. The
// diagnostic is already reported by the time one is created.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

// fail reports a syntax fault at tok and returns the unwind sentinel.
func (p *Parser) fail(tok Token, message string) error {
	p.rep.ErrorAt(tok, message)
	return parseError{}
}

////////////////////////////////////////////////////////////////////////////////
//                                 statements
////////////////////////////////////////////////////////////////////////////////

func (p *Parser) declaration() Stmt {
	first := p.peek()

	var stmt Stmt
	var err error
	if p.match(VAR) {
		stmt, err = p.varDeclaration()
	} else {
		stmt, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return &BadStmt{Token: first}
	}
	return stmt
}

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(FOR):
		return p.forStatement()
	case p.match(IF):
		return p.ifStatement()
	case p.match(PRINT):
		return p.printStatement()
	case p.match(WHILE):
		return p.whileStatement()
	case p.match(LBRACE):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Statements: stmts}, nil
	}
	return p.expressionStatement()
}

func (p *Parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(ID, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var init Expr
	if p.match(ASSIGN) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Initializer: init}, nil
}

// forStatement parses "for (init; cond; incr) body" and desugars it into
// { init; while (cond) { body; incr; } }. The interpreter never sees a
// dedicated for construct.
func (p *Parser) forStatement() (Stmt, error) {
	if _, err := p.consume(LPAREN, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case p.match(SEMICOLON):
		init = nil
	case p.match(VAR):
		init, err = p.varDeclaration()
	default:
		init, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(SEMICOLON) {
		if cond, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var incr Expr
	if !p.check(RPAREN) {
		if incr, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(RPAREN, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = &BlockStmt{Statements: []Stmt{body, &ExpressionStmt{Expression: incr}}}
	}
	if cond == nil {
		cond = &LiteralExpr{Value: Bool(true)}
	}
	body = &WhileStmt{Condition: cond, Body: body}
	if init != nil {
		body = &BlockStmt{Statements: []Stmt{init, body}}
	}
	return body, nil
}

func (p *Parser) ifStatement() (Stmt, error) {
	if _, err := p.consume(LPAREN, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RPAREN, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els Stmt
	if p.match(ELSE) {
		if els, err = p.statement(); err != nil {
			return nil, err
		}
	}

	return &IfStmt{Condition: cond, Then: then, Else: els}, nil
}

func (p *Parser) whileStatement() (Stmt, error) {
	if _, err := p.consume(LPAREN, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RPAREN, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{Condition: cond, Body: body}, nil
}

func (p *Parser) printStatement() (Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{Expression: value}, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expression: expr}, nil
}

func (p *Parser) block() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(RBRACE) && !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}

	if _, err := p.consume(RBRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

////////////////////////////////////////////////////////////////////////////////
//                                 expressions
////////////////////////////////////////////////////////////////////////////////

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.match(ASSIGN) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		if v, ok := expr.(*VariableExpr); ok {
			return &AssignExpr{Name: v.Name, Value: value}, nil
		}

		// Report but keep going: the right-hand side already parsed.
		p.rep.ErrorAt(equals, "Invalid assignment target.")
	}

	return expr, nil
}

func (p *Parser) or() (Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}

	for p.match(OR) {
		op := p.previous()
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Operator: op, Right: right}
	}

	return expr, nil
}

func (p *Parser) and() (Expr, error) {
	expr, err := p.conditional()
	if err != nil {
		return nil, err
	}

	for p.match(AND) {
		op := p.previous()
		right, err := p.conditional()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Operator: op, Right: right}
	}

	return expr, nil
}

// conditional parses a single, non-chaining "?:" application above the comma
// level.
func (p *Parser) conditional() (Expr, error) {
	expr, err := p.comma()
	if err != nil {
		return nil, err
	}

	if p.match(QUESTION) {
		leftOp := p.previous()
		middle, err := p.comma()
		if err != nil {
			return nil, err
		}
		rightOp, err := p.consume(COLON, "Expect ':' in ternary expression.")
		if err != nil {
			return nil, err
		}
		right, err := p.comma()
		if err != nil {
			return nil, err
		}
		expr = &TernaryExpr{Left: expr, LeftOp: leftOp, Middle: middle, RightOp: rightOp, Right: right}
	}

	return expr, nil
}

func (p *Parser) comma() (Expr, error) {
	return p.binary(p.equality, COMMA)
}

func (p *Parser) equality() (Expr, error) {
	return p.binary(p.comparison, NEQ, EQ)
}

func (p *Parser) comparison() (Expr, error) {
	return p.binary(p.term, GREATER, GREATER_EQ, LESS, LESS_EQ)
}

func (p *Parser) term() (Expr, error) {
	return p.binary(p.factor, PLUS, MINUS)
}

func (p *Parser) factor() (Expr, error) {
	return p.binary(p.unary, DIV, MULT)
}

// binary parses a left-associative run of the given operator types over the
// operand rule one level down.
func (p *Parser) binary(operand func() (Expr, error), types ...TokenType) (Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(types...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Operator: op, Right: right}
	}

	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Operator: op, Right: right}, nil
	}

	return p.primary()
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(FALSE):
		return &LiteralExpr{Value: Bool(false)}, nil
	case p.match(TRUE):
		return &LiteralExpr{Value: Bool(true)}, nil
	case p.match(NIL):
		return &LiteralExpr{Value: Nil}, nil
	case p.match(NUMBER):
		return &LiteralExpr{Value: Num(p.previous().Literal.(float64))}, nil
	case p.match(STRING):
		return &LiteralExpr{Value: Str(p.previous().Literal.(string))}, nil
	case p.match(ID):
		return &VariableExpr{Name: p.previous()}, nil
	case p.match(LPAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(RPAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &GroupingExpr{Expression: expr}, nil
	}

	return nil, p.fail(p.peek(), "Expected expression.")
}

////////////////////////////////////////////////////////////////////////////////
//                              token navigation
////////////////////////////////////////////////////////////////////////////////

// match consumes the token under consideration iff its type is one of types.
func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// consume expects the next token to have the given type; otherwise it reports
// message at that token and unwinds.
func (p *Parser) consume(tt TokenType, message string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.fail(p.peek(), message)
}

func (p *Parser) check(tt TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == tt
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.cur++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == EOF }

func (p *Parser) peek() Token { return p.toks[p.cur] }

func (p *Parser) previous() Token { return p.toks[p.cur-1] }

// synchronize discards tokens until just past a ';' or just before a token
// that begins a statement, bounding the blast radius of one malformed
// statement.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == SEMICOLON {
			return
		}

		switch p.peek().Type {
		case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
			return
		}

		p.advance()
	}
}
