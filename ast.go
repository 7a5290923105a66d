// ast.go — the closed expression and statement node sets produced by the
// parser. A tree from one parse is acyclic and immutable; no node is mutated
// after construction. Evaluation and printing dispatch over the node type.
package lox

// Expr is the closed set of expression nodes.
type Expr interface {
	ExprNode()
}

// Stmt is the closed set of statement nodes.
type Stmt interface {
	StmtNode()
}

// LiteralExpr carries the runtime value a literal token denotes.
type LiteralExpr struct {
	Value Value
}

type UnaryExpr struct {
	Operator Token
	Right    Expr
}

type BinaryExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

// TernaryExpr is the "?:" extension: one non-chaining application per
// precedence level. LeftOp is the '?' token, RightOp the ':'.
type TernaryExpr struct {
	Left    Expr
	LeftOp  Token
	Middle  Expr
	RightOp Token
	Right   Expr
}

type GroupingExpr struct {
	Expression Expr
}

type VariableExpr struct {
	Name Token
}

type AssignExpr struct {
	Name  Token
	Value Expr
}

// LogicalExpr covers short-circuiting "and"/"or".
type LogicalExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

func (e *LiteralExpr) ExprNode()  {}
func (e *UnaryExpr) ExprNode()    {}
func (e *BinaryExpr) ExprNode()   {}
func (e *TernaryExpr) ExprNode()  {}
func (e *GroupingExpr) ExprNode() {}
func (e *VariableExpr) ExprNode() {}
func (e *AssignExpr) ExprNode()   {}
func (e *LogicalExpr) ExprNode()  {}

type ExpressionStmt struct {
	Expression Expr
}

type PrintStmt struct {
	Expression Expr
}

// VarStmt declares a variable; Initializer is nil when omitted.
type VarStmt struct {
	Name        Token
	Initializer Expr
}

type BlockStmt struct {
	Statements []Stmt
}

// IfStmt; Else is nil when there is no else branch.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

// BadStmt marks a statement slot discarded during error recovery. The driver
// never hands a faulted unit to the interpreter, so executing one is itself a
// runtime fault rather than undefined behavior.
type BadStmt struct {
	Token Token
}

func (s *ExpressionStmt) StmtNode() {}
func (s *PrintStmt) StmtNode()      {}
func (s *VarStmt) StmtNode()        {}
func (s *BlockStmt) StmtNode()      {}
func (s *IfStmt) StmtNode()         {}
func (s *WhileStmt) StmtNode()      {}
func (s *BadStmt) StmtNode()        {}
