// printer.go — structural, fully parenthesized AST printer.
//
// The printer renders every node in prefix form, so operator precedence
// decided by the parser is visible without evaluating anything:
// 1 + 2 * 3 prints as (+ 1 (* 2 3)). Numbers go through the same display
// rule as the runtime.
package lox

import "strings"

// AstPrinter renders expressions and statements as prefix text. It is a
// debugging surface: the interpreter never consumes its output.
type AstPrinter struct{}

// Print renders one expression.
func (pr *AstPrinter) Print(expr Expr) string {
	switch e := expr.(type) {
	case *LiteralExpr:
		return FormatValue(e.Value)
	case *UnaryExpr:
		return pr.parenthesize(e.Operator.Lexeme, e.Right)
	case *BinaryExpr:
		return pr.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *TernaryExpr:
		return pr.parenthesize(e.LeftOp.Lexeme+e.RightOp.Lexeme, e.Left, e.Middle, e.Right)
	case *GroupingExpr:
		return pr.parenthesize("group", e.Expression)
	case *VariableExpr:
		return e.Name.Lexeme
	case *AssignExpr:
		return "(= " + e.Name.Lexeme + " " + pr.Print(e.Value) + ")"
	case *LogicalExpr:
		return pr.parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	}
	return "(?)"
}

// PrintStmt renders one statement.
func (pr *AstPrinter) PrintStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		return pr.parenthesize(";", s.Expression)
	case *PrintStmt:
		return pr.parenthesize("print", s.Expression)
	case *VarStmt:
		if s.Initializer == nil {
			return "(var " + s.Name.Lexeme + ")"
		}
		return "(var " + s.Name.Lexeme + " " + pr.Print(s.Initializer) + ")"
	case *BlockStmt:
		var b strings.Builder
		b.WriteString("(block")
		for _, inner := range s.Statements {
			b.WriteString(" ")
			b.WriteString(pr.PrintStmt(inner))
		}
		b.WriteString(")")
		return b.String()
	case *IfStmt:
		if s.Else == nil {
			return "(if " + pr.Print(s.Condition) + " " + pr.PrintStmt(s.Then) + ")"
		}
		return "(if-else " + pr.Print(s.Condition) + " " + pr.PrintStmt(s.Then) +
			" " + pr.PrintStmt(s.Else) + ")"
	case *WhileStmt:
		return "(while " + pr.Print(s.Condition) + " " + pr.PrintStmt(s.Body) + ")"
	case *BadStmt:
		return "(bad)"
	}
	return "(?)"
}

func (pr *AstPrinter) parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder

	b.WriteString("(")
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteString(" ")
		b.WriteString(pr.Print(e))
	}
	b.WriteString(")")

	return b.String()
}
