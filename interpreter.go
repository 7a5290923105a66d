// interpreter.go — tree-walking evaluator for the parsed statement sequence.
//
// EXECUTION & SCOPING
// -------------------
// The Interpreter is an explicit session object. Globals is the root frame
// and survives across Interpret calls, so a REPL accumulates bindings; env is
// the frame statements currently execute against. Blocks push one child frame
// on entry and restore the previous frame on every exit path, faulted or not.
//
// RUNTIME FAULTS
// --------------
// Evaluation propagates *RuntimeError as an ordinary error return. The first
// fault aborts the remainder of the batch and Interpret hands it to the
// caller; the session (and its environment chain) stays usable for further
// input. There is no user-level catch — faults are host-level signals only.
package lox

import (
	"fmt"
	"io"
	"os"
)

// Interpreter executes statements against a chained scope. One instance holds
// the long-lived global frame for the lifetime of a session.
type Interpreter struct {
	Globals *Env
	env     *Env
	Stdout  io.Writer // print statement output; os.Stdout by default
}

// NewInterpreter creates a session with an empty global frame.
func NewInterpreter() *Interpreter {
	g := NewEnv(nil)
	return &Interpreter{Globals: g, env: g, Stdout: os.Stdout}
}

// Interpret executes each statement in order against the current environment.
// The first runtime fault aborts the rest of the batch and is returned as a
// *RuntimeError; the environment keeps whatever bindings were made before it.
func (ip *Interpreter) Interpret(stmts []Stmt) error {
	for _, s := range stmts {
		if err := ip.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (ip *Interpreter) execute(stmt Stmt) error {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		_, err := ip.evaluate(s.Expression)
		return err

	case *PrintStmt:
		v, err := ip.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(ip.Stdout, FormatValue(v))
		return nil

	case *VarStmt:
		value := Nil
		if s.Initializer != nil {
			var err error
			if value, err = ip.evaluate(s.Initializer); err != nil {
				return err
			}
		}
		ip.env.Define(s.Name.Lexeme, value)
		return nil

	case *BlockStmt:
		return ip.executeBlock(s.Statements, NewEnv(ip.env))

	case *IfStmt:
		cond, err := ip.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if cond.Truthy() {
			return ip.execute(s.Then)
		}
		if s.Else != nil {
			return ip.execute(s.Else)
		}
		return nil

	case *WhileStmt:
		for {
			cond, err := ip.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !cond.Truthy() {
				return nil
			}
			if err := ip.execute(s.Body); err != nil {
				return err
			}
		}

	case *BadStmt:
		// Reachable only if a faulted unit was handed over anyway.
		return &RuntimeError{Token: s.Token, Msg: "Cannot execute invalid statement."}
	}

	return nil
}

// executeBlock runs stmts in env, restoring the previous frame on every exit
// path including a propagating fault.
func (ip *Interpreter) executeBlock(stmts []Stmt, env *Env) error {
	prev := ip.env
	ip.env = env
	defer func() { ip.env = prev }()

	for _, s := range stmts {
		if err := ip.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (ip *Interpreter) evaluate(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil

	case *GroupingExpr:
		return ip.evaluate(e.Expression)

	case *VariableExpr:
		return ip.env.Get(e.Name)

	case *AssignExpr:
		v, err := ip.evaluate(e.Value)
		if err != nil {
			return Nil, err
		}
		if err := ip.env.Assign(e.Name, v); err != nil {
			return Nil, err
		}
		return v, nil

	case *UnaryExpr:
		right, err := ip.evaluate(e.Right)
		if err != nil {
			return Nil, err
		}
		switch e.Operator.Type {
		case BANG:
			return Bool(!right.Truthy()), nil
		case MINUS:
			if right.Tag != VTNum {
				return Nil, &RuntimeError{Token: e.Operator, Msg: "Operand must be a number."}
			}
			return Num(-right.Data.(float64)), nil
		}
		return Nil, nil

	case *LogicalExpr:
		left, err := ip.evaluate(e.Left)
		if err != nil {
			return Nil, err
		}
		// Short-circuit: yield the deciding operand itself, not a coerced
		// boolean.
		if e.Operator.Type == OR {
			if left.Truthy() {
				return left, nil
			}
		} else {
			if !left.Truthy() {
				return left, nil
			}
		}
		return ip.evaluate(e.Right)

	case *TernaryExpr:
		cond, err := ip.evaluate(e.Left)
		if err != nil {
			return Nil, err
		}
		if cond.Truthy() {
			return ip.evaluate(e.Middle)
		}
		return ip.evaluate(e.Right)

	case *BinaryExpr:
		return ip.binaryOp(e)
	}

	return Nil, nil
}

func (ip *Interpreter) binaryOp(e *BinaryExpr) (Value, error) {
	// The comma operator sequences: left runs for effect, right is the result.
	if e.Operator.Type == COMMA {
		if _, err := ip.evaluate(e.Left); err != nil {
			return Nil, err
		}
		return ip.evaluate(e.Right)
	}

	left, err := ip.evaluate(e.Left)
	if err != nil {
		return Nil, err
	}
	right, err := ip.evaluate(e.Right)
	if err != nil {
		return Nil, err
	}

	switch e.Operator.Type {
	// Equality operators.
	case NEQ:
		return Bool(!left.Equal(right)), nil
	case EQ:
		return Bool(left.Equal(right)), nil

	// Comparison operators.
	case GREATER:
		a, b, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return Nil, err
		}
		return Bool(a > b), nil
	case GREATER_EQ:
		a, b, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return Nil, err
		}
		return Bool(a >= b), nil
	case LESS:
		a, b, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return Nil, err
		}
		return Bool(a < b), nil
	case LESS_EQ:
		a, b, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return Nil, err
		}
		return Bool(a <= b), nil

	// Arithmetic operators.
	case MINUS:
		a, b, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return Nil, err
		}
		return Num(a - b), nil
	case PLUS:
		if left.Tag == VTNum && right.Tag == VTNum {
			return Num(left.Data.(float64) + right.Data.(float64)), nil
		}
		// One string operand concatenates; the other side is stringified
		// with the display rule, symmetric in operand order.
		if left.Tag == VTStr || right.Tag == VTStr {
			return Str(FormatValue(left) + FormatValue(right)), nil
		}
		return Nil, &RuntimeError{Token: e.Operator, Msg: "Operands must be two numbers or two strings."}
	case DIV:
		a, b, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return Nil, err
		}
		// Positive or negative zero faults rather than producing inf/NaN.
		if b == 0 {
			return Nil, &RuntimeError{Token: e.Operator, Msg: "Cannot divide by zero!"}
		}
		return Num(a / b), nil
	case MULT:
		a, b, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return Nil, err
		}
		return Num(a * b), nil
	}

	return Nil, nil
}

func numberOperands(op Token, left, right Value) (float64, float64, error) {
	if left.Tag == VTNum && right.Tag == VTNum {
		return left.Data.(float64), right.Data.(float64), nil
	}
	return 0, 0, &RuntimeError{Token: op, Msg: "Operands must be numbers."}
}
