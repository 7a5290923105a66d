// env.go — chained lexical scope frames used during evaluation.
package lox

// Env is one scope frame: a name→value table plus a link to its enclosing
// frame (nil at the global frame). Frames are pushed on block entry and
// popped on block exit; nested statements reach outer frames only through
// Get and Assign, never by direct table access.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a frame enclosed by parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name in the current frame only, silently overwriting an
// existing binding of the same name in this frame.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Get walks from the current frame to the root and returns the nearest
// binding. An unbound name is a runtime fault carrying the offending token.
func (e *Env) Get(name Token) (Value, error) {
	if v, ok := e.table[name.Lexeme]; ok {
		return v, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Nil, &RuntimeError{Token: name, Msg: "Undefined variable '" + name.Lexeme + "'."}
}

// Assign walks the same chain and mutates the first frame containing the
// name in place. It never defines: an unbound name is a runtime fault.
func (e *Env) Assign(name Token, v Value) error {
	if _, ok := e.table[name.Lexeme]; ok {
		e.table[name.Lexeme] = v
		return nil
	}
	if e.parent != nil {
		return e.parent.Assign(name, v)
	}
	return &RuntimeError{Token: name, Msg: "Undefined variable '" + name.Lexeme + "'."}
}
