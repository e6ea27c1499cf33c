// env.go — chained lexical environments.
package aether

import "fmt"

// Env maps names to values and links to an enclosing scope. Lookup and
// assignment walk outward through the chain; Define always binds in the
// current frame, shadowing any enclosing binding. A new Env is created for
// each block and each function call; closures keep their defining chain
// alive.
type Env struct {
	values    map[string]Value
	enclosing *Env
}

// NewEnv creates a frame with the given enclosing scope (nil for globals).
func NewEnv(enclosing *Env) *Env {
	return &Env{values: make(map[string]Value), enclosing: enclosing}
}

// Define (re)binds name in the current frame. It always succeeds.
func (e *Env) Define(name string, v Value) {
	e.values[name] = v
}

// Get resolves name in the nearest frame that binds it. name is checked
// dynamically at use, not statically.
func (e *Env) Get(name Token) (Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return Nil, &RuntimeError{Line: name.Line, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}

// Assign updates the nearest existing binding. It never creates one: a
// prior Define somewhere in the chain is required.
func (e *Env) Assign(name Token, v Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = v
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, v)
	}
	return &RuntimeError{Line: name.Line, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}
