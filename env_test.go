// env_test.go
package aether

import "testing"

func ident(name string, line int) Token {
	return Token{Type: IDENTIFIER, Lexeme: name, Literal: name, Line: line}
}

func Test_Env_Define_And_Get(t *testing.T) {
	env := NewEnv(nil)
	env.Define("x", Num(1))
	v, err := env.Get(ident("x", 1))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.Data.(float64) != 1 {
		t.Fatalf("got %v", v)
	}
}

func Test_Env_Get_Walks_Enclosing_Chain(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", Str("outer"))
	inner := NewEnv(NewEnv(outer))
	v, err := inner.Get(ident("x", 3))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.Data.(string) != "outer" {
		t.Fatalf("got %v", v)
	}
}

func Test_Env_Shadowing(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", Num(1))
	inner := NewEnv(outer)
	inner.Define("x", Num(2))

	v, _ := inner.Get(ident("x", 1))
	if v.Data.(float64) != 2 {
		t.Fatalf("inner sees %v, want 2", v)
	}
	v, _ = outer.Get(ident("x", 1))
	if v.Data.(float64) != 1 {
		t.Fatalf("outer sees %v, want 1", v)
	}
}

func Test_Env_Assign_Updates_Nearest_Binding(t *testing.T) {
	outer := NewEnv(nil)
	outer.Define("x", Num(1))
	inner := NewEnv(outer)

	if err := inner.Assign(ident("x", 2), Num(9)); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	v, _ := outer.Get(ident("x", 2))
	if v.Data.(float64) != 9 {
		t.Fatalf("outer x = %v, want 9", v)
	}
}

func Test_Env_Assign_Never_Creates_Bindings(t *testing.T) {
	env := NewEnv(NewEnv(nil))
	err := env.Assign(ident("ghost", 7), Num(1))
	if err == nil {
		t.Fatal("expected undefined-variable error")
	}
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("got %T, want *RuntimeError", err)
	}
	if re.Line != 7 {
		t.Fatalf("line = %d, want 7", re.Line)
	}
}

func Test_Env_Get_Undefined_Names_The_Variable(t *testing.T) {
	env := NewEnv(nil)
	_, err := env.Get(ident("missing", 4))
	re, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("got %T, want *RuntimeError", err)
	}
	if re.Message != "Undefined variable 'missing'." {
		t.Fatalf("message = %q", re.Message)
	}
}
