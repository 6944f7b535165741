package builtins

import (
	"bytes"
	"context"
	"fmt"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// GoInterpreter runs Go snippets for code-writing modules. Every call gets a
// fresh interpreter.
type GoInterpreter struct{}

func NewGoInterpreter() *GoInterpreter {
	return &GoInterpreter{}
}

// Execute evaluates code and returns what it printed, or the value of its
// last expression when it printed nothing.
func (g *GoInterpreter) Execute(ctx context.Context, code string) (string, error) {
	var out bytes.Buffer
	i := interp.New(interp.Options{Stdout: &out, Stderr: &out})
	i.Use(stdlib.Symbols)
	value, err := i.EvalWithContext(ctx, code)
	if err != nil {
		return out.String(), fmt.Errorf("builtins: go interpreter: %w", err)
	}
	if out.Len() > 0 || !value.IsValid() || !value.CanInterface() {
		return out.String(), nil
	}
	return fmt.Sprint(value.Interface()), nil
}
