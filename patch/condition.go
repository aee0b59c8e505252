package patch

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Condition is a boolean expression evaluated against a document before a
// patch is applied, e.g. `len(pages) > 0 && pages[0].id == "home"`. The
// document's top-level keys are the expression's variables.
type Condition struct {
	src     string
	program *vm.Program
}

// NewCondition compiles src.
func NewCondition(src string) (*Condition, error) {
	program, err := expr.Compile(src, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling condition %q: %w", src, err)
	}
	return &Condition{src: src, program: program}, nil
}

// MustCondition is like NewCondition but panics on error.
func MustCondition(src string) *Condition {
	c, err := NewCondition(src)
	if err != nil {
		panic(err)
	}
	return c
}

// Evaluate runs the condition with doc as its environment.
func (c *Condition) Evaluate(doc map[string]any) (bool, error) {
	env := doc
	if env == nil {
		env = map[string]any{}
	}
	out, err := expr.Run(c.program, env)
	if err != nil {
		return false, err
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("condition %q returned %T", c.src, out)
	}
	return ok, nil
}

func (c *Condition) String() string {
	return c.src
}
