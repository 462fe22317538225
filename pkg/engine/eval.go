package engine

import (
	"strings"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/template"
)

// Evaluator evaluates directive expressions against a RenderContext.
type Evaluator struct {
	rc *RenderContext
}

// NewEvaluator creates an evaluator bound to one render.
func NewEvaluator(rc *RenderContext) *Evaluator {
	return &Evaluator{rc: rc}
}

// Eval evaluates expr. Errors carry an errors.ErrorCode but no template
// position; the renderer adds that.
func (e *Evaluator) Eval(expr template.Expr) (Value, error) {
	switch x := expr.(type) {
	case *template.StringLit:
		return x.Value, nil
	case *template.IntLit:
		return x.Value, nil
	case *template.BoolLit:
		return x.Value, nil
	case *template.NoneLit:
		return nil, nil
	case *template.Ident:
		return e.lookup(x.Name)
	case *template.Call:
		return e.call(x)
	case *template.Index:
		return e.index(x)
	case *template.Not:
		v, err := e.Eval(x.X)
		if err != nil {
			return nil, err
		}
		return !Truthy(v), nil
	case *template.Logical:
		return e.logical(x)
	case *template.Compare:
		return e.compare(x)
	}
	return nil, errors.Newf(errors.ErrInternal, "unsupported expression %T", expr)
}

// EvalBool evaluates a guard.
func (e *Evaluator) EvalBool(expr template.Expr) (bool, error) {
	v, err := e.Eval(expr)
	if err != nil {
		return false, err
	}
	return Truthy(v), nil
}

func (e *Evaluator) lookup(name string) (Value, error) {
	switch name {
	case "argv":
		return e.rc.Args(), nil
	case "args":
		return JoinArgs(e.rc.args), nil
	}
	if _, ok := builtins[name]; ok {
		return nil, errors.Newf(errors.ErrEvaluation, "%s is a function, call it as %s()", name, name)
	}
	return nil, errors.Newf(errors.ErrUnknownDirective, "unknown name %q", name).
		WithDetail("name", name)
}

func (e *Evaluator) call(c *template.Call) (Value, error) {
	fn, ok := builtins[c.Func]
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownDirective, "unknown function %q", c.Func).
			WithDetail("function", c.Func)
	}

	n := len(c.Args)
	if n < fn.minArgs || (fn.maxArgs != variadic && n > fn.maxArgs) {
		return nil, errors.Newf(errors.ErrEvaluation, "%s() %s, got %d", c.Func, arityText(fn), n).
			WithDetail("function", c.Func)
	}

	args := make([]Value, n)
	for i, a := range c.Args {
		v, err := e.Eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return fn.call(e.rc, args)
}

func arityText(fn builtin) string {
	switch {
	case fn.maxArgs == variadic:
		return "takes at least " + plural(fn.minArgs)
	case fn.minArgs == fn.maxArgs:
		return "takes exactly " + plural(fn.minArgs)
	}
	return "takes between " + Stringify(int64(fn.minArgs)) + " and " + plural(fn.maxArgs)
}

func plural(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return Stringify(int64(n)) + " arguments"
}

func (e *Evaluator) index(ix *template.Index) (Value, error) {
	target, err := e.Eval(ix.X)
	if err != nil {
		return nil, err
	}
	idx, err := e.Eval(ix.Index)
	if err != nil {
		return nil, err
	}

	list, ok := target.([]string)
	if !ok {
		return nil, errors.Newf(errors.ErrEvaluation, "cannot index %s", typeName(target))
	}
	i, ok := idx.(int64)
	if !ok {
		return nil, errors.Newf(errors.ErrEvaluation, "list index must be an int, got %s", typeName(idx))
	}
	if i < 0 {
		i += int64(len(list))
	}
	if i < 0 || i >= int64(len(list)) {
		return nil, errors.Newf(errors.ErrEvaluation, "index %s out of range for list of length %d", ix.Index, len(list))
	}
	return list[i], nil
}

func (e *Evaluator) logical(l *template.Logical) (Value, error) {
	left, err := e.EvalBool(l.L)
	if err != nil {
		return nil, err
	}
	if l.Op == "or" && left {
		return true, nil
	}
	if l.Op == "and" && !left {
		return false, nil
	}
	return e.EvalBool(l.R)
}

func (e *Evaluator) compare(c *template.Compare) (Value, error) {
	left, err := e.Eval(c.L)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(c.R)
	if err != nil {
		return nil, err
	}

	switch c.Op {
	case "==":
		return equal(left, right), nil
	case "!=":
		return !equal(left, right), nil
	}

	in, err := membership(left, right)
	if err != nil {
		return nil, err
	}
	if c.Op == "not in" {
		return !in, nil
	}
	return in, nil
}

func membership(needle, haystack Value) (bool, error) {
	switch h := haystack.(type) {
	case nil:
		return false, nil
	case []string:
		return containsAny(asList(h), []Value{needle}), nil
	case string:
		s, ok := needle.(string)
		if !ok {
			return false, errors.Newf(errors.ErrEvaluation, "'in <string>' requires a string operand, got %s", typeName(needle))
		}
		return strings.Contains(h, s), nil
	}
	return false, errors.Newf(errors.ErrEvaluation, "argument of type %s is not a collection", typeName(haystack))
}
