package template

import (
	"fmt"
	"strconv"
	"strings"
)

// Pos is a 1-based line/column position inside a template source.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Node is one element of a parsed template.
type Node interface {
	Position() Pos
}

// TextNode is a literal run of template text.
type TextNode struct {
	Pos  Pos
	Text string
}

// OutputNode is a {{ ... }} directive whose value is substituted into the output.
type OutputNode struct {
	Pos    Pos
	Source string
	Expr   Expr
}

// IfNode is a conditional block. Branches are tried in order; Else runs when
// no branch guard is true. Else is nil when the block has no else clause.
type IfNode struct {
	Pos      Pos
	Branches []*Branch
	Else     []Node
}

// Branch is one if/elif arm of an IfNode.
type Branch struct {
	Pos    Pos
	Source string
	Cond   Expr
	Body   []Node
}

func (n *TextNode) Position() Pos   { return n.Pos }
func (n *OutputNode) Position() Pos { return n.Pos }
func (n *IfNode) Position() Pos     { return n.Pos }

// Template is an immutable parsed template.
type Template struct {
	Name string
	Root []Node
}

// Expr is a parsed directive expression.
type Expr interface {
	String() string
}

// StringLit is a quoted string literal.
type StringLit struct{ Value string }

// IntLit is a decimal integer literal.
type IntLit struct{ Value int64 }

// BoolLit is true or false.
type BoolLit struct{ Value bool }

// NoneLit is the none literal.
type NoneLit struct{}

// Ident is a bare name such as argv or args.
type Ident struct{ Name string }

// Call invokes a built-in function by name.
type Call struct {
	Func string
	Args []Expr
}

// Index is x[i].
type Index struct {
	X     Expr
	Index Expr
}

// Not negates its operand.
type Not struct{ X Expr }

// Logical is a short-circuit "and" / "or".
type Logical struct {
	Op   string
	L, R Expr
}

// Compare is ==, !=, in or "not in".
type Compare struct {
	Op   string
	L, R Expr
}

func (e *StringLit) String() string { return strconv.Quote(e.Value) }
func (e *IntLit) String() string    { return strconv.FormatInt(e.Value, 10) }
func (e *NoneLit) String() string   { return "none" }
func (e *Ident) String() string     { return e.Name }
func (e *Not) String() string       { return "not " + e.X.String() }

func (e *BoolLit) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

func (e *Call) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Func + "(" + strings.Join(args, ", ") + ")"
}

func (e *Index) String() string {
	return e.X.String() + "[" + e.Index.String() + "]"
}

func (e *Logical) String() string {
	return "(" + e.L.String() + " " + e.Op + " " + e.R.String() + ")"
}

func (e *Compare) String() string {
	return "(" + e.L.String() + " " + e.Op + " " + e.R.String() + ")"
}
