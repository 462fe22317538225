package engine

import (
	stderrors "errors"
	"fmt"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/logging"
	"github.com/arthur-debert/rdpgen/pkg/template"
)

// Renderer executes a parsed template against one RenderContext.
type Renderer struct {
	rc   *RenderContext
	eval *Evaluator
	out  *lineWriter
	name string
}

// NewRenderer creates a renderer for a single render.
func NewRenderer(rc *RenderContext) *Renderer {
	return &Renderer{
		rc:   rc,
		eval: NewEvaluator(rc),
		out:  newLineWriter(rc.Settings, logging.GetLogger("engine.render")),
	}
}

// Render walks tmpl in document order and returns the rendered text. Bodies
// of conditionals are only entered when their guard is truthy, so skipped
// branches have no side effects. On error no text is returned.
func (r *Renderer) Render(tmpl *template.Template) (string, error) {
	r.name = tmpl.Name
	if err := r.renderNodes(tmpl.Root); err != nil {
		return "", err
	}
	r.out.Flush()
	return r.out.String(), nil
}

func (r *Renderer) renderNodes(nodes []template.Node) error {
	for _, node := range nodes {
		if err := r.renderNode(node); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderNode(node template.Node) error {
	switch n := node.(type) {
	case *template.TextNode:
		r.out.WriteString(n.Text)
		return nil

	case *template.OutputNode:
		v, err := r.eval.Eval(n.Expr)
		if err != nil {
			return r.annotate(err, n.Pos, "{{ "+n.Source+" }}")
		}
		r.out.WriteString(Stringify(v))
		return nil

	case *template.IfNode:
		for i, branch := range n.Branches {
			ok, err := r.eval.EvalBool(branch.Cond)
			if err != nil {
				kw := "if"
				if i > 0 {
					kw = "elif"
				}
				return r.annotate(err, branch.Pos, "{% "+kw+" "+branch.Source+" %}")
			}
			if ok {
				return r.renderNodes(branch.Body)
			}
		}
		return r.renderNodes(n.Else)
	}
	return errors.Newf(errors.ErrInternal, "unsupported node %T", node)
}

// annotate attaches the template position and directive source to an
// evaluation error.
func (r *Renderer) annotate(err error, pos template.Pos, directive string) error {
	var rerr *errors.RdpgenError
	if !stderrors.As(err, &rerr) {
		rerr = errors.Wrap(err, errors.ErrEvaluation, "evaluation failed")
	}
	rerr.Message = fmt.Sprintf("%s:%s: %s (in %s)", r.name, pos, rerr.Message, directive)
	return rerr.WithDetails(map[string]interface{}{
		"template":  r.name,
		"line":      pos.Line,
		"column":    pos.Col,
		"directive": directive,
	})
}
