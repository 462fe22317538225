package engine

import (
	"context"

	"github.com/arthur-debert/rdpgen/pkg/logging"
	"github.com/arthur-debert/rdpgen/pkg/probe"
	"github.com/arthur-debert/rdpgen/pkg/template"
)

// Engine renders parsed templates into connection profiles. An Engine holds
// no per-render state and may be reused; each Render call creates its own
// RenderContext.
type Engine struct {
	probe  probe.Probe
	signer Signer
}

// New creates an engine. A nil probe answers every query with an empty
// network context; a nil signer makes any sign request fail.
func New(p probe.Probe, s Signer) *Engine {
	if p == nil {
		p = probe.Offline{}
	}
	return &Engine{probe: p, signer: s}
}

// Request carries the per-render inputs.
type Request struct {
	// Args is the argument vector exposed as argv and args.
	Args []string
	// SignOverride, when set, wins over any sign() directive.
	SignOverride *SignRequest
}

// Render executes tmpl and assembles the final document. Any error aborts the
// render and no document is returned.
func (e *Engine) Render(ctx context.Context, tmpl *template.Template, req Request) (*Document, error) {
	logger := logging.GetLogger("engine")
	done := logging.LogOperationStart(logger, "render "+tmpl.Name)
	defer done()

	rc := NewRenderContext(ctx, req.Args, e.probe)

	text, err := NewRenderer(rc).Render(tmpl)
	if err != nil {
		logger.Debug().Err(err).Msg("render aborted")
		return nil, err
	}

	doc, err := NewAssembler(e.signer).Assemble(rc, text, req.SignOverride)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("settings", len(doc.Settings)).
		Bool("signed", doc.Signed()).
		Msg("render complete")
	return doc, nil
}

// RenderString parses src and renders it.
func (e *Engine) RenderString(ctx context.Context, name, src string, opts template.Options, req Request) (*Document, error) {
	tmpl, err := template.Parse(name, src, opts)
	if err != nil {
		return nil, err
	}
	return e.Render(ctx, tmpl, req)
}
