package engine

import (
	"context"

	"github.com/arthur-debert/rdpgen/pkg/probe"
)

// RenderContext is the mutable state of exactly one render. It is created
// right before a template is processed and dropped once the document has
// been assembled; it must not be shared between renders or goroutines.
type RenderContext struct {
	ctx      context.Context
	args     []string
	Settings *SettingsStore
	Sign     *SignRegister
	Probe    probe.Probe
}

// NewRenderContext creates the state for a single render. args is copied so
// the argument vector stays immutable for the duration of the render.
func NewRenderContext(ctx context.Context, args []string, p probe.Probe) *RenderContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if p == nil {
		p = probe.Offline{}
	}
	argv := make([]string, len(args))
	copy(argv, args)
	return &RenderContext{
		ctx:      ctx,
		args:     argv,
		Settings: NewSettingsStore(),
		Sign:     &SignRegister{},
		Probe:    p,
	}
}

// Args returns a copy of the argument vector.
func (rc *RenderContext) Args() []string {
	out := make([]string, len(rc.args))
	copy(out, rc.args)
	return out
}

// Context returns the context handed to network probes.
func (rc *RenderContext) Context() context.Context {
	return rc.ctx
}
