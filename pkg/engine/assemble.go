package engine

import (
	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/logging"
)

// Signer signs a finished document with a certificate and key. cert and key
// are references (usually paths) the signer knows how to load.
type Signer interface {
	Sign(doc []byte, cert, key string) ([]byte, error)
}

// SignerFunc adapts a function to the Signer interface.
type SignerFunc func(doc []byte, cert, key string) ([]byte, error)

// Sign calls f.
func (f SignerFunc) Sign(doc []byte, cert, key string) ([]byte, error) {
	return f(doc, cert, key)
}

// Document is the result of one render.
type Document struct {
	// Text is the rendered text before signing.
	Text string
	// Bytes is the final document: Text, or the signed bytes when Sign is set.
	Bytes []byte
	// Sign is the request that was applied, nil when unsigned.
	Sign *SignRequest
	// Settings are the settings emitted during the render in order.
	Settings []Setting
}

// Signed reports whether a signature was applied.
func (d *Document) Signed() bool {
	return d.Sign != nil
}

// Assembler finalizes rendered text. It is the only place signing happens.
type Assembler struct {
	signer Signer
}

// NewAssembler creates an assembler. signer may be nil when no document will
// ever be signed; resolving a sign request without one is a SIGNING error.
func NewAssembler(signer Signer) *Assembler {
	return &Assembler{signer: signer}
}

// Assemble resolves the pending sign request against override and, when one
// results, signs text.
func (a *Assembler) Assemble(rc *RenderContext, text string, override *SignRequest) (*Document, error) {
	logger := logging.GetLogger("engine.assemble")

	doc := &Document{
		Text:     text,
		Bytes:    []byte(text),
		Settings: rc.Settings.All(),
	}

	req := rc.Sign.Resolve(override)
	if req == nil {
		logger.Debug().Msg("no signing requested")
		return doc, nil
	}

	if a.signer == nil {
		return nil, errors.New(errors.ErrSigning, "document requests signing but no signer is configured").
			WithDetails(map[string]interface{}{"cert": req.Cert, "key": req.Key})
	}

	logger.Info().
		Str("cert", req.Cert).
		Str("key", req.Key).
		Bool("override", override != nil).
		Msg("signing document")

	signed, err := a.signer.Sign(doc.Bytes, req.Cert, req.Key)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrSigning) {
			return nil, err
		}
		return nil, errors.Wrapf(err, errors.ErrSigning, "failed to sign document with %s", req.Cert).
			WithDetails(map[string]interface{}{"cert": req.Cert, "key": req.Key})
	}

	doc.Bytes = signed
	doc.Sign = req
	return doc, nil
}
