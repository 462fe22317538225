package engine

// SignRequest names the certificate and key a document should be signed with.
// Both are references resolved by the Signer, usually file paths.
type SignRequest struct {
	Cert string
	Key  string
}

// SignRegister holds the single pending sign request of a render. sign()
// directives overwrite it; nothing is signed until the assembler resolves it.
type SignRegister struct {
	pending *SignRequest
}

// Record overwrites the pending request.
func (r *SignRegister) Record(cert, key string) {
	r.pending = &SignRequest{Cert: cert, Key: key}
}

// Pending returns the request recorded by the template, if any.
func (r *SignRegister) Pending() (SignRequest, bool) {
	if r.pending == nil {
		return SignRequest{}, false
	}
	return *r.pending, true
}

// Resolve returns the request to apply: override wins when non-nil,
// otherwise the last recorded request, otherwise nil.
func (r *SignRegister) Resolve(override *SignRequest) *SignRequest {
	if override != nil {
		req := *override
		return &req
	}
	if r.pending == nil {
		return nil
	}
	req := *r.pending
	return &req
}
