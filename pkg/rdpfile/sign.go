package rdpfile

import (
	"encoding/base64"
	"encoding/binary"
	"strings"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/logging"
	"golang.org/x/text/encoding/unicode"
)

// The PKCS#7 blob in a signature value is preceded by version, type and
// length as little endian uint32s.
const (
	signatureVersion = 0x00010001
	signatureType    = 0x00000001
	signatureWrap    = 64
)

// BlobSigner produces a detached signature over blob.
type BlobSigner func(blob []byte) ([]byte, error)

// Scope returns the secure settings present in f, in signing order, with
// their canonical names.
func (f *File) Scope() ([]Line, []string) {
	var lines []Line
	var names []string
	for _, s := range SecureSettings {
		if l, ok := f.Lookup(s.Name); ok {
			lines = append(lines, l)
			names = append(names, s.Canonical)
		}
	}
	return lines, names
}

// SigningBlob returns the bytes a signature covers: the secure lines and the
// signscope line, CRLF separated, NUL terminated, encoded as UTF-16LE.
func SigningBlob(lines []Line, scope string) ([]byte, error) {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.String())
		b.WriteString("\r\n")
	}
	b.WriteString(SignatureScope + ":s:" + scope + "\r\n\x00")

	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	blob, err := enc.Bytes([]byte(b.String()))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSigning, "failed to encode signing blob")
	}
	return blob, nil
}

// EncodeSignature wraps a PKCS#7 blob in the signature header and formats it
// as the signature setting value.
func EncodeSignature(der []byte) string {
	sig := make([]byte, 12, 12+len(der))
	binary.LittleEndian.PutUint32(sig[0:], signatureVersion)
	binary.LittleEndian.PutUint32(sig[4:], signatureType)
	binary.LittleEndian.PutUint32(sig[8:], uint32(len(der)))
	sig = append(sig, der...)

	encoded := base64.StdEncoding.EncodeToString(sig)
	chunks := make([]string, 0, len(encoded)/signatureWrap+1)
	for len(encoded) > signatureWrap {
		chunks = append(chunks, encoded[:signatureWrap])
		encoded = encoded[signatureWrap:]
	}
	chunks = append(chunks, encoded)
	return strings.Join(chunks, "  ")
}

// Sign adds signscope and signature settings to f. When the file has a full
// address but no alternate full address, the alternate is pinned to the same
// value so it cannot be added unsigned later.
func (f *File) Sign(sign BlobSigner) error {
	logger := logging.GetLogger("rdpfile.sign")

	if !f.Has(AlternateFullAddress) && f.Has(FullAddress) {
		f.AddBlank()
		if err := f.Set(AlternateFullAddress, f.FullAddress(), TypeString); err != nil {
			return err
		}
	}

	lines, names := f.Scope()
	if len(lines) == 0 {
		return errors.New(errors.ErrSigning, "document has no secure settings to sign")
	}
	scope := strings.Join(names, ",")
	logger.Info().Str("scope", strings.Join(names, ", ")).Msg("signature scope")

	blob, err := SigningBlob(lines, scope)
	if err != nil {
		return err
	}
	der, err := sign(blob)
	if err != nil {
		return err
	}

	f.Remove(SignatureScope)
	f.Remove(Signature)
	f.AddBlank()
	if err := f.Set(SignatureScope, scope, TypeString); err != nil {
		return err
	}
	return f.Set(Signature, EncodeSignature(der), TypeString)
}
