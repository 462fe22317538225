// Package output writes finished connection files and hands them to the
// Remote Desktop client.
package output

import (
	"strings"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"golang.org/x/text/encoding/unicode"
)

// Supported encodings and line endings.
const (
	EncodingUTF16LE = "utf-16le"
	EncodingUTF8    = "utf-8"

	LineEndingCRLF = "crlf"
	LineEndingLF   = "lf"
)

// Format describes how a document is encoded on disk.
type Format struct {
	Encoding   string
	BOM        bool
	LineEnding string
}

// DefaultFormat is what the Remote Desktop client writes itself.
func DefaultFormat() Format {
	return Format{Encoding: EncodingUTF16LE, BOM: true, LineEnding: LineEndingCRLF}
}

// Validate checks the format fields.
func (f Format) Validate() error {
	switch strings.ToLower(f.Encoding) {
	case EncodingUTF16LE, EncodingUTF8:
	default:
		return errors.Newf(errors.ErrConfigValid, "unsupported output encoding %q", f.Encoding).
			WithDetail("encoding", f.Encoding)
	}
	switch strings.ToLower(f.LineEnding) {
	case LineEndingCRLF, LineEndingLF:
	default:
		return errors.Newf(errors.ErrConfigValid, "unsupported line ending %q", f.LineEnding).
			WithDetail("line_ending", f.LineEnding)
	}
	return nil
}

// Encode normalizes line endings and encodes doc.
func (f Format) Encode(doc []byte) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	text := strings.TrimPrefix(string(doc), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if strings.EqualFold(f.LineEnding, LineEndingCRLF) {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	if f.BOM {
		text = "\ufeff" + text
	}

	if strings.EqualFold(f.Encoding, EncodingUTF8) {
		return []byte(text), nil
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	out, err := enc.Bytes([]byte(text))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileWrite, "failed to encode document")
	}
	return out, nil
}
