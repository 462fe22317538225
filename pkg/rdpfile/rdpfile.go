// Package rdpfile models a Remote Desktop connection file: an ordered list of
// name:type:value lines whose names compare case-insensitively.
package rdpfile

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/logging"
)

// Setting types understood by the Remote Desktop client.
const (
	TypeString = "s"
	TypeInt    = "i"
)

// Well-known setting names.
const (
	FullAddress           = "full address"
	AlternateFullAddress  = "alternate full address"
	SignatureScope        = "signscope"
	Signature             = "signature"
	RemoteApplicationMode = "remoteapplicationmode"
)

// Line is one setting of a connection file.
type Line struct {
	Name  string
	Type  string
	Value string
}

func (l Line) String() string {
	return l.Name + ":" + l.Type + ":" + l.Value
}

// NewLine validates typ and value and returns the line. Integer values are
// normalized to their decimal form.
func NewLine(name, typ, value string) (Line, error) {
	typ = strings.ToLower(typ)
	switch typ {
	case TypeString:
	case TypeInt:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return Line{}, errors.Newf(errors.ErrInvalidInput, "setting %q: %q is not an integer", name, value).
				WithDetail("setting", name)
		}
		value = strconv.FormatInt(n, 10)
	default:
		return Line{}, errors.Newf(errors.ErrInvalidInput, "setting %q: unrecognised type %q", name, typ).
			WithDetail("setting", name)
	}
	return Line{Name: name, Type: typ, Value: value}, nil
}

// File is an ordered connection file. A nil entry is a blank line.
type File struct {
	entries []*Line
	index   map[string]*Line
}

// New creates an empty file.
func New() *File {
	return &File{index: make(map[string]*Line)}
}

// Parse reads a rendered document. Blank lines are kept, re-declared names
// update the first declaration in place and lines that are not settings are
// dropped with a warning.
func Parse(text string) (*File, error) {
	logger := logging.GetLogger("rdpfile")
	f := New()

	text = strings.TrimPrefix(text, "\ufeff")
	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		if line == "" {
			f.AddBlank()
			continue
		}
		name, rest, ok := strings.Cut(line, ":")
		typ, value, ok2 := strings.Cut(rest, ":")
		if !ok || !ok2 || name == "" {
			logger.Warn().Str("line", line).Msg("unable to parse line")
			continue
		}
		if err := f.Set(name, value, typ); err != nil {
			return nil, err
		}
	}
	f.trimTrailingBlank()
	return f, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// trimTrailingBlank drops the blank entry produced by a final line break,
// which serialization adds back.
func (f *File) trimTrailingBlank() {
	if n := len(f.entries); n > 0 && f.entries[n-1] == nil {
		f.entries = f.entries[:n-1]
	}
}

// Set assigns a setting. An existing setting keeps its position, name and
// type; a new one is appended. Changing a secure setting invalidates any
// existing signature.
func (f *File) Set(name, value, typ string) error {
	key := strings.ToLower(name)
	if typ == "" {
		typ = TypeString
	}
	existing, ok := f.index[key]
	if ok {
		name, typ = existing.Name, existing.Type
	}

	line, err := NewLine(name, typ, value)
	if err != nil {
		return err
	}

	if ok {
		*existing = line
	} else {
		l := line
		f.entries = append(f.entries, &l)
		f.index[key] = &l
	}

	if IsSecure(key) {
		f.Remove(SignatureScope)
		f.Remove(Signature)
	}
	return nil
}

// Get returns the value of a setting.
func (f *File) Get(name string) (string, bool) {
	l, ok := f.index[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return l.Value, true
}

// Lookup returns the full line of a setting.
func (f *File) Lookup(name string) (Line, bool) {
	l, ok := f.index[strings.ToLower(name)]
	if !ok {
		return Line{}, false
	}
	return *l, true
}

// Has reports whether a setting is present.
func (f *File) Has(name string) bool {
	_, ok := f.index[strings.ToLower(name)]
	return ok
}

// Remove deletes a setting if present.
func (f *File) Remove(name string) {
	key := strings.ToLower(name)
	l, ok := f.index[key]
	if !ok {
		return
	}
	delete(f.index, key)
	for i, e := range f.entries {
		if e == l {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return
		}
	}
}

// AddBlank appends a blank line.
func (f *File) AddBlank() {
	f.entries = append(f.entries, nil)
}

// Settings returns the settings in file order.
func (f *File) Settings() []Line {
	out := make([]Line, 0, len(f.index))
	for _, e := range f.entries {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out
}

// Lines returns every line of the file, ending with an empty line.
func (f *File) Lines() []string {
	out := make([]string, 0, len(f.entries)+1)
	for _, e := range f.entries {
		if e == nil {
			out = append(out, "")
			continue
		}
		out = append(out, e.String())
	}
	return append(out, "")
}

// String serializes the file with CRLF line endings.
func (f *File) String() string {
	return strings.Join(f.Lines(), "\r\n")
}

// Signed reports whether the file carries a signature.
func (f *File) Signed() bool {
	return f.Has(SignatureScope) && f.Has(Signature)
}

// FullAddress returns the address the client will connect to.
func (f *File) FullAddress() string {
	v, _ := f.Get(FullAddress)
	return v
}

// IsRemoteApp reports whether the file launches a RemoteApp.
func (f *File) IsRemoteApp() bool {
	v, _ := f.Get(RemoteApplicationMode)
	return v == "1"
}
