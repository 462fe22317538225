package template

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/logging"
	"github.com/spf13/afero"
)

// StdinName is the template path that reads from standard input.
const StdinName = "-"

// Loader reads and parses templates from a filesystem.
type Loader struct {
	fs      afero.Fs
	stdin   io.Reader
	options Options
}

// NewLoader creates a loader over fs. A nil fs means the OS filesystem.
func NewLoader(fs afero.Fs, opts Options) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs, stdin: os.Stdin, options: opts}
}

// WithStdin replaces the reader used for the "-" template path.
func (l *Loader) WithStdin(r io.Reader) *Loader {
	l.stdin = r
	return l
}

// Load reads and parses the template at path.
func (l *Loader) Load(path string) (*Template, error) {
	logger := logging.GetLogger("template.loader")

	var data []byte
	var err error
	if path == StdinName {
		data, err = io.ReadAll(l.stdin)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to read template from stdin")
		}
	} else {
		data, err = afero.ReadFile(l.fs, path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrapf(err, errors.ErrFileNotFound, "template %s not found", path).
					WithDetail("path", path)
			}
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read template %s", path).
				WithDetail("path", path)
		}
	}

	logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("loaded template")

	return Parse(l.name(path), string(data), l.options)
}

// Dir returns the directory a template path refers to, used to resolve
// relative references made from inside the template.
func Dir(path string) string {
	if path == StdinName {
		return "."
	}
	return filepath.Dir(path)
}

func (l *Loader) name(path string) string {
	if path == StdinName {
		return "<stdin>"
	}
	return path
}
