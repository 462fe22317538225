package output

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/logging"
	"github.com/spf13/afero"
)

// StdoutName is the destination that writes to standard output.
const StdoutName = "-"

// Writer writes encoded documents to a filesystem or standard output.
type Writer struct {
	fs     afero.Fs
	stdout io.Writer
	format Format
}

// NewWriter creates a writer over fs. A nil fs means the OS filesystem.
func NewWriter(fs afero.Fs, format Format) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs, stdout: os.Stdout, format: format}
}

// WithStdout replaces the stream used for the "-" destination.
func (w *Writer) WithStdout(out io.Writer) *Writer {
	w.stdout = out
	return w
}

// Write encodes doc and writes it to dest.
func (w *Writer) Write(dest string, doc []byte) error {
	logger := logging.GetLogger("output.writer")

	data, err := w.format.Encode(doc)
	if err != nil {
		return err
	}

	if dest == StdoutName {
		if _, err := w.stdout.Write(data); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "failed to write document to stdout")
		}
		return nil
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := w.fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to create %s", dir).WithDetail("path", dest)
		}
	}
	if err := afero.WriteFile(w.fs, dest, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", dest).WithDetail("path", dest)
	}

	logger.Info().Str("path", dest).Int("bytes", len(data)).Msg("wrote connection file")
	return nil
}
