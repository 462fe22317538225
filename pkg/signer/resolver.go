package signer

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/spf13/afero"
)

// Resolver turns certificate and key references into file contents.
// Relative references are tried against each search directory in order.
type Resolver struct {
	fs     afero.Fs
	search []string
}

// NewResolver creates a resolver over fs. dirs are searched in order for
// relative references; the template directory usually comes first.
func NewResolver(fs afero.Fs, dirs ...string) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	search := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d != "" {
			search = append(search, d)
		}
	}
	if len(search) == 0 {
		search = append(search, ".")
	}
	return &Resolver{fs: fs, search: search}
}

// Resolve returns the path ref refers to.
func (r *Resolver) Resolve(ref string) (string, error) {
	if ref == "" {
		return "", errors.New(errors.ErrSigning, "empty certificate or key reference")
	}
	ref = expandHome(ref)

	if filepath.IsAbs(ref) {
		if r.exists(ref) {
			return ref, nil
		}
		return "", notFound(ref, nil)
	}

	for _, dir := range r.search {
		candidate := filepath.Join(dir, ref)
		if r.exists(candidate) {
			return candidate, nil
		}
	}
	return "", notFound(ref, r.search)
}

// Read resolves ref and returns the file contents.
func (r *Resolver) Read(ref string) ([]byte, error) {
	path, err := r.Resolve(ref)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSigning, "failed to read %s", path).
			WithDetail("path", path)
	}
	return data, nil
}

func (r *Resolver) exists(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func expandHome(ref string) string {
	if ref == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(ref, "~/") || strings.HasPrefix(ref, `~\`) {
		return filepath.Join(xdg.Home, ref[2:])
	}
	return ref
}

func notFound(ref string, searched []string) error {
	err := errors.Newf(errors.ErrSigning, "cannot find %s", ref).WithDetail("ref", ref)
	if len(searched) > 0 {
		err = err.WithDetail("searched", searched)
	}
	return err
}
