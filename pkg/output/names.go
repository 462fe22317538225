package output

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/logging"
	"github.com/spf13/afero"
)

// maxNameAttempts bounds the search for an unused name.
const maxNameAttempts = 100

// NameGenerator hands out TSPORTAL#NNNNN file names, the shape the client
// expects for web-launched connection files, and removes them on Cleanup.
type NameGenerator struct {
	fs   afero.Fs
	dir  string
	intn func(int) int

	mu        sync.Mutex
	generated []string
}

// NewNameGenerator creates a generator placing files in dir. An empty dir
// means the system temp directory.
func NewNameGenerator(fs afero.Fs, dir string) *NameGenerator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if dir == "" {
		dir = os.TempDir()
	}
	return &NameGenerator{fs: fs, dir: dir, intn: rand.Intn}
}

// Next returns an unused path with the given extension, e.g. ".rdp".
func (g *NameGenerator) Next(ext string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := 0; i < maxNameAttempts; i++ {
		name := fmt.Sprintf("TSPORTAL#%05d%s", g.intn(100000), ext)
		path := filepath.Join(g.dir, name)
		if _, err := g.fs.Stat(path); err == nil {
			continue
		}
		g.generated = append(g.generated, path)
		return path, nil
	}
	return "", errors.Newf(errors.ErrFileWrite, "no free file name in %s", g.dir).WithDetail("dir", g.dir)
}

// Generated returns the paths handed out so far.
func (g *NameGenerator) Generated() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.generated...)
}

// Cleanup removes every generated file that still exists. The client may
// already have deleted them.
func (g *NameGenerator) Cleanup() {
	g.mu.Lock()
	defer g.mu.Unlock()

	logger := logging.GetLogger("output.names")
	for _, path := range g.generated {
		if err := g.fs.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("failed to remove generated file")
		}
	}
	g.generated = nil
}
