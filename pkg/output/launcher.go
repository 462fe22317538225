package output

import (
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/logging"
)

// FilePlaceholder in launch arguments is replaced with the generated path.
const FilePlaceholder = "{file}"

// Process is a started client.
type Process interface {
	Wait() error
}

// Starter starts a program without waiting for it.
type Starter interface {
	Start(name string, args ...string) (Process, error)
}

// ExecStarter starts programs with os/exec.
type ExecStarter struct{}

// Start implements Starter.
func (ExecStarter) Start(name string, args ...string) (Process, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

// LaunchOptions configures how the client is started.
type LaunchOptions struct {
	Command string
	Args    []string
	// Wait blocks until the client exits.
	Wait bool
	// CleanupDelay is how long the file is kept after the client starts.
	CleanupDelay time.Duration
}

// Launcher writes a document to a generated file and opens it in the client.
type Launcher struct {
	writer  *Writer
	names   *NameGenerator
	starter Starter
	opts    LaunchOptions
	sleep   func(time.Duration)
}

// NewLauncher creates a launcher. A nil starter uses ExecStarter.
func NewLauncher(writer *Writer, names *NameGenerator, starter Starter, opts LaunchOptions) *Launcher {
	if starter == nil {
		starter = ExecStarter{}
	}
	return &Launcher{writer: writer, names: names, starter: starter, opts: opts, sleep: time.Sleep}
}

// Launch writes doc, starts the client on it and removes the file once the
// client had time to read it (or has exited, with Wait).
func (l *Launcher) Launch(doc []byte) error {
	logger := logging.GetLogger("output.launcher")
	defer l.names.Cleanup()

	path, err := l.names.Next(".rdp")
	if err != nil {
		return err
	}
	if err := l.writer.Write(path, doc); err != nil {
		return err
	}
	logger.Info().Str("path", path).Msg("generated connection file")

	args := make([]string, len(l.opts.Args))
	for i, a := range l.opts.Args {
		args[i] = strings.ReplaceAll(a, FilePlaceholder, path)
	}

	logger.Info().Str("command", l.opts.Command).Strs("args", args).Msg("launching client")
	proc, err := l.starter.Start(l.opts.Command, args...)
	if err != nil {
		return errors.Wrapf(err, errors.ErrLaunch, "failed to start %s", l.opts.Command).
			WithDetail("command", l.opts.Command)
	}

	if l.opts.CleanupDelay > 0 {
		l.sleep(l.opts.CleanupDelay)
	}
	if l.opts.Wait {
		if err := proc.Wait(); err != nil {
			return errors.Wrapf(err, errors.ErrLaunch, "%s exited with an error", l.opts.Command).
				WithDetail("command", l.opts.Command)
		}
	}
	return nil
}
