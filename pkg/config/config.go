package config

import (
	"time"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/arthur-debert/rdpgen/pkg/output"
	"github.com/arthur-debert/rdpgen/pkg/template"
)

// Config is the effective rdpgen configuration.
type Config struct {
	Probe  Probe  `koanf:"probe"`
	Render Render `koanf:"render"`
	Sign   Sign   `koanf:"sign"`
	Output Output `koanf:"output"`
	Launch Launch `koanf:"launch"`
}

// Probe configures network context queries.
type Probe struct {
	PingTimeout    time.Duration `koanf:"ping_timeout"`
	CommandTimeout time.Duration `koanf:"command_timeout"`
	Context        string        `koanf:"context"`
}

// Render configures template parsing and reference resolution.
type Render struct {
	TrimBlocks   bool     `koanf:"trim_blocks"`
	LStripBlocks bool     `koanf:"lstrip_blocks"`
	SearchPaths  []string `koanf:"search_paths"`
}

// Sign is the default signing pair.
type Sign struct {
	Cert string `koanf:"cert"`
	Key  string `koanf:"key"`
}

// Output configures the on-disk encoding.
type Output struct {
	Encoding   string `koanf:"encoding"`
	BOM        bool   `koanf:"bom"`
	LineEnding string `koanf:"line_ending"`
}

// Launch configures the Remote Desktop client.
type Launch struct {
	Command      string        `koanf:"command"`
	Args         []string      `koanf:"args"`
	Wait         bool          `koanf:"wait"`
	CleanupDelay time.Duration `koanf:"cleanup_delay"`
}

// Validate checks values that cannot be expressed by types alone.
func (c *Config) Validate() error {
	if (c.Sign.Cert == "") != (c.Sign.Key == "") {
		return errors.New(errors.ErrConfigValid, "sign.cert and sign.key must be set together")
	}
	if c.Probe.PingTimeout < 0 || c.Probe.CommandTimeout < 0 || c.Launch.CleanupDelay < 0 {
		return errors.New(errors.ErrConfigValid, "timeouts and delays must not be negative")
	}
	if c.Launch.Command == "" {
		return errors.New(errors.ErrConfigValid, "launch.command must not be empty")
	}
	return c.OutputFormat().Validate()
}

// TemplateOptions returns the parser options.
func (c *Config) TemplateOptions() template.Options {
	return template.Options{TrimBlocks: c.Render.TrimBlocks, LStripBlocks: c.Render.LStripBlocks}
}

// OutputFormat returns the file encoding.
func (c *Config) OutputFormat() output.Format {
	return output.Format{Encoding: c.Output.Encoding, BOM: c.Output.BOM, LineEnding: c.Output.LineEnding}
}

// LaunchOptions returns the client launch settings.
func (c *Config) LaunchOptions() output.LaunchOptions {
	return output.LaunchOptions{
		Command:      c.Launch.Command,
		Args:         append([]string(nil), c.Launch.Args...),
		Wait:         c.Launch.Wait,
		CleanupDelay: c.Launch.CleanupDelay,
	}
}

// HasSign reports whether a default signing pair is configured.
func (c *Config) HasSign() bool {
	return c.Sign.Cert != "" && c.Sign.Key != ""
}
