package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG_CONFIG_HOME at an empty directory so a developer's own
// config file does not leak into tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		isolate(t)
		cfg, err := Load(LoadOptions{Path: writeConfig(t, "")})
		require.NoError(t, err)

		assert.Equal(t, 2*time.Second, cfg.Probe.PingTimeout)
		assert.Equal(t, 5*time.Second, cfg.Probe.CommandTimeout)
		assert.Equal(t, "utf-16le", cfg.Output.Encoding)
		assert.True(t, cfg.Output.BOM)
		assert.Equal(t, "crlf", cfg.Output.LineEnding)
		assert.Equal(t, "mstsc.exe", cfg.Launch.Command)
		assert.Equal(t, []string{"/Web", "/WebFileName:{file}"}, cfg.Launch.Args)
		assert.Equal(t, time.Second, cfg.Launch.CleanupDelay)
		assert.False(t, cfg.HasSign())
	})

	t.Run("user_file_overrides_defaults", func(t *testing.T) {
		isolate(t)
		path := writeConfig(t, `
[probe]
ping_timeout = "500ms"

[render]
trim_blocks = true
search_paths = ["/etc/rdpgen/certs"]

[sign]
cert = "pub.crt"
key = "pub.key"
`)
		cfg, err := Load(LoadOptions{Path: path})
		require.NoError(t, err)

		assert.Equal(t, 500*time.Millisecond, cfg.Probe.PingTimeout)
		assert.True(t, cfg.Render.TrimBlocks)
		assert.True(t, cfg.TemplateOptions().TrimBlocks)
		assert.Equal(t, []string{"/etc/rdpgen/certs"}, cfg.Render.SearchPaths)
		assert.True(t, cfg.HasSign())
		assert.Equal(t, 5*time.Second, cfg.Probe.CommandTimeout)
	})

	t.Run("env_overrides_file", func(t *testing.T) {
		isolate(t)
		path := writeConfig(t, "[probe]\nping_timeout = \"500ms\"\n")
		t.Setenv("RDPGEN_PROBE_PING_TIMEOUT", "3s")
		t.Setenv("RDPGEN_OUTPUT_LINE_ENDING", "lf")
		t.Setenv("RDPGEN_RENDER_SEARCH_PATHS", "a,b")

		cfg, err := Load(LoadOptions{Path: path})
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, cfg.Probe.PingTimeout)
		assert.Equal(t, "lf", cfg.Output.LineEnding)
		assert.Equal(t, []string{"a", "b"}, cfg.Render.SearchPaths)
	})

	t.Run("flag_overrides_win", func(t *testing.T) {
		isolate(t)
		t.Setenv("RDPGEN_LAUNCH_WAIT", "false")
		cfg, err := Load(LoadOptions{
			Path: writeConfig(t, ""),
			Overrides: map[string]interface{}{
				"launch.wait":   true,
				"probe.context": "ctx.yaml",
			},
		})
		require.NoError(t, err)
		assert.True(t, cfg.Launch.Wait)
		assert.Equal(t, "ctx.yaml", cfg.Probe.Context)
	})

	t.Run("default_path_is_optional", func(t *testing.T) {
		isolate(t)
		_, err := Load(LoadOptions{})
		require.NoError(t, err)
	})

	t.Run("explicit_path_must_exist", func(t *testing.T) {
		isolate(t)
		_, err := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "missing.toml")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("invalid_toml", func(t *testing.T) {
		isolate(t)
		_, err := Load(LoadOptions{Path: writeConfig(t, "[probe\n")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("half_sign_pair_is_invalid", func(t *testing.T) {
		isolate(t)
		_, err := Load(LoadOptions{Path: writeConfig(t, "[sign]\ncert = \"a.crt\"\n")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("bad_encoding_is_invalid", func(t *testing.T) {
		isolate(t)
		_, err := Load(LoadOptions{Path: writeConfig(t, "[output]\nencoding = \"latin1\"\n")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})
}

func TestGenerate(t *testing.T) {
	isolate(t)
	cfg, err := Load(LoadOptions{Path: writeConfig(t, "")})
	require.NoError(t, err)

	out, err := Generate(cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "[launch]")
	assert.Regexp(t, `cleanup_delay = ['"]1s['"]`, out)

	// The generated document loads back to the same configuration.
	path := writeConfig(t, out)
	again, err := Load(LoadOptions{Path: path})
	require.NoError(t, err)
	assert.Equal(t, cfg, again)

	var raw map[string]interface{}
	require.NoError(t, toml.Unmarshal([]byte(out), &raw))
	assert.Len(t, raw, 5)
}

func TestGenerateCommented(t *testing.T) {
	out := GenerateCommented()
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), line)
	}
	assert.Contains(t, out, "# command = \"mstsc.exe\"")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
