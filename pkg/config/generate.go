package config

import (
	"strings"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Generate renders cfg as TOML in the layout of the config file.
func Generate(cfg *Config) (string, error) {
	doc := map[string]interface{}{
		"probe": map[string]interface{}{
			"ping_timeout":    cfg.Probe.PingTimeout.String(),
			"command_timeout": cfg.Probe.CommandTimeout.String(),
			"context":         cfg.Probe.Context,
		},
		"render": map[string]interface{}{
			"trim_blocks":   cfg.Render.TrimBlocks,
			"lstrip_blocks": cfg.Render.LStripBlocks,
			"search_paths":  nonNil(cfg.Render.SearchPaths),
		},
		"sign": map[string]interface{}{
			"cert": cfg.Sign.Cert,
			"key":  cfg.Sign.Key,
		},
		"output": map[string]interface{}{
			"encoding":    cfg.Output.Encoding,
			"bom":         cfg.Output.BOM,
			"line_ending": cfg.Output.LineEnding,
		},
		"launch": map[string]interface{}{
			"command":       cfg.Launch.Command,
			"args":          nonNil(cfg.Launch.Args),
			"wait":          cfg.Launch.Wait,
			"cleanup_delay": cfg.Launch.CleanupDelay.String(),
		},
	}

	out, err := toml.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return string(out), nil
}

// GenerateCommented returns the embedded defaults with every value commented
// out, as a starting point for a user config file.
func GenerateCommented() string {
	return commentOutConfigValues(DefaultsContent())
}

// commentOutConfigValues comments out every assignment line, keeping blank
// lines, comments and section headers.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}
	return strings.Join(result, "\n")
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
