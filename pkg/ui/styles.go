package ui

import (
	_ "embed"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

//go:embed embedded/styles.yaml
var defaultStyles []byte

// ColorDef is an adaptive color pair.
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef describes one named style.
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	MarginTop    int    `yaml:"marginTop,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
}

// ThemeConfig is the YAML layout of a theme.
type ThemeConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Theme maps semantic names such as Error or Title to lipgloss styles.
type Theme struct {
	styles map[string]lipgloss.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() *Theme {
	theme, err := ParseTheme(defaultStyles)
	if err != nil {
		panic("embedded styles are invalid: " + err.Error())
	}
	return theme
}

// ParseTheme builds a theme from its YAML description. Style foregrounds and
// backgrounds name entries of the colors table.
func ParseTheme(data []byte) (*Theme, error) {
	var cfg ThemeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors))
	for name, def := range cfg.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	theme := &Theme{styles: make(map[string]lipgloss.Style, len(cfg.Styles))}
	for name, def := range cfg.Styles {
		style, err := buildStyle(def, colors)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "style %s", name)
		}
		theme.styles[name] = style
	}
	return theme, nil
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) (lipgloss.Style, error) {
	style := lipgloss.NewStyle().
		Bold(def.Bold).
		Italic(def.Italic).
		Underline(def.Underline)

	if def.Foreground != "" {
		color, ok := colors[def.Foreground]
		if !ok {
			return style, errors.Newf(errors.ErrConfigValid, "unknown color %q", def.Foreground)
		}
		style = style.Foreground(color)
	}
	if def.Background != "" {
		color, ok := colors[def.Background]
		if !ok {
			return style, errors.Newf(errors.ErrConfigValid, "unknown color %q", def.Background)
		}
		style = style.Background(color)
	}

	if def.MarginTop > 0 {
		style = style.MarginTop(def.MarginTop)
	}
	if def.MarginBottom > 0 {
		style = style.MarginBottom(def.MarginBottom)
	}
	if def.PaddingLeft > 0 {
		style = style.PaddingLeft(def.PaddingLeft)
	}
	return style, nil
}

// Style returns the named style, or an unstyled one when the theme has no
// such entry.
func (t *Theme) Style(name string) lipgloss.Style {
	if style, ok := t.styles[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Has reports whether the theme defines name.
func (t *Theme) Has(name string) bool {
	_, ok := t.styles[name]
	return ok
}
