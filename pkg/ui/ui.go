// Package ui renders command results for humans and scripts.
//
// A Printer writes in one of three formats: styled terminal output using
// lipgloss and pterm, the same layout with styling removed, or JSON.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/rdpgen/pkg/errors"
	"github.com/pterm/pterm"
)

// Printer writes messages, errors and tables to out.
type Printer struct {
	out    io.Writer
	format Format
	theme  *Theme
}

// NewPrinter creates a printer. FormatAuto is treated as FormatText; resolve
// it against the real stream with Format.Resolve first.
func NewPrinter(out io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = FormatText
	}
	return &Printer{out: out, format: format, theme: DefaultTheme()}
}

// WithTheme replaces the printer's theme.
func (p *Printer) WithTheme(theme *Theme) *Printer {
	p.theme = theme
	return p
}

// Format returns the effective output format.
func (p *Printer) Format() Format {
	return p.format
}

func (p *Printer) styled(style, s string) string {
	if p.format != FormatTerminal {
		return s
	}
	return p.theme.Style(style).Render(s)
}

// Title writes a heading.
func (p *Printer) Title(s string) error {
	if p.format == FormatJSON {
		return nil
	}
	_, err := fmt.Fprintln(p.out, p.styled("Title", s))
	return err
}

// Message writes an informational line.
func (p *Printer) Message(msg string) error {
	if p.format == FormatJSON {
		return p.JSON(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(p.out, msg)
	return err
}

// Success writes a confirmation line.
func (p *Printer) Success(msg string) error {
	if p.format == FormatJSON {
		return p.JSON(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(p.out, p.styled("Success", msg))
	return err
}

// Warning writes a line the user should notice but that does not fail the
// command.
func (p *Printer) Warning(msg string) error {
	if p.format == FormatJSON {
		return p.JSON(map[string]string{"warning": msg})
	}
	_, err := fmt.Fprintln(p.out, p.styled("Warning", "Warning: "+msg))
	return err
}

// Error writes err followed by its details, one per line in key order.
func (p *Printer) Error(err error) error {
	details := errors.GetErrorDetails(err)
	if p.format == FormatJSON {
		obj := map[string]interface{}{"error": err.Error()}
		if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
			obj["code"] = string(code)
		}
		if len(details) > 0 {
			obj["details"] = details
		}
		return p.JSON(obj)
	}

	var b strings.Builder
	b.WriteString(p.styled("Error", "Error: "+err.Error()))
	b.WriteString("\n")
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(p.styled("Detail", fmt.Sprintf("%s: %v", k, details[k])))
		b.WriteString("\n")
	}
	_, werr := io.WriteString(p.out, b.String())
	return werr
}

// Table writes rows under header. In JSON the rows become objects keyed by
// the lowercased header names.
func (p *Printer) Table(header []string, rows [][]string) error {
	if p.format == FormatJSON {
		objs := make([]map[string]string, 0, len(rows))
		for _, row := range rows {
			obj := make(map[string]string, len(header))
			for i, h := range header {
				if i < len(row) {
					obj[strings.ToLower(h)] = row[i]
				}
			}
			objs = append(objs, obj)
		}
		return p.JSON(objs)
	}

	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render table")
	}
	if p.format != FormatTerminal {
		out = pterm.RemoveColorFromString(out)
	}
	_, err = fmt.Fprintln(p.out, out)
	return err
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v interface{}) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
