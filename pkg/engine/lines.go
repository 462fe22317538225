package engine

import (
	"strings"

	"github.com/rs/zerolog"
)

// lineWriter accumulates rendered output and feeds every completed line into
// the settings store. A line only completes when its terminator is written,
// so a setting never becomes visible to directives on its own line.
type lineWriter struct {
	buf      strings.Builder
	line     strings.Builder
	pendingR bool
	settings *SettingsStore
	logger   zerolog.Logger
}

func newLineWriter(settings *SettingsStore, logger zerolog.Logger) *lineWriter {
	return &lineWriter{settings: settings, logger: logger}
}

// WriteString appends s to the output. \n, \r\n and \r all end a line.
func (w *lineWriter) WriteString(s string) {
	w.buf.WriteString(s)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if w.pendingR {
			w.pendingR = false
			if c == '\n' {
				continue
			}
		}
		switch c {
		case '\r':
			w.pendingR = true
			w.endLine()
		case '\n':
			w.endLine()
		default:
			w.line.WriteByte(c)
		}
	}
}

// Flush completes the final unterminated line, if any.
func (w *lineWriter) Flush() {
	if w.line.Len() > 0 {
		w.endLine()
	}
}

// String returns everything written so far.
func (w *lineWriter) String() string {
	return w.buf.String()
}

func (w *lineWriter) endLine() {
	text := w.line.String()
	w.line.Reset()

	if strings.TrimSpace(text) == "" {
		return
	}
	setting, ok := ParseSettingLine(text)
	if !ok {
		w.logger.Debug().Str("line", text).Msg("output line is not a setting")
		return
	}
	w.settings.Append(setting)
	w.logger.Trace().Str("key", setting.Key).Str("type", setting.Type).Msg("setting emitted")
}
