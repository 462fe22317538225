package template

import (
	"sort"
	"strings"

	"github.com/arthur-debert/rdpgen/pkg/errors"
)

type segmentKind int

const (
	segText segmentKind = iota
	segOutput
	segBlock
	segComment
)

// segment is a raw slice of the source: either literal text or the body of a tag.
type segment struct {
	kind      segmentKind
	body      string
	pos       Pos
	trimLeft  bool
	trimRight bool
}

var delimiters = map[string]struct {
	kind  segmentKind
	close string
}{
	"{{": {segOutput, "}}"},
	"{%": {segBlock, "%}"},
	"{#": {segComment, "#}"},
}

// lineIndex maps byte offsets to line/column positions.
type lineIndex []int

func newLineIndex(src string) lineIndex {
	idx := lineIndex{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func (l lineIndex) pos(offset int) Pos {
	line := sort.Search(len(l), func(i int) bool { return l[i] > offset }) - 1
	return Pos{Line: line + 1, Col: offset - l[line] + 1}
}

func syntaxError(name string, pos Pos, format string, args ...interface{}) error {
	return errors.Newf(errors.ErrTemplateSyntax, "%s:%s: "+format, append([]interface{}{name, pos}, args...)...).
		WithDetail("template", name).
		WithDetail("line", pos.Line).
		WithDetail("column", pos.Col)
}

// lex splits src into text and tag segments.
func lex(name, src string) ([]segment, error) {
	lines := newLineIndex(src)
	var segs []segment

	i := 0
	for i < len(src) {
		open := nextOpener(src, i)
		if open < 0 {
			segs = append(segs, segment{kind: segText, body: src[i:], pos: lines.pos(i)})
			break
		}
		if open > i {
			segs = append(segs, segment{kind: segText, body: src[i:open], pos: lines.pos(i)})
		}

		delim := delimiters[src[open:open+2]]
		start := open + 2
		seg := segment{kind: delim.kind, pos: lines.pos(open)}
		if start < len(src) && src[start] == '-' {
			seg.trimLeft = true
			start++
		}

		end := findClose(src, start, delim.close, delim.kind != segComment)
		if end < 0 {
			return nil, syntaxError(name, seg.pos, "unclosed %q tag, expected %q", src[open:open+2], delim.close)
		}

		inner := src[start:end]
		if strings.HasSuffix(inner, "-") {
			seg.trimRight = true
			inner = inner[:len(inner)-1]
		}
		seg.body = strings.TrimSpace(inner)
		segs = append(segs, seg)
		i = end + len(delim.close)
	}

	return segs, nil
}

// nextOpener returns the offset of the next tag opener at or after from, or -1.
func nextOpener(src string, from int) int {
	for i := from; i+1 < len(src); i++ {
		if src[i] != '{' {
			continue
		}
		switch src[i+1] {
		case '{', '%', '#':
			return i
		}
	}
	return -1
}

// findClose finds the closing delimiter, skipping over quoted strings when
// quoted is set so that "}}" inside a string literal does not end the tag.
func findClose(src string, from int, closer string, quoted bool) int {
	var quote byte
	for i := from; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		if quoted && (c == '"' || c == '\'') {
			quote = c
			continue
		}
		if strings.HasPrefix(src[i:], closer) {
			return i
		}
	}
	return -1
}

// applyWhitespaceControl trims text segments around tags that request it.
func applyWhitespaceControl(segs []segment, opts Options) {
	for i := range segs {
		seg := &segs[i]
		if seg.kind == segText {
			continue
		}

		if i > 0 && segs[i-1].kind == segText {
			prev := &segs[i-1]
			switch {
			case seg.trimLeft:
				prev.body = strings.TrimRight(prev.body, " \t\r\n")
			case opts.LStripBlocks && seg.kind != segOutput:
				prev.body = lstripLine(prev.body, prev.pos.Col == 1)
			}
		}

		if i+1 < len(segs) && segs[i+1].kind == segText {
			next := &segs[i+1]
			switch {
			case seg.trimRight:
				next.body = strings.TrimLeft(next.body, " \t\r\n")
			case opts.TrimBlocks && seg.kind != segOutput:
				next.body = trimFirstNewline(next.body)
			}
		}
	}
}

// lstripLine removes spaces and tabs between the last newline and the end of s,
// but only when that tail is pure indentation at the start of a line.
func lstripLine(s string, atLineStart bool) string {
	cut := strings.LastIndexByte(s, '\n') + 1
	if cut == 0 && !atLineStart {
		return s
	}
	if strings.Trim(s[cut:], " \t") == "" {
		return s[:cut]
	}
	return s
}

func trimFirstNewline(s string) string {
	switch {
	case strings.HasPrefix(s, "\r\n"):
		return s[2:]
	case strings.HasPrefix(s, "\n"):
		return s[1:]
	}
	return s
}
