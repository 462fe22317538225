package template

import (
	"strings"
)

// Options controls whitespace handling around block tags.
type Options struct {
	// TrimBlocks removes the first newline after a block tag.
	TrimBlocks bool
	// LStripBlocks strips indentation before a block tag.
	LStripBlocks bool
}

// Parse parses src into a Template. Every directive, including those inside
// blocks that may never execute, is parsed here so that syntax errors are
// reported before any evaluation starts.
func Parse(name, src string, opts Options) (*Template, error) {
	segs, err := lex(name, src)
	if err != nil {
		return nil, err
	}
	applyWhitespaceControl(segs, opts)

	p := &parser{name: name, segs: segs}
	root, err := p.parseNodes(nil)
	if err != nil {
		return nil, err
	}
	return &Template{Name: name, Root: root}, nil
}

type parser struct {
	name string
	segs []segment
	pos  int
}

// frame is an open {% if %} block on the parser stack.
type frame struct {
	node *IfNode
	// inElse is set once {% else %} has been seen.
	inElse bool
}

// parseNodes consumes segments until a block tag that closes or continues the
// enclosing frame. Top-level parsing passes a nil frame.
func (p *parser) parseNodes(open *frame) ([]Node, error) {
	var nodes []Node

	for p.pos < len(p.segs) {
		seg := p.segs[p.pos]

		switch seg.kind {
		case segComment:
			p.pos++

		case segText:
			p.pos++
			if seg.body != "" {
				nodes = append(nodes, &TextNode{Pos: seg.pos, Text: seg.body})
			}

		case segOutput:
			p.pos++
			expr, err := ParseExpr(seg.body)
			if err != nil {
				return nil, syntaxError(p.name, seg.pos, "invalid expression {{ %s }}: %v", seg.body, err)
			}
			nodes = append(nodes, &OutputNode{Pos: seg.pos, Source: seg.body, Expr: expr})

		case segBlock:
			keyword, rest := splitKeyword(seg.body)
			switch keyword {
			case "if":
				p.pos++
				node, err := p.parseIf(seg, rest)
				if err != nil {
					return nil, err
				}
				nodes = append(nodes, node)
			case "elif", "else", "endif":
				if open == nil {
					return nil, syntaxError(p.name, seg.pos, "unexpected {%% %s %%} outside of an if block", keyword)
				}
				// The enclosing parseIf handles the tag.
				return nodes, nil
			case "":
				return nil, syntaxError(p.name, seg.pos, "empty block tag")
			default:
				return nil, syntaxError(p.name, seg.pos, "unknown block tag %q", keyword)
			}
		}
	}

	if open != nil {
		return nil, syntaxError(p.name, open.node.Pos, "unclosed {%% if %%} block, expected {%% endif %%}")
	}
	return nodes, nil
}

func (p *parser) parseIf(seg segment, cond string) (*IfNode, error) {
	node := &IfNode{Pos: seg.pos}
	fr := &frame{node: node}

	branch, err := p.newBranch(seg, cond)
	if err != nil {
		return nil, err
	}

	for {
		body, err := p.parseNodes(fr)
		if err != nil {
			return nil, err
		}
		if fr.inElse {
			node.Else = body
		} else {
			branch.Body = body
			node.Branches = append(node.Branches, branch)
		}

		// parseNodes returned on elif/else/endif.
		tag := p.segs[p.pos]
		p.pos++
		keyword, rest := splitKeyword(tag.body)

		switch keyword {
		case "endif":
			if rest != "" {
				return nil, syntaxError(p.name, tag.pos, "unexpected %q after endif", rest)
			}
			if fr.inElse && node.Else == nil {
				node.Else = []Node{}
			}
			return node, nil
		case "elif":
			if fr.inElse {
				return nil, syntaxError(p.name, tag.pos, "{%% elif %%} after {%% else %%}")
			}
			branch, err = p.newBranch(tag, rest)
			if err != nil {
				return nil, err
			}
		case "else":
			if fr.inElse {
				return nil, syntaxError(p.name, tag.pos, "duplicate {%% else %%}")
			}
			if rest != "" {
				return nil, syntaxError(p.name, tag.pos, "unexpected %q after else", rest)
			}
			fr.inElse = true
		}
	}
}

func (p *parser) newBranch(seg segment, cond string) (*Branch, error) {
	if cond == "" {
		return nil, syntaxError(p.name, seg.pos, "missing condition in {%% %s %%}", seg.body)
	}
	expr, err := ParseExpr(cond)
	if err != nil {
		return nil, syntaxError(p.name, seg.pos, "invalid condition %q: %v", cond, err)
	}
	return &Branch{Pos: seg.pos, Source: cond, Cond: expr}, nil
}

func splitKeyword(body string) (string, string) {
	keyword, rest, _ := strings.Cut(body, " ")
	if i := strings.IndexAny(keyword, "\t\r\n("); i >= 0 {
		rest = keyword[i:] + " " + rest
		keyword = keyword[:i]
	}
	return keyword, strings.TrimSpace(rest)
}
