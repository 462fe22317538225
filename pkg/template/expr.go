package template

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenString
	tokenNumber
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
	tokenComma
	tokenEq
	tokenNeq
)

type token struct {
	kind tokenKind
	raw  string
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	for i < len(input) {
		ch := input[i]
		if isSpace(ch) {
			i++
			continue
		}

		switch ch {
		case '(':
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
			i++
			continue
		case ')':
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
			i++
			continue
		case '[':
			tokens = append(tokens, token{kind: tokenLBracket, raw: "["})
			i++
			continue
		case ']':
			tokens = append(tokens, token{kind: tokenRBracket, raw: "]"})
			i++
			continue
		case ',':
			tokens = append(tokens, token{kind: tokenComma, raw: ","})
			i++
			continue
		case '=':
			if i+1 >= len(input) || input[i+1] != '=' {
				return nil, errors.New("unexpected '='; use '=='")
			}
			tokens = append(tokens, token{kind: tokenEq, raw: "=="})
			i += 2
			continue
		case '!':
			if i+1 >= len(input) || input[i+1] != '=' {
				return nil, errors.New("unexpected '!'; use 'not'")
			}
			tokens = append(tokens, token{kind: tokenNeq, raw: "!="})
			i += 2
			continue
		case '"', '\'':
			value, next, err := scanString(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, raw: value})
			i = next
			continue
		}

		switch {
		case ch >= '0' && ch <= '9', ch == '-' && i+1 < len(input) && input[i+1] >= '0' && input[i+1] <= '9':
			start := i
			i++
			for i < len(input) && input[i] >= '0' && input[i] <= '9' {
				i++
			}
			tokens = append(tokens, token{kind: tokenNumber, raw: input[start:i]})
		case isIdentByte(ch, true):
			start := i
			for i < len(input) && isIdentByte(input[i], false) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, raw: input[start:i]})
		default:
			return nil, fmt.Errorf("unexpected character %q", ch)
		}
	}

	return tokens, nil
}

// scanString reads a quoted literal starting at input[start] and returns its
// unescaped value and the offset just past the closing quote.
func scanString(input string, start int) (string, int, error) {
	quote := input[start]
	var b strings.Builder
	for i := start + 1; i < len(input); i++ {
		c := input[i]
		if c == quote {
			return b.String(), i + 1, nil
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(input) {
			break
		}
		switch input[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(input[i])
		}
	}
	return "", 0, errors.New("unterminated string literal")
}

type tokenStream struct {
	tokens []token
	pos    int
}

func (s *tokenStream) peek() (token, bool) {
	if s.pos >= len(s.tokens) {
		return token{}, false
	}
	return s.tokens[s.pos], true
}

func (s *tokenStream) match(kind tokenKind) bool {
	tok, ok := s.peek()
	if !ok || tok.kind != kind {
		return false
	}
	s.pos++
	return true
}

func (s *tokenStream) matchKeyword(word string) bool {
	tok, ok := s.peek()
	if !ok || tok.kind != tokenIdent || tok.raw != word {
		return false
	}
	s.pos++
	return true
}

// peekKeywords reports whether the next tokens are exactly the given keywords.
func (s *tokenStream) peekKeywords(words ...string) bool {
	for i, w := range words {
		if s.pos+i >= len(s.tokens) {
			return false
		}
		tok := s.tokens[s.pos+i]
		if tok.kind != tokenIdent || tok.raw != w {
			return false
		}
	}
	return true
}

func (s *tokenStream) expect(kind tokenKind, what string) error {
	if s.match(kind) {
		return nil
	}
	if tok, ok := s.peek(); ok {
		return fmt.Errorf("expected %s, found %q", what, tok.raw)
	}
	return fmt.Errorf("expected %s, found end of expression", what)
}

var reserved = map[string]bool{"and": true, "or": true, "not": true, "in": true}

// ParseExpr parses a single directive expression.
func ParseExpr(input string) (Expr, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, errors.New("empty expression")
	}

	stream := &tokenStream{tokens: tokens}
	expr, err := parseOr(stream)
	if err != nil {
		return nil, err
	}
	if tok, ok := stream.peek(); ok {
		return nil, fmt.Errorf("unexpected token %q", tok.raw)
	}
	return expr, nil
}

func parseOr(s *tokenStream) (Expr, error) {
	left, err := parseAnd(s)
	if err != nil {
		return nil, err
	}
	for s.matchKeyword("or") {
		right, err := parseAnd(s)
		if err != nil {
			return nil, err
		}
		left = &Logical{Op: "or", L: left, R: right}
	}
	return left, nil
}

func parseAnd(s *tokenStream) (Expr, error) {
	left, err := parseNot(s)
	if err != nil {
		return nil, err
	}
	for s.matchKeyword("and") {
		right, err := parseNot(s)
		if err != nil {
			return nil, err
		}
		left = &Logical{Op: "and", L: left, R: right}
	}
	return left, nil
}

func parseNot(s *tokenStream) (Expr, error) {
	if s.matchKeyword("not") {
		inner, err := parseNot(s)
		if err != nil {
			return nil, err
		}
		return &Not{X: inner}, nil
	}
	return parseCompare(s)
}

func parseCompare(s *tokenStream) (Expr, error) {
	left, err := parsePostfix(s)
	if err != nil {
		return nil, err
	}

	var op string
	switch {
	case s.match(tokenEq):
		op = "=="
	case s.match(tokenNeq):
		op = "!="
	case s.matchKeyword("in"):
		op = "in"
	case s.peekKeywords("not", "in"):
		s.pos += 2
		op = "not in"
	default:
		return left, nil
	}

	right, err := parsePostfix(s)
	if err != nil {
		return nil, err
	}
	return &Compare{Op: op, L: left, R: right}, nil
}

func parsePostfix(s *tokenStream) (Expr, error) {
	expr, err := parsePrimary(s)
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case s.match(tokenLParen):
			ident, ok := expr.(*Ident)
			if !ok {
				return nil, fmt.Errorf("%s is not callable", expr)
			}
			args, err := parseArgs(s)
			if err != nil {
				return nil, err
			}
			expr = &Call{Func: ident.Name, Args: args}
		case s.match(tokenLBracket):
			index, err := parseOr(s)
			if err != nil {
				return nil, err
			}
			if err := s.expect(tokenRBracket, "']'"); err != nil {
				return nil, err
			}
			expr = &Index{X: expr, Index: index}
		default:
			return expr, nil
		}
	}
}

func parseArgs(s *tokenStream) ([]Expr, error) {
	var args []Expr
	if s.match(tokenRParen) {
		return args, nil
	}
	for {
		arg, err := parseOr(s)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if s.match(tokenRParen) {
			return args, nil
		}
		if err := s.expect(tokenComma, "',' or ')'"); err != nil {
			return nil, err
		}
	}
}

func parsePrimary(s *tokenStream) (Expr, error) {
	tok, ok := s.peek()
	if !ok {
		return nil, errors.New("unexpected end of expression")
	}
	s.pos++

	switch tok.kind {
	case tokenString:
		return &StringLit{Value: tok.raw}, nil
	case tokenNumber:
		n, err := strconv.ParseInt(tok.raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number literal %q", tok.raw)
		}
		return &IntLit{Value: n}, nil
	case tokenLParen:
		inner, err := parseOr(s)
		if err != nil {
			return nil, err
		}
		if err := s.expect(tokenRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case tokenIdent:
		switch strings.ToLower(tok.raw) {
		case "true":
			return &BoolLit{Value: true}, nil
		case "false":
			return &BoolLit{Value: false}, nil
		case "none", "null":
			return &NoneLit{}, nil
		}
		if reserved[tok.raw] {
			return nil, fmt.Errorf("unexpected keyword %q", tok.raw)
		}
		return &Ident{Name: tok.raw}, nil
	}
	return nil, fmt.Errorf("unexpected token %q", tok.raw)
}
