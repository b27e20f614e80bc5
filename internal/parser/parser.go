// Package parser turns a textual arithmetic expression into an
// abstract syntax tree (armjit/internal/ast). It operates directly on
// half-open byte ranges of a space-stripped copy of the input rather
// than on a separate token stream: the grammar is small enough that a
// range-based recursive descent is both the simplest and the most
// direct rendering of its precedence rules.
package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"armjit/internal/ast"
	"armjit/internal/errs"
)

// Parse builds the AST for expression. It does not attempt error
// recovery: the first problem encountered aborts the whole parse.
func Parse(expression string) (*ast.Node, error) {
	p := &parser{src: strings.ReplaceAll(expression, " ", "")}
	return p.parse(0, len(p.src))
}

type parser struct {
	src string // space-stripped expression text
}

func (p *parser) parse(l, r int) (*ast.Node, error) {
	l, r = p.stripParens(l, r)
	if l >= r {
		return ast.ZeroConstant(), nil
	}
	if pos, tag, ok := p.findSplit(l, r); ok {
		left, err := p.parse(l, pos)
		if err != nil {
			return nil, err
		}
		right, err := p.parse(pos+1, r)
		if err != nil {
			return nil, err
		}
		return &ast.Node{Tag: tag, Children: []*ast.Node{left, right}}, nil
	}
	return p.parseLeaf(l, r)
}

// stripParens removes balanced outer parentheses one layer at a time:
// as long as the range is wrapped in '(' ... ')' AND that specific
// opening paren is the one matching that specific closing paren (the
// depth inside never goes negative), the wrapping layer is dropped.
func (p *parser) stripParens(l, r int) (int, int) {
	for l < r && p.src[l] == '(' && p.src[r-1] == ')' && p.innerBalanced(l, r-1) {
		l++
		r--
	}
	return l, r
}

func (p *parser) innerBalanced(open, closeIdx int) bool {
	depth := 0
	for i := open + 1; i < closeIdx; i++ {
		switch p.src[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth < 0 {
			return false
		}
	}
	return true
}

// findSplit scans [l, r) at parenthesis depth 0 for the arithmetic
// operator with the lowest precedence, breaking ties by keeping the
// rightmost candidate. The very first depth-0 operator found is
// always a candidate. From the second one onward, a candidate only
// replaces the current best if it is not immediately preceded by '*'
// (a sign glued to a preceding product is part of that product's
// operand, not a split point), and afterward the scan skips the run
// of '*', '+', '-' characters that follows plus one more byte,
// tolerating stacked unary signs such as "5*-+-3".
func (p *parser) findSplit(l, r int) (pos int, tag ast.Tag, found bool) {
	depth := 0
	havePos := false
	bestPos := l
	bestPrec := 0
	var bestTag ast.Tag

	i := l
	for i < r {
		switch p.src[i] {
		case '(':
			depth++
			i++
			continue
		case ')':
			depth--
			i++
			continue
		}
		if depth != 0 {
			i++
			continue
		}
		prec, tg, ok := precedenceOf(p.src[i])
		if !ok {
			i++
			continue
		}
		if !havePos {
			bestPos, bestPrec, bestTag = i, prec, tg
			havePos = true
			i++
			continue
		}
		if prec <= bestPrec && p.src[i-1] != '*' {
			bestPos, bestPrec, bestTag = i, prec, tg
		}
		i++
		for i < r && isOperatorByte(p.src[i]) {
			i++
		}
		i++
	}
	if !havePos {
		return 0, 0, false
	}
	return bestPos, bestTag, true
}

func precedenceOf(c byte) (prec int, tag ast.Tag, ok bool) {
	switch c {
	case '+':
		return 0, ast.Plus, true
	case '-':
		return 0, ast.Minus, true
	case '*':
		return 1, ast.Product, true
	}
	return 0, 0, false
}

func isOperatorByte(c byte) bool {
	return c == '+' || c == '-' || c == '*'
}

// parseLeaf classifies a non-splittable range: a leading digit makes
// it a Constant, a '(' anywhere makes it a Function call, and
// anything else is a bare Variable name.
func (p *parser) parseLeaf(l, r int) (*ast.Node, error) {
	if l >= r {
		return ast.ZeroConstant(), nil
	}
	c := p.src[l]
	if c >= '0' && c <= '9' {
		return p.parseConstant(l, r)
	}
	if idx := strings.IndexByte(p.src[l:r], '('); idx >= 0 {
		return p.parseFunction(l, r, l+idx)
	}
	return p.parseVariable(l, r)
}

func (p *parser) parseConstant(l, r int) (*ast.Node, error) {
	text := p.src[l:r]
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return nil, errs.Malformedf(l, r, "constant %q contains a non-digit character", text)
		}
	}
	val, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return nil, errs.Malformedf(l, r, "invalid constant %q: %v", text, err)
	}
	if val > math.MaxUint32 {
		return nil, errs.Overflow(text)
	}
	return &ast.Node{Tag: ast.Constant, Content: fmt.Sprintf("0x%x", val)}, nil
}

func (p *parser) parseVariable(l, r int) (*ast.Node, error) {
	name := p.src[l:r]
	if strings.ContainsAny(name, "()+-*,") {
		return nil, errs.Malformedf(l, r, "invalid variable name %q", name)
	}
	return &ast.Node{Tag: ast.Variable, Content: name}, nil
}

func (p *parser) parseFunction(l, r, open int) (*ast.Node, error) {
	name := p.src[l:open]
	if name == "" {
		return nil, errs.Malformedf(l, r, "function call is missing a name")
	}
	closeIdx, ok := p.matchParen(open, r)
	if !ok {
		return nil, errs.Malformedf(l, r, "unbalanced parentheses in call to %q", name)
	}
	if closeIdx != r-1 {
		return nil, errs.Malformedf(l, r, "unexpected characters after call to %q", name)
	}

	children := make([]*ast.Node, 0, 4)
	for _, rg := range p.splitTopLevelCommas(open+1, closeIdx) {
		child, err := p.parse(rg[0], rg[1])
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	if len(children) == 0 {
		return nil, errs.Malformedf(l, r, "call to %q has no arguments", name)
	}
	return &ast.Node{Tag: ast.Function, Content: name, Children: children}, nil
}

func (p *parser) matchParen(open, r int) (int, bool) {
	depth := 0
	for i := open; i < r; i++ {
		switch p.src[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

// splitTopLevelCommas splits [start, end) on commas seen at paren
// depth 0. An empty range yields a single empty sub-range, which
// parse() resolves to the synthetic zero constant — the same rule
// applied to an empty arithmetic operand, applied here to an empty
// argument list.
func (p *parser) splitTopLevelCommas(start, end int) [][2]int {
	if start == end {
		return [][2]int{{start, end}}
	}
	var ranges [][2]int
	depth := 0
	segStart := start
	for i := start; i < end; i++ {
		switch p.src[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				ranges = append(ranges, [2]int{segStart, i})
				segStart = i + 1
			}
		}
	}
	ranges = append(ranges, [2]int{segStart, end})
	return ranges
}
