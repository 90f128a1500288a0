package parser

import (
	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/token"
)

// parsePattern implements the pattern grammar described in §4.3: "patterns
// share their own recursive-descent parser: identifier, _, literal,
// Name(p, …), tuple (p, …), list destructuring with ..rest or .._".
func (p *Parser) parsePattern() ast.Pattern {
	pos := p.cur().Pos
	switch p.cur().Kind {
	case token.IDENT:
		name := p.advance().Text
		if name == "_" {
			return ast.PatWildcard{Loc: ast.Loc{At: pos}}
		}
		if p.check(token.LPAREN) {
			p.advance()
			args := p.parsePatternList(token.RPAREN)
			p.expect(token.RPAREN, "to close constructor pattern")
			return ast.PatConstructor{Loc: ast.Loc{At: pos}, Name: name, Args: args}
		}
		return ast.PatIdent{Loc: ast.Loc{At: pos}, Name: name}
	case token.LPAREN:
		p.advance()
		elems := p.parsePatternList(token.RPAREN)
		p.expect(token.RPAREN, "to close tuple pattern")
		return ast.PatTuple{Loc: ast.Loc{At: pos}, Elements: elems}
	case token.LBRACKET:
		p.advance()
		elems := p.parsePatternList(token.RBRACKET)
		p.expect(token.RBRACKET, "to close list pattern")
		// List destructuring is represented as a Constructor("List", ...)
		// pattern — spec.md §3 does not define a dedicated list-pattern
		// AST variant, and §9's open question leaves its lowering a TODO
		// regardless; see DESIGN.md.
		return ast.PatConstructor{Loc: ast.Loc{At: pos}, Name: "List", Args: elems}
	case token.RANGE_EXCL:
		p.advance()
		if p.check(token.IDENT) && p.cur().Text == "_" {
			p.advance()
			return ast.PatRest{Loc: ast.Loc{At: pos}}
		}
		name := p.expect(token.IDENT, "rest pattern name").Text
		return ast.PatRest{Loc: ast.Loc{At: pos}, Name: name}
	case token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE, token.MINUS:
		e := p.parseUnary()
		return ast.PatLit{Loc: ast.Loc{At: pos}, Value: e}
	default:
		p.errorf(p.cur(), "expected pattern, found %s", p.cur().Kind)
		p.synchronize()
		return ast.PatWildcard{Loc: ast.Loc{At: pos}}
	}
}

func (p *Parser) parsePatternList(end token.Kind) []ast.Pattern {
	var out []ast.Pattern
	for !p.check(end) && !p.check(token.EOF) {
		out = append(out, p.parsePattern())
		if !p.match(token.COMMA) {
			break
		}
	}
	return out
}
