package parser

import (
	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/token"
)

// parseTypeExpr parses a surface type annotation: a named type (optionally
// generic), a function type `(T1, T2) -> T3`, or a tuple type `(T1, T2)`.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	pos := p.cur().Pos
	if p.check(token.LPAREN) {
		p.advance()
		var elems []ast.TypeExpr
		for !p.check(token.RPAREN) && !p.check(token.EOF) {
			elems = append(elems, p.parseTypeExpr())
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN, "to close type group")
		if p.match(token.ARROW) {
			ret := p.parseTypeExpr()
			return ast.FunctionType{Loc: ast.Loc{At: pos}, Params: elems, Return: ret}
		}
		if len(elems) == 1 {
			return elems[0]
		}
		return ast.TupleType{Loc: ast.Loc{At: pos}, Elements: elems}
	}

	name := p.expect(token.IDENT, "type name").Text
	nt := ast.NamedType{Loc: ast.Loc{At: pos}, Name: name}
	if p.check(token.LT) {
		p.advance()
		for !p.check(token.GT) && !p.check(token.EOF) {
			nt.Args = append(nt.Args, p.parseTypeExpr())
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.GT, "to close type argument list")
	}
	return nt
}
