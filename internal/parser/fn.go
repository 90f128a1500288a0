package parser

import (
	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/token"
)

// fnOccurrence is one `fn name(...)` header+body as written in the source,
// before the contiguity rule decides whether it stands alone (ast.Fn.Params)
// or joins sibling occurrences as a clause (ast.Fn.Clauses).
type fnOccurrence struct {
	loc        ast.Loc
	name       string
	params     []ast.Pattern  // always populated (typed params degrade to PatIdent)
	paramTypes []ast.TypeExpr // parallel to params; nil entries where untyped
	returnType ast.TypeExpr
	body       ast.Expr
}

// parseFnGroup parses one `fn name(...)` and, if immediately followed
// (modulo blank lines) by further `fn name(...)` with the identical name,
// coalesces them into a single ast.Fn with Clauses set (§4.3 "Function
// clauses").
func (p *Parser) parseFnGroup(pub bool) ast.Stmt {
	first := p.parseFnOccurrence(pub)
	occurrences := []fnOccurrence{first}
	for {
		save := p.pos
		p.skipNewlines()
		if p.check(token.FN) && p.peekAt(1).Text == first.name && p.peekAt(1).Kind == token.IDENT {
			occurrences = append(occurrences, p.parseFnOccurrence(pub))
			continue
		}
		p.pos = save
		break
	}

	if len(occurrences) == 1 && allUntypedOrTypedIdent(first.params) {
		return ast.Fn{
			Loc:        first.loc,
			Name:       first.name,
			Pub:        pub,
			Params:     toParams(first.params, first.paramTypes),
			ReturnType: first.returnType,
			Body:       first.body,
		}
	}

	fn := ast.Fn{Loc: first.loc, Name: first.name, Pub: pub, ReturnType: first.returnType}
	for _, occ := range occurrences {
		fn.Clauses = append(fn.Clauses, ast.FnClause{Params: occ.params, Body: occ.body})
	}
	return fn
}

func allUntypedOrTypedIdent(pats []ast.Pattern) bool {
	for _, p := range pats {
		if _, ok := p.(ast.PatIdent); !ok {
			return false
		}
	}
	return true
}

func toParams(pats []ast.Pattern, types []ast.TypeExpr) []ast.Param {
	out := make([]ast.Param, len(pats))
	for i, p := range pats {
		out[i] = ast.Param{Name: p.(ast.PatIdent).Name, Type: types[i]}
	}
	return out
}

func (p *Parser) parseFnOccurrence(pub bool) fnOccurrence {
	pos := p.advance().Pos // `fn`
	name := p.expect(token.IDENT, "function name").Text
	p.expect(token.LPAREN, "in function parameter list")

	var params []ast.Pattern
	var types []ast.TypeExpr
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		pat := p.parsePattern()
		var typ ast.TypeExpr
		if ident, ok := pat.(ast.PatIdent); ok && p.match(token.COLON) {
			typ = p.parseTypeExpr()
			pat = ident
		}
		params = append(params, pat)
		types = append(types, typ)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN, "to close parameter list")

	var ret ast.TypeExpr
	if p.match(token.ARROW) {
		if !p.check(token.COLON) {
			ret = p.parseTypeExpr()
		}
	}
	p.expect(token.COLON, "to open function body")
	body := p.parseBody()

	return fnOccurrence{loc: ast.Loc{At: pos}, name: name, params: params, paramTypes: types, returnType: ret, body: body}
}

func (p *Parser) parseTypeDef(pub bool) ast.Stmt {
	pos := p.advance().Pos
	name := p.expect(token.IDENT, "type name").Text
	td := ast.TypeDef{Loc: ast.Loc{At: pos}, Name: name, Pub: pub}
	td.TypeParams = p.tryParseTypeParams()

	if p.match(token.DERIVE) {
		p.expect(token.LPAREN, "after derive")
		for !p.check(token.RPAREN) && !p.check(token.EOF) {
			td.Derives = append(td.Derives, p.expect(token.IDENT, "derive trait").Text)
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN, "to close derive list")
	}

	p.expect(token.EQUALS, "in type definition")
	p.skipNewlines()

	if p.check(token.LBRACE) {
		p.advance()
		p.skipNewlines()
		for !p.check(token.RBRACE) && !p.check(token.EOF) {
			fname := p.expect(token.IDENT, "record field name").Text
			p.expect(token.COLON, "after record field name")
			ftype := p.parseTypeExpr()
			td.RecordFields = append(td.RecordFields, ast.RecordField{Name: fname, Type: ftype})
			p.skipNewlines()
			if !p.match(token.COMMA) {
				p.skipNewlines()
			}
			p.skipNewlines()
		}
		p.expect(token.RBRACE, "to close record type")
		return td
	}

	for {
		p.match(token.BAR)
		vname := p.expect(token.IDENT, "variant name").Text
		v := ast.Variant{Name: vname}
		if p.match(token.LPAREN) {
			for !p.check(token.RPAREN) && !p.check(token.EOF) {
				v.Fields = append(v.Fields, p.parseTypeExpr())
				if !p.match(token.COMMA) {
					break
				}
			}
			p.expect(token.RPAREN, "to close variant fields")
		}
		td.Variants = append(td.Variants, v)
		if !p.check(token.BAR) {
			break
		}
	}
	return td
}

func (p *Parser) tryParseTypeParams() []string {
	if !p.check(token.LT) {
		return nil
	}
	p.advance()
	var out []string
	for !p.check(token.GT) && !p.check(token.EOF) {
		out = append(out, p.expect(token.IDENT, "type parameter").Text)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.GT, "to close type parameter list")
	return out
}

func (p *Parser) parseTrait() ast.Stmt {
	pos := p.advance().Pos
	name := p.expect(token.IDENT, "trait name").Text
	t := ast.Trait{Loc: ast.Loc{At: pos}, Name: name}
	t.TypeParams = p.tryParseTypeParams()
	if p.match(token.WHERE) {
		for {
			t.Constraints = append(t.Constraints, p.expect(token.IDENT, "trait constraint").Text)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.COLON, "to open trait body")
	p.skipNewlines()
	p.expect(token.INDENT, "trait method block")
	for !p.check(token.DEDENT) && !p.check(token.EOF) {
		p.skipNewlines()
		if p.check(token.DEDENT) {
			break
		}
		p.expect(token.FN, "trait method")
		mname := p.expect(token.IDENT, "method name").Text
		p.expect(token.LPAREN, "method parameter list")
		var params []ast.TypeExpr
		for !p.check(token.RPAREN) && !p.check(token.EOF) {
			params = append(params, p.parseTypeExpr())
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.RPAREN, "to close method parameter list")
		var ret ast.TypeExpr
		if p.match(token.ARROW) {
			ret = p.parseTypeExpr()
		}
		t.Methods = append(t.Methods, ast.TraitMethod{Name: mname, Params: params, ReturnType: ret})
		p.skipNewlines()
	}
	p.expect(token.DEDENT, "to close trait body")
	return t
}

func (p *Parser) parseImpl() ast.Stmt {
	pos := p.advance().Pos
	traitName := p.expect(token.IDENT, "trait name").Text
	im := ast.Impl{Loc: ast.Loc{At: pos}, TraitName: traitName}
	if p.match(token.LT) {
		for !p.check(token.GT) && !p.check(token.EOF) {
			im.TypeArgs = append(im.TypeArgs, p.parseTypeExpr())
			if !p.match(token.COMMA) {
				break
			}
		}
		p.expect(token.GT, "to close type argument list")
	}
	p.expect(token.COLON, "to open impl body")
	p.skipNewlines()
	p.expect(token.INDENT, "impl method block")
	for !p.check(token.DEDENT) && !p.check(token.EOF) {
		p.skipNewlines()
		if p.check(token.DEDENT) {
			break
		}
		if fn, ok := p.parseFnGroup(false).(ast.Fn); ok {
			im.Methods = append(im.Methods, fn)
		}
		p.skipNewlines()
	}
	p.expect(token.DEDENT, "to close impl body")
	return im
}

func (p *Parser) parseNewtype(pub bool) ast.Stmt {
	pos := p.advance().Pos
	name := p.expect(token.IDENT, "newtype name").Text
	p.expect(token.EQUALS, "in newtype definition")
	ctor := p.expect(token.IDENT, "newtype constructor").Text
	p.expect(token.LPAREN, "after newtype constructor")
	inner := p.parseTypeExpr()
	p.expect(token.RPAREN, "to close newtype constructor")
	return ast.Newtype{Loc: ast.Loc{At: pos}, Name: name, Pub: pub, Ctor: ctor, Inner: inner}
}
