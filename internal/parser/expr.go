package parser

import (
	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/token"
)

// binaryPrec gives each left-associative binary operator its left binding
// power; parseExpr climbs it directly rather than building a table of
// parselets, following the teacher's preference for a single dispatch loop
// over a Pratt table of closures. `|>` is loosest and `**` is tightest
// among the binary operators per spec.md §4.3's own precedence hint; `?`
// (Try) and call/index/dot bind tighter still and live in parsePostfix.
var binaryPrec = map[token.Kind]int{
	token.PIPE:    1,
	token.OR:      2,
	token.AND:     3,
	token.EQ_EQ:   4,
	token.NOT_EQ:  4,
	token.LT:      5,
	token.LT_EQ:   5,
	token.GT:      5,
	token.GT_EQ:   5,
	token.PLUS:    7,
	token.MINUS:   7,
	token.STAR:    8,
	token.SLASH:   8,
	token.PERCENT: 8,
	token.STARSTAR: 9,
}

var rightAssoc = map[token.Kind]bool{
	token.STARSTAR: true,
}

const rangePrec = 6

func canStartExpr(k token.Kind) bool {
	switch k {
	case token.RPAREN, token.RBRACKET, token.RBRACE, token.COMMA, token.NEWLINE,
		token.DEDENT, token.EOF, token.COLON:
		return false
	default:
		return true
	}
}

// parseExpr implements precedence climbing over binaryPrec, with `..`/`..=`
// spliced in at rangePrec and `<-` handled as a low-precedence, right side
// only, identifier-binding operator (§3 ast.Bind).
func (p *Parser) parseExpr(minBP int) ast.Expr {
	left := p.parseUnary()

	for {
		k := p.cur().Kind

		if k == token.BIND {
			if minBP > 0 {
				break
			}
			ident, ok := left.(ast.Ident)
			if !ok {
				break
			}
			pos := p.advance().Pos
			val := p.parseExpr(0)
			left = ast.Bind{Loc: ast.Loc{At: pos}, Name: ident.Name, Value: val}
			continue
		}

		if k == token.RANGE_EXCL || k == token.RANGE_INCL {
			if rangePrec < minBP {
				break
			}
			pos := p.cur().Pos
			inclusive := k == token.RANGE_INCL
			p.advance()
			var end ast.Expr
			if canStartExpr(p.cur().Kind) {
				end = p.parseExpr(rangePrec + 1)
			}
			left = ast.Range{Loc: ast.Loc{At: pos}, Start: left, End: end, Inclusive: inclusive}
			continue
		}

		bp, ok := binaryPrec[k]
		if !ok || bp < minBP {
			break
		}
		opTok := p.advance()
		nextMin := bp + 1
		if rightAssoc[k] {
			nextMin = bp
		}
		right := p.parseExpr(nextMin)
		left = ast.Binary{Loc: ast.Loc{At: opTok.Pos}, Op: opTok.Text, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.MINUS, token.NOT:
		op := p.advance()
		operand := p.parseUnary()
		return p.parsePostfix(ast.Unary{Loc: ast.Loc{At: op.Pos}, Op: op.Text, Operand: operand})
	default:
		return p.parsePostfix(p.parsePrimary())
	}
}

// parsePostfix handles the tightest-binding forms: call, index, field
// access, and the `?` try-operator, left to right.
func (p *Parser) parsePostfix(e ast.Expr) ast.Expr {
	for {
		switch p.cur().Kind {
		case token.LPAREN:
			e = p.parseCall(e)
		case token.DOT:
			pos := p.advance().Pos
			name := p.expect(token.IDENT, "field name").Text
			e = ast.Dot{Loc: ast.Loc{At: pos}, Object: e, Field: name}
		case token.LBRACKET:
			pos := p.advance().Pos
			idx := p.parseExpr(0)
			p.expect(token.RBRACKET, "to close index expression")
			e = ast.Index{Loc: ast.Loc{At: pos}, Object: e, Idx: idx}
		case token.QUESTION:
			pos := p.advance().Pos
			e = ast.Try{Loc: ast.Loc{At: pos}, Operand: e}
		default:
			return e
		}
	}
}

func (p *Parser) parseCall(fn ast.Expr) ast.Expr {
	pos := p.advance().Pos // (
	var args []ast.CallArg
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		var label *string
		if p.check(token.IDENT) && p.peekAt(1).Kind == token.COLON {
			l := p.cur().Text
			label = &l
			p.advance()
			p.advance()
		}
		val := p.parseExpr(0)
		args = append(args, ast.CallArg{Label: label, Value: val})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN, "to close call arguments")
	return ast.Call{Loc: ast.Loc{At: pos}, Fn: fn, Args: args}
}

// parsePrimary dispatches every expression-leading token to its surface
// form (§3, §8). Parenthesized groups are parsed as a generic comma list
// first and only reinterpreted as a Lambda if a single ARROW follows the
// closing paren — a one-token lookahead, never unbounded backtracking.
func (p *Parser) parsePrimary() ast.Expr {
	pos := p.cur().Pos
	switch p.cur().Kind {
	case token.INT:
		t := p.advance()
		return ast.IntLit{Loc: ast.Loc{At: pos}, Value: t.Text}
	case token.FLOAT:
		t := p.advance()
		return ast.FloatLit{Loc: ast.Loc{At: pos}, Value: t.Text}
	case token.STRING:
		t := p.advance()
		return ast.StringLit{Loc: ast.Loc{At: pos}, Value: t.Text}
	case token.STRING_BEGIN:
		return p.parseInterpString()
	case token.TRUE:
		p.advance()
		return ast.BoolLit{Loc: ast.Loc{At: pos}, Value: true}
	case token.FALSE:
		p.advance()
		return ast.BoolLit{Loc: ast.Loc{At: pos}, Value: false}
	case token.IDENT:
		t := p.advance()
		return ast.Ident{Loc: ast.Loc{At: pos}, Name: t.Text}
	case token.LPAREN:
		return p.parseParenOrLambda()
	case token.LBRACKET:
		return p.parseListOrComp()
	case token.PERCENT_BRACE:
		return p.parseMapLit()
	case token.LBRACE:
		return p.parseRecordUpdate()
	case token.DO:
		p.advance()
		p.expect(token.COLON, "to open do block")
		return p.parseIndentedBlock(pos)
	case token.IF:
		return p.parseIf()
	case token.MATCH:
		return p.parseMatch()
	case token.WITH:
		return p.parseWith()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.LOOP:
		return p.parseLoop()
	case token.SPAWN:
		p.advance()
		fn := p.parseExpr(8)
		return ast.Spawn{Loc: ast.Loc{At: pos}, Fn: fn}
	case token.SEND:
		return p.parseSend()
	case token.RECEIVE:
		return p.parseReceive()
	default:
		p.errorf(p.cur(), "expected expression, found %s", p.cur().Kind)
		p.synchronize()
		return ast.Ident{Loc: ast.Loc{At: pos}, Name: "_"}
	}
}

func (p *Parser) parseParenOrLambda() ast.Expr {
	pos := p.advance().Pos // (
	if p.check(token.RPAREN) {
		p.advance()
		if p.check(token.ARROW) {
			return p.finishLambda(pos, nil)
		}
		return ast.Tuple{Loc: ast.Loc{At: pos}}
	}

	var elems []ast.Expr
	for {
		elems = append(elems, p.parseExpr(0))
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN, "to close parenthesized expression")

	if p.check(token.ARROW) {
		params := make([]string, len(elems))
		for i, e := range elems {
			id, ok := e.(ast.Ident)
			if !ok {
				p.errorf(token.Token{Pos: pos}, "lambda parameters must be identifiers")
				continue
			}
			params[i] = id.Name
		}
		return p.finishLambda(pos, params)
	}

	if len(elems) == 1 {
		return elems[0]
	}
	return ast.Tuple{Loc: ast.Loc{At: pos}, Elements: elems}
}

func (p *Parser) finishLambda(pos token.Position, params []string) ast.Expr {
	p.expect(token.ARROW, "in lambda")
	p.expect(token.COLON, "to open lambda body")
	body := p.parseBody()
	return ast.Lambda{Loc: ast.Loc{At: pos}, Params: params, Body: body}
}

func (p *Parser) parseListOrComp() ast.Expr {
	pos := p.advance().Pos // [
	if p.check(token.RBRACKET) {
		p.advance()
		return ast.List{Loc: ast.Loc{At: pos}}
	}
	first := p.parseExpr(0)
	if p.check(token.FOR) {
		p.advance()
		v := p.expect(token.IDENT, "comprehension variable").Text
		p.expect(token.IN, "in list comprehension")
		iter := p.parseExpr(0)
		var cond ast.Expr
		if p.match(token.IF) {
			cond = p.parseExpr(0)
		}
		p.expect(token.RBRACKET, "to close list comprehension")
		return ast.ListComp{Loc: ast.Loc{At: pos}, Body: first, Var: v, Iter: iter, Cond: cond}
	}
	elems := []ast.Expr{first}
	for p.match(token.COMMA) {
		if p.check(token.RBRACKET) {
			break
		}
		elems = append(elems, p.parseExpr(0))
	}
	p.expect(token.RBRACKET, "to close list literal")
	return ast.List{Loc: ast.Loc{At: pos}, Elements: elems}
}

func (p *Parser) parseMapLit() ast.Expr {
	pos := p.advance().Pos // %{
	var entries []ast.MapEntry
	p.skipNewlines()
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		key := p.parseExpr(0)
		p.expect(token.COLON, "between map key and value")
		val := p.parseExpr(0)
		entries = append(entries, ast.MapEntry{Key: key, Value: val})
		p.skipNewlines()
		if !p.match(token.COMMA) {
			break
		}
		p.skipNewlines()
	}
	p.skipNewlines()
	p.expect(token.RBRACE, "to close map literal")
	return ast.Map{Loc: ast.Loc{At: pos}, Entries: entries}
}

// parseRecordUpdate parses `{ ...base, field: value, ... }`. The leading
// `...` spread is mandatory: a plain `{` at expression-start never means an
// empty record in Fern, only an update of an existing value.
func (p *Parser) parseRecordUpdate() ast.Expr {
	pos := p.advance().Pos // {
	p.skipNewlines()
	p.expect(token.RANGE_FULL, "spread base (...expr) to open a record update")
	base := p.parseExpr(0)
	var fields []ast.FieldUpdate
	for p.match(token.COMMA) {
		p.skipNewlines()
		if p.check(token.RBRACE) {
			break
		}
		name := p.expect(token.IDENT, "record field name").Text
		p.expect(token.COLON, "after record field name")
		val := p.parseExpr(0)
		fields = append(fields, ast.FieldUpdate{Name: name, Value: val})
		p.skipNewlines()
	}
	p.skipNewlines()
	p.expect(token.RBRACE, "to close record update")
	return ast.RecordUpdate{Loc: ast.Loc{At: pos}, Base: base, Fields: fields}
}

func (p *Parser) parseInterpString() ast.Expr {
	tok := p.advance() // STRING_BEGIN
	parts := []string{tok.Text}
	var exprs []ast.Expr
	for {
		exprs = append(exprs, p.parseExpr(0))
		switch p.cur().Kind {
		case token.STRING_MID:
			t := p.advance()
			parts = append(parts, t.Text)
		case token.STRING_END:
			t := p.advance()
			parts = append(parts, t.Text)
			return ast.InterpString{Loc: ast.Loc{At: tok.Pos}, Parts: parts, Exprs: exprs}
		default:
			p.errorf(p.cur(), "unterminated string interpolation")
			return ast.InterpString{Loc: ast.Loc{At: tok.Pos}, Parts: parts, Exprs: exprs}
		}
	}
}

func (p *Parser) parseIf() ast.Expr {
	pos := p.advance().Pos
	cond := p.parseExpr(0)
	p.expect(token.COLON, "to open if body")
	then := p.parseBody()

	var els ast.Expr
	save := p.pos
	p.skipNewlines()
	if p.check(token.ELSE) {
		p.advance()
		if p.check(token.IF) {
			els = p.parseIf()
		} else {
			p.expect(token.COLON, "to open else body")
			els = p.parseBody()
		}
	} else {
		p.pos = save
	}
	return ast.If{Loc: ast.Loc{At: pos}, Cond: cond, Then: then, Else: els}
}

func (p *Parser) parseMatch() ast.Expr {
	pos := p.advance().Pos
	scrutinee := p.parseExpr(0)
	p.expect(token.COLON, "to open match body")
	p.skipNewlines()
	p.expect(token.INDENT, "match arms")

	var arms []ast.MatchArm
	for !p.check(token.DEDENT) && !p.check(token.EOF) {
		p.skipNewlines()
		if p.check(token.DEDENT) {
			break
		}
		pat := p.parsePattern()
		var guard ast.Expr
		if p.match(token.IF) {
			guard = p.parseExpr(0)
		}
		p.expect(token.FAT_ARROW, "in match arm")
		body := p.parseBody()
		arms = append(arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body})
		p.skipNewlines()
	}
	p.expect(token.DEDENT, "to close match body")
	return ast.Match{Loc: ast.Loc{At: pos}, Scrutinee: scrutinee, Arms: arms}
}

// parseWith parses `with name <- expr, ...: body` with an optional `else:`
// block of pattern arms for unwrapping Result/Option-like bindings (§3
// ast.With, ast.WithBinding, ast.WithElseArm).
func (p *Parser) parseWith() ast.Expr {
	pos := p.advance().Pos
	var bindings []ast.WithBinding
	for {
		name := p.expect(token.IDENT, "with binding name").Text
		p.expect(token.BIND, "in with binding (expected <-)")
		val := p.parseExpr(0)
		bindings = append(bindings, ast.WithBinding{Name: name, Value: val})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.COLON, "to open with body")
	body := p.parseBody()

	var elseArms []ast.WithElseArm
	save := p.pos
	p.skipNewlines()
	if p.check(token.ELSE) {
		p.advance()
		p.expect(token.COLON, "to open with else body")
		p.skipNewlines()
		p.expect(token.INDENT, "with else arms")
		for !p.check(token.DEDENT) && !p.check(token.EOF) {
			p.skipNewlines()
			if p.check(token.DEDENT) {
				break
			}
			pat := p.parsePattern()
			p.expect(token.FAT_ARROW, "in with else arm")
			armBody := p.parseBody()
			elseArms = append(elseArms, ast.WithElseArm{Pattern: pat, Body: armBody})
			p.skipNewlines()
		}
		p.expect(token.DEDENT, "to close with else body")
	} else {
		p.pos = save
	}
	return ast.With{Loc: ast.Loc{At: pos}, Bindings: bindings, Body: body, ElseArms: elseArms}
}

func (p *Parser) parseFor() ast.Expr {
	pos := p.advance().Pos
	v := p.expect(token.IDENT, "for-loop variable").Text
	p.expect(token.IN, "in for loop")
	iter := p.parseExpr(0)
	p.expect(token.COLON, "to open for body")
	body := p.parseBody()
	return ast.For{Loc: ast.Loc{At: pos}, Var: v, Iter: iter, Body: body}
}

func (p *Parser) parseWhile() ast.Expr {
	pos := p.advance().Pos
	cond := p.parseExpr(0)
	p.expect(token.COLON, "to open while body")
	body := p.parseBody()
	return ast.While{Loc: ast.Loc{At: pos}, Cond: cond, Body: body}
}

func (p *Parser) parseLoop() ast.Expr {
	pos := p.advance().Pos
	p.expect(token.COLON, "to open loop body")
	body := p.parseBody()
	return ast.Loop{Loc: ast.Loc{At: pos}, Body: body}
}

// parseSend parses `send(pid, msg)`; actor message passing is call-shaped
// rather than the `<-` operator, which ast.Bind already owns.
func (p *Parser) parseSend() ast.Expr {
	pos := p.advance().Pos
	p.expect(token.LPAREN, "after send")
	pid := p.parseExpr(0)
	p.expect(token.COMMA, "between send arguments")
	msg := p.parseExpr(0)
	p.expect(token.RPAREN, "to close send")
	return ast.Send{Loc: ast.Loc{At: pos}, Pid: pid, Msg: msg}
}

func (p *Parser) parseReceive() ast.Expr {
	pos := p.advance().Pos
	p.expect(token.COLON, "to open receive body")
	p.skipNewlines()
	p.expect(token.INDENT, "receive arms")

	var arms []ast.ReceiveArm
	var after, afterBody ast.Expr
	for !p.check(token.DEDENT) && !p.check(token.EOF) {
		p.skipNewlines()
		if p.check(token.DEDENT) {
			break
		}
		if p.check(token.AFTER) {
			p.advance()
			after = p.parseExpr(0)
			p.expect(token.FAT_ARROW, "in receive after-clause")
			afterBody = p.parseBody()
			p.skipNewlines()
			continue
		}
		pat := p.parsePattern()
		p.expect(token.FAT_ARROW, "in receive arm")
		body := p.parseBody()
		arms = append(arms, ast.ReceiveArm{Pattern: pat, Body: body})
		p.skipNewlines()
	}
	p.expect(token.DEDENT, "to close receive body")
	return ast.Receive{Loc: ast.Loc{At: pos}, Arms: arms, After: after, AfterBody: afterBody}
}

// parseBody parses what follows a `:` — either a same-line expression or an
// indented block, never both (§4.3's layout-driven bodies).
func (p *Parser) parseBody() ast.Expr {
	if p.check(token.NEWLINE) {
		pos := p.cur().Pos
		return p.parseIndentedBlock(pos)
	}
	return p.parseExpr(0)
}

// parseIndentedBlock consumes NEWLINE INDENT stmt* DEDENT, promoting a
// trailing bare expression statement to Block.Final the way the teacher's
// runtime/parser block reader promotes a final return value.
func (p *Parser) parseIndentedBlock(pos token.Position) ast.Block {
	p.skipNewlines()
	p.expect(token.INDENT, "indented block")
	var stmts []ast.Stmt
	for !p.check(token.DEDENT) && !p.check(token.EOF) {
		p.skipNewlines()
		if p.check(token.DEDENT) {
			break
		}
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.DEDENT, "to close block")

	var final ast.Expr
	if n := len(stmts); n > 0 {
		if es, ok := stmts[n-1].(ast.ExprStmt); ok {
			final = es.X
			stmts = stmts[:n-1]
		}
	}
	return ast.Block{Loc: ast.Loc{At: pos}, Stmts: stmts, Final: final}
}
