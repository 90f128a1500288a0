// Package parser implements Fern's indentation-driven, Pratt-style
// expression parser (spec.md §4.3), building the ast package's tagged-union
// tree. Single-threaded, one token of lookahead, panic-mode error recovery.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/lexer"
	"github.com/fern-lang/fern/internal/token"
	"golang.org/x/mod/module"
)

// Parser walks a pre-lexed token slice and produces an *ast.File. It peeks
// at most one token past the current one (peekAt(1)); the only rewinds
// (parseIf, parseWith, parseFnGroup) step back over skipped NEWLINE tokens.
type Parser struct {
	filename string
	toks     []token.Token
	pos      int
	errors   []*Error
	hadError bool
	logger   *slog.Logger
}

// Parse lexes and parses src, returning the resulting file and the lex and
// parse diagnostics; HadError reports whether that list is non-empty.
func Parse(filename, src string, logger *slog.Logger) (*ast.File, []*Error) {
	if logger == nil {
		logger = slog.Default()
	}
	lx := lexer.New(filename, src, logger)
	toks := lx.Tokenize()

	p := &Parser{filename: filename, toks: toks, logger: logger}
	for _, le := range lx.Errors() {
		p.errors = append(p.errors, &Error{Message: le.Message, Token: token.Token{Pos: le.Pos}})
		p.hadError = true
	}

	stmts := p.parseStatements(func(k token.Kind) bool { return k == token.EOF })
	return &ast.File{Filename: filename, Stmts: stmts}, p.errors
}

// HadError mirrors the teacher's tree.HadError flag: true once any lex or
// parse error has been recorded.
func HadError(errs []*Error) bool { return len(errs) > 0 }

// ---- token helpers -----------------------------------------------------

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF sentinel
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	e := &Error{Message: fmt.Sprintf(format, args...), Token: tok}
	p.errors = append(p.errors, e)
	p.hadError = true
	p.logger.Debug("parse error", "pos", tok.Pos.String(), "message", e.Message)
}

// expect consumes a token of kind k or records a synchronizing error.
func (p *Parser) expect(k token.Kind, context string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	p.errorf(p.cur(), "expected %s %s, found %s", k, context, p.cur().Kind)
	p.synchronize()
	return token.Token{Kind: k}
}

// synchronize implements panic-mode recovery (§4.3, §7): skip tokens until
// a synchronizing point — a statement-start keyword, a closing delimiter,
// DEDENT, or EOF.
func (p *Parser) synchronize() {
	for {
		switch p.cur().Kind {
		case token.EOF, token.DEDENT, token.RPAREN, token.RBRACKET, token.RBRACE,
			token.LET, token.FN, token.RETURN, token.IMPORT, token.DEFER, token.TYPE,
			token.TRAIT, token.IMPL, token.NEWTYPE, token.MODULE, token.PUB,
			token.BREAK, token.CONTINUE, token.NEWLINE:
			return
		default:
			p.advance()
		}
	}
}

func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

// ---- statement sequences -------------------------------------------------

// parseStatements parses statements until stop(current kind) is true,
// coalescing adjacent same-name `fn` clauses and erroring when clauses are
// separated by an intervening statement (§4.3).
func (p *Parser) parseStatements(stop func(token.Kind) bool) []ast.Stmt {
	var out []ast.Stmt
	seenFn := map[string]bool{}
	for {
		p.skipNewlines()
		if stop(p.cur().Kind) || p.check(token.EOF) {
			return out
		}
		s := p.parseStatement()
		if s == nil {
			continue
		}
		if fn, ok := s.(ast.Fn); ok {
			if seenFn[fn.Name] {
				p.errorf(token.Token{Pos: fn.Position()}, "clauses of fn %s must be contiguous", fn.Name)
			}
			seenFn[fn.Name] = true
		}
		out = append(out, s)
	}
}

func (p *Parser) parseStatement() ast.Stmt {
	pub := false
	if p.check(token.PUB) {
		pub = true
		p.advance()
	}
	switch p.cur().Kind {
	case token.LET:
		return p.parseLet()
	case token.FN:
		return p.parseFnGroup(pub)
	case token.RETURN:
		return p.parseReturn()
	case token.IMPORT:
		return p.parseImport()
	case token.DEFER:
		return p.parseDefer()
	case token.TYPE:
		return p.parseTypeDef(pub)
	case token.TRAIT:
		return p.parseTrait()
	case token.IMPL:
		return p.parseImpl()
	case token.NEWTYPE:
		return p.parseNewtype(pub)
	case token.MODULE:
		return p.parseModule()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		pos := p.advance().Pos
		return ast.Continue{Loc: ast.Loc{At: pos}}
	default:
		pos := p.cur().Pos
		e := p.parseExpr(0)
		return ast.ExprStmt{Loc: ast.Loc{At: pos}, X: e}
	}
}

func (p *Parser) parseLet() ast.Stmt {
	pos := p.advance().Pos // `let`
	pat := p.parsePattern()
	var typ ast.TypeExpr
	if p.match(token.COLON) {
		typ = p.parseTypeExpr()
	}
	p.expect(token.EQUALS, "in let binding")
	val := p.parseExpr(0)
	var elseExpr ast.Expr
	if p.check(token.ELSE) {
		p.advance()
		p.expect(token.COLON, "after else")
		elseExpr = p.parseBody()
	}
	return ast.Let{Loc: ast.Loc{At: pos}, Pattern: pat, Type: typ, Value: val, Else: elseExpr}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.advance().Pos
	var value, cond ast.Expr
	if !p.check(token.NEWLINE) && !p.check(token.EOF) && !p.check(token.DEDENT) && !p.check(token.IF) {
		value = p.parseExpr(0)
	}
	if p.check(token.IF) {
		p.advance()
		cond = p.parseExpr(0)
	}
	return ast.Return{Loc: ast.Loc{At: pos}, Value: value, Cond: cond}
}

func (p *Parser) parseImport() ast.Stmt {
	pos := p.advance().Pos
	pathTok := p.expect(token.STRING, "import path")
	if err := module.CheckImportPath(pathTok.Text); err != nil && pathTok.Text != "" {
		p.logger.Debug("import path does not look like a module path", "path", pathTok.Text, "reason", err)
	}
	stmt := ast.Import{Loc: ast.Loc{At: pos}, Path: pathTok.Text}
	if p.match(token.AS) {
		alias := p.expect(token.IDENT, "import alias")
		stmt.Alias = alias.Text
	}
	return stmt
}

func (p *Parser) parseDefer() ast.Stmt {
	pos := p.advance().Pos
	e := p.parseExpr(0)
	return ast.Defer{Loc: ast.Loc{At: pos}, X: e}
}

func (p *Parser) parseBreak() ast.Stmt {
	pos := p.advance().Pos
	var val ast.Expr
	if !p.check(token.NEWLINE) && !p.check(token.EOF) && !p.check(token.DEDENT) {
		val = p.parseExpr(0)
	}
	return ast.Break{Loc: ast.Loc{At: pos}, Value: val}
}

func (p *Parser) parseModule() ast.Stmt {
	pos := p.advance().Pos
	path := p.expect(token.IDENT, "module path")
	sb := path.Text
	for p.check(token.DOT) {
		p.advance()
		sb += "." + p.expect(token.IDENT, "module path segment").Text
	}
	return ast.Module{Loc: ast.Loc{At: pos}, Path: sb}
}
