package lexer

import (
	"testing"

	"github.com/fern-lang/fern/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestSimpleLet(t *testing.T) {
	l := New("t.fn", "let x = 1\n", nil)
	toks := l.Tokenize()
	require.Empty(t, l.Errors())
	assert.Equal(t, []token.Kind{
		token.LET, token.IDENT, token.EQUALS, token.INT, token.NEWLINE, token.EOF,
	}, kinds(toks))
}

func TestIndentation(t *testing.T) {
	src := "fn f() ->:\n  1\n  2\nfn g() ->:\n  3\n"
	l := New("t.fn", src, nil)
	toks := l.Tokenize()
	require.Empty(t, l.Errors())
	k := kinds(toks)
	assert.Contains(t, k, token.INDENT)
	assert.Contains(t, k, token.DEDENT)
}

func TestMaximalMunch(t *testing.T) {
	cases := map[string]token.Kind{
		"<-":  token.BIND,
		"<=":  token.LT_EQ,
		"..=": token.RANGE_INCL,
		"...": token.RANGE_FULL,
		"**":  token.STARSTAR,
		"=>":  token.FAT_ARROW,
		"->":  token.ARROW,
		"|>":  token.PIPE,
	}
	for text, want := range cases {
		l := New("t.fn", text, nil)
		toks := l.Tokenize()
		require.NotEmpty(t, toks)
		assert.Equalf(t, want, toks[0].Kind, "lexing %q", text)
		assert.Equal(t, text, toks[0].Text)
	}
}

func TestMixedTabSpaceIsError(t *testing.T) {
	l := New("t.fn", "fn f() ->:\n \t1\n", nil)
	l.Tokenize()
	require.NotEmpty(t, l.Errors())
}

func TestNumberForms(t *testing.T) {
	cases := map[string]token.Kind{
		"123":     token.INT,
		"0x1F":    token.INT,
		"0b101":   token.INT,
		"0o17":    token.INT,
		"1.5":     token.FLOAT,
		"1e6":     token.FLOAT,
		"2.5e-3":  token.FLOAT,
		"1.23e+4": token.FLOAT,
	}
	for text, want := range cases {
		l := New("t.fn", text, nil)
		toks := l.Tokenize()
		require.NotEmpty(t, toks)
		assert.Equalf(t, want, toks[0].Kind, "lexing %q", text)
		assert.Equal(t, text, toks[0].Text)
	}
}

func TestSimpleString(t *testing.T) {
	l := New("t.fn", `"hello"`, nil)
	toks := l.Tokenize()
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "hello", toks[0].Text)
}

func TestInterpolatedString(t *testing.T) {
	l := New("t.fn", `"Hello, {name}!"`, nil)
	toks := l.Tokenize()
	require.Empty(t, l.Errors())
	var ks []token.Kind
	for _, tok := range toks {
		ks = append(ks, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.STRING_BEGIN, token.IDENT, token.STRING_END, token.EOF,
	}, ks)
	assert.Equal(t, "Hello, ", toks[0].Text)
	assert.Equal(t, "name", toks[1].Text)
	assert.Equal(t, "!", toks[2].Text)
}

func TestTripleQuotedString(t *testing.T) {
	l := New("t.fn", "\"\"\"line1\nline2\"\"\"", nil)
	toks := l.Tokenize()
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "line1\nline2", toks[0].Text)
}

func TestLineAndBlockComments(t *testing.T) {
	l := New("t.fn", "1 # comment\n/* block */2\n", nil)
	toks := l.Tokenize()
	require.Empty(t, l.Errors())
	k := kinds(toks)
	assert.Equal(t, []token.Kind{token.INT, token.NEWLINE, token.INT, token.NEWLINE, token.EOF}, k)
}

// TestLexerRoundTrip is the §8 property: concatenating non-layout token
// text reproduces a string that relexes to the same token kinds.
func TestLexerRoundTrip(t *testing.T) {
	src := "let x = 1 + 2 * foo(3, bar)\n"
	l := New("t.fn", src, nil)
	toks := l.Tokenize()

	var sb []byte
	for _, tok := range toks {
		if tok.IsLayout() || tok.Kind == token.EOF {
			continue
		}
		sb = append(sb, []byte(tok.Text)...)
		sb = append(sb, ' ')
	}

	l2 := New("t.fn", string(sb), nil)
	toks2 := l2.Tokenize()

	var k1, k2 []token.Kind
	for _, tok := range toks {
		if !tok.IsLayout() {
			k1 = append(k1, tok.Kind)
		}
	}
	for _, tok := range toks2 {
		if !tok.IsLayout() {
			k2 = append(k2, tok.Kind)
		}
	}
	assert.Equal(t, k1, k2)
}

func TestUnexpectedCharacterEmitsError(t *testing.T) {
	l := New("t.fn", "let x = 1 $ 2\n", nil)
	toks := l.Tokenize()
	require.NotEmpty(t, l.Errors())
	var sawError bool
	for _, tok := range toks {
		if tok.Kind == token.ERROR {
			sawError = true
		}
	}
	assert.True(t, sawError)
}
