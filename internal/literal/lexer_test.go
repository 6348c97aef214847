package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	l := NewLexer(input)
	var toks []Token
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks
		}
	}
}

func TestLexerPunctuationAndNumbers(t *testing.T) {
	toks := lexAll(t, "[[1, -2.5], (0x1F,)]")

	types := make([]TokenType, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	assert.Equal(t, []TokenType{
		TokenLBracket, TokenLBracket, TokenInt, TokenComma, TokenMinus, TokenFloat, TokenRBracket,
		TokenComma, TokenLParen, TokenInt, TokenComma, TokenRParen, TokenRBracket, TokenEOF,
	}, types)
	assert.Equal(t, "0x1F", toks[9].Text)
	assert.Equal(t, 13, toks[9].Pos)
}

func TestLexerStrings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`'joe'`, "joe"},
		{`"it's"`, "it's"},
		{`'a\'b'`, "a'b"},
		{`'tab\there'`, "tab\there"},
		{`'\x41é'`, "Aé"},
		{`'naïve'`, "naïve"},
		{`''`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := lexAll(t, tt.input)
			require.Len(t, toks, 2)
			assert.Equal(t, TokenString, toks[0].Type)
			assert.Equal(t, tt.want, toks[0].Text)
		})
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		errSubstr string
	}{
		{name: "unterminated", input: `'abc`, errSubstr: "unterminated string"},
		{name: "bad escape", input: `'\q'`, errSubstr: "unknown escape"},
		{name: "short hex escape", input: `'\x4'`, errSubstr: "invalid \\x escape"},
		{name: "bad exponent", input: `1e`, errSubstr: "malformed exponent"},
		{name: "trailing letters", input: `12abc`, errSubstr: "invalid number"},
		{name: "leading zeros", input: `007`, errSubstr: "leading zeros"},
		{name: "double underscore", input: `1__0`, errSubstr: "invalid underscore"},
		{name: "stray character", input: `@`, errSubstr: "unexpected character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)
			_, err := l.NextToken()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)

			var se *SyntaxError
			assert.ErrorAs(t, err, &se)
		})
	}
}
