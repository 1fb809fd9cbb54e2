package lexer

import (
	"testing"

	"nilan/token"

	"github.com/stretchr/testify/require"
)

func collectTokens(lexer *Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.TokenType == token.EOF {
			return tokens
		}
	}
}

func typesOf(tokens []token.Token) []token.TokenType {
	types := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.TokenType
	}
	return types
}

func TestNextTokenOperators(t *testing.T) {
	lexer := New("== != * + > - < <= >= = !")
	expected := []token.TokenType{
		token.EQUAL_EQUAL,
		token.NOT_EQUAL,
		token.MULT,
		token.ADD,
		token.LARGER,
		token.SUB,
		token.LESS,
		token.LESS_EQUAL,
		token.LARGER_EQUAL,
		token.ASSIGN,
		token.BANG,
		token.EOF,
	}

	require.Equal(t, expected, typesOf(collectTokens(lexer)))
}

func TestNextTokenPunctuation(t *testing.T) {
	lexer := New("(){};,")
	expected := []token.TokenType{
		token.LPA,
		token.RPA,
		token.LCUR,
		token.RCUR,
		token.SEMICOLON,
		token.COMMA,
		token.EOF,
	}

	require.Equal(t, expected, typesOf(collectTokens(lexer)))
}

func TestNextTokenKeywords(t *testing.T) {
	lexer := New("var print if else while for true false nil and or class fun return this super")
	expected := []token.TokenType{
		token.VAR, token.PRINT, token.IF, token.ELSE, token.WHILE, token.FOR,
		token.TRUE, token.FALSE, token.NIL, token.AND, token.OR, token.CLASS,
		token.FUN, token.RETURN, token.THIS, token.SUPER, token.EOF,
	}

	require.Equal(t, expected, typesOf(collectTokens(lexer)))
}

func TestNextTokenIdentifier(t *testing.T) {
	lexer := New("myVar _hidden snake_case2")
	want := []string{"myVar", "_hidden", "snake_case2"}

	for _, lexeme := range want {
		tok := lexer.NextToken()
		require.Equal(t, token.IDENTIFIER, tok.TokenType)
		require.Equal(t, lexeme, tok.Lexeme)
	}
	require.Equal(t, token.EOF, lexer.NextToken().TokenType)
}

func TestNextTokenNumber(t *testing.T) {
	tests := []struct {
		source string
		lexeme string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{"0", "0"},
	}

	for _, tt := range tests {
		lexer := New(tt.source)
		tok := lexer.NextToken()
		require.Equal(t, token.NUMBER, tok.TokenType)
		require.Equal(t, tt.lexeme, tok.Lexeme)
	}
}

func TestNextTokenString(t *testing.T) {
	lexer := New(`"hello world"`)
	tok := lexer.NextToken()
	require.Equal(t, token.STRING, tok.TokenType)
	require.Equal(t, "hello world", tok.Lexeme)
}

func TestNextTokenUnterminatedString(t *testing.T) {
	lexer := New(`"hello`)
	tok := lexer.NextToken()
	require.Equal(t, token.ERROR, tok.TokenType)
	require.Equal(t, "Unterminated string.", tok.Lexeme)
}

func TestNextTokenUnexpectedCharacter(t *testing.T) {
	lexer := New("@")
	tok := lexer.NextToken()
	require.Equal(t, token.ERROR, tok.TokenType)
	require.Equal(t, "Unexpected character.", tok.Lexeme)
}

func TestNextTokenSkipsCommentsAndWhitespace(t *testing.T) {
	lexer := New("// a full line comment\n  var   x = 1; // trailing\n")
	expected := []token.TokenType{token.VAR, token.IDENTIFIER, token.ASSIGN, token.NUMBER, token.SEMICOLON, token.EOF}

	require.Equal(t, expected, typesOf(collectTokens(lexer)))
}

func TestNextTokenTracksLineNumbers(t *testing.T) {
	lexer := New("var a\nvar b\nvar c")
	var lines []int
	for {
		tok := lexer.NextToken()
		if tok.TokenType == token.EOF {
			break
		}
		if tok.TokenType == token.VAR {
			lines = append(lines, tok.Line)
		}
	}
	require.Equal(t, []int{1, 2, 3}, lines)
}

func TestNextTokenIsIdempotentAtEOF(t *testing.T) {
	lexer := New("")
	first := lexer.NextToken()
	second := lexer.NextToken()
	require.Equal(t, token.EOF, first.TokenType)
	require.Equal(t, token.EOF, second.TokenType)
}
