package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestLexOperators(t *testing.T) {
	tokens, err := Lex("a -> b <-> c <=> d <I=> e <=O> f")
	require.NoError(t, err)
	got := kinds(tokens)
	want := []TokenKind{
		TokID, TokEvolution, TokID, TokCommunication, TokID, TokExteroceptive, TokID,
		TokInExteroceptive, TokID, TokOutExteroceptive, TokID, TokEOF,
	}
	assert.Equal(t, want, got)
}

func TestLexWildcardIdentifiers(t *testing.T) {
	tokens, err := Lex("d_* e_%id")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "d_*", tokens[0].Value)
	assert.Equal(t, "e_%id", tokens[1].Value)
}

func TestLexLineComment(t *testing.T) {
	tokens, err := Lex("a = b; # trailing remark\nc = d;")
	require.NoError(t, err)
	var ids []string
	for _, tok := range tokens {
		if tok.Kind == TokID {
			ids = append(ids, tok.Value)
		}
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}

func TestLexLineColumnTracking(t *testing.T) {
	tokens, err := Lex("a;\nb;")
	require.NoError(t, err)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[2].Line)
}

func TestLexMismatchReportsPosition(t *testing.T) {
	_, err := Lex("a = @;")
	require.Error(t, err)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, '@', lexErr.Rune)
}

func TestLexNumber(t *testing.T) {
	tokens, err := Lex("n = 42;")
	require.NoError(t, err)
	require.Equal(t, TokNumber, tokens[2].Kind)
	assert.Equal(t, "42", tokens[2].Value)
}
