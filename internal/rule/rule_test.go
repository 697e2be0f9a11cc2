package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasWildcardNonConditional(t *testing.T) {
	r := Rule{MainKind: Evolution, Kind: Evolution, Lhs: "e", Rhs: "d_*"}
	assert.True(t, r.HasWildcard("*"))
	assert.False(t, r.HasWildcard("%id"))
}

func TestHasWildcardConditionalChecksAltSides(t *testing.T) {
	r := Rule{
		MainKind: Conditional,
		Kind:     Communication, Lhs: "a", Rhs: "b",
		AltKind: Evolution, AltLhs: "a", AltRhs: "c_%id",
	}
	assert.True(t, r.HasWildcard("%id"))
	assert.False(t, r.HasWildcard("*"))
}

func TestRuleStringRoundTrip(t *testing.T) {
	r := Rule{MainKind: Evolution, Kind: Evolution, Lhs: "a", Rhs: "b"}
	assert.Equal(t, "a -> b", r.String())

	cond := Rule{
		MainKind: Conditional,
		Kind:     Communication, Lhs: "a", Rhs: "b",
		AltKind: Evolution, AltLhs: "a", AltRhs: "c",
	}
	assert.Equal(t, "(a <-> b) / (a -> c)", cond.String())
}

func TestExecutableString(t *testing.T) {
	cond := Rule{
		MainKind: Conditional,
		Kind:     Communication, Lhs: "a", Rhs: "b",
		AltKind: Evolution, AltLhs: "a", AltRhs: "c",
	}
	assert.Equal(t, "a <-> b", cond.ExecutableString(ExecFirst))
	assert.Equal(t, "a -> c", cond.ExecutableString(ExecSecond))
}

func TestProgramCloneIsIndependent(t *testing.T) {
	p := Program{{MainKind: Evolution, Kind: Evolution, Lhs: "a", Rhs: "b"}}
	clone := p.Clone()
	clone[0].Rhs = "z"

	assert.Equal(t, "b", p[0].Rhs)
	assert.Equal(t, "z", clone[0].Rhs)
}

func TestProgramHasWildcard(t *testing.T) {
	p := Program{
		{MainKind: Evolution, Kind: Evolution, Lhs: "a", Rhs: "b"},
		{MainKind: Evolution, Kind: Evolution, Lhs: "e", Rhs: "d_*"},
	}
	assert.True(t, p.HasWildcard("*"))
	assert.False(t, p.HasWildcard("%id"))
}
