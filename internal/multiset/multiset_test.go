package multiset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertRemoveIdempotence(t *testing.T) {
	m := New()
	m.Insert("a", 3)
	require.Equal(t, 3, m.Count("a"))

	ok := m.Remove("a", 3)
	require.True(t, ok)
	assert.False(t, m.Contains("a"))
	assert.Equal(t, 0, m.Count("a"))
	_, present := m["a"]
	assert.False(t, present, "zero-count entries must be pruned")
}

func TestRemoveFailsBelowCount(t *testing.T) {
	m := New()
	m.Insert("a", 1)

	ok := m.Remove("a", 2)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Count("a"), "failed remove must not modify state")
}

func TestFromCounts(t *testing.T) {
	m := FromCounts([]string{"a", "b", "a", "a"})
	assert.Equal(t, 3, m.Count("a"))
	assert.Equal(t, 1, m.Count("b"))
	assert.Equal(t, 0, m.Count("c"))
}

func TestCloneIsIndependent(t *testing.T) {
	m := FromCounts([]string{"a", "a"})
	clone := m.Clone()
	clone.Insert("a", 1)

	assert.Equal(t, 2, m.Count("a"))
	assert.Equal(t, 3, clone.Count("a"))
}

func TestEqual(t *testing.T) {
	a := FromCounts([]string{"a", "b", "b"})
	b := FromCounts([]string{"b", "a", "b"})
	c := FromCounts([]string{"a", "b"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestTotal(t *testing.T) {
	m := FromCounts([]string{"a", "b", "a"})
	assert.Equal(t, 3, m.Total())
}

func TestInsertZeroOrNegativeIsNoOp(t *testing.T) {
	m := New()
	m.Insert("a", 0)
	m.Insert("a", -5)
	assert.False(t, m.Contains("a"))
}
