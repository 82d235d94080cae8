package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClauseWatches(t *testing.T) {
	l1, l2, l3 := IntToLit(1), IntToLit(2), IntToLit(3)
	c := newClause([]Lit{l1, l2, l3}, false, true)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, l1, c.Watched(0))
	assert.Equal(t, l2, c.Watched(1))
	assert.Equal(t, 0, c.SlotOf(l1))
	assert.Equal(t, 1, c.SlotOf(l2))
	assert.Equal(t, -1, c.SlotOf(l3))
}

func TestClauseSwapUpdatesWatch(t *testing.T) {
	l1, l2, l3 := IntToLit(1), IntToLit(2), IntToLit(3)
	c := newClause([]Lit{l1, l2, l3}, false, true)
	c.swap(1, 2)
	assert.Equal(t, l3, c.Watched(1))
	assert.Equal(t, 1, c.SlotOf(l3))
}

func TestClauseLBDAndActivity(t *testing.T) {
	c := newClause([]Lit{IntToLit(1), IntToLit(2)}, true, false)
	assert.True(t, c.Learned())
	assert.False(t, c.Core())
	c.SetLBD(3)
	assert.Equal(t, 3, c.LBD())
}

func TestClauseCNF(t *testing.T) {
	c := newClause([]Lit{IntToLit(1), IntToLit(-2)}, false, true)
	assert.Equal(t, "1 -2 0", c.CNF())
}
