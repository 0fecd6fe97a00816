package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/adfharrison1/hashsync/pkg/domain"
)

type pair struct {
	a, b int
}

func first(p pair) int  { return p.a }
func second(p pair) int { return p.b }

func TestCollection_InsertOnce(t *testing.T) {
	coll := NewCollection[pair]()
	coll.Insert(pair{1, 2})
	coll.Insert(pair{1, 3})
	coll.Insert(pair{3, 4})
	index := CreateIndex(coll, first)

	rows := index.GetValues(1)
	assert.Len(t, rows, 2)
	assert.Contains(t, rows, pair{1, 2})
	assert.Contains(t, rows, pair{1, 3})

	rows = index.GetValues(3)
	assert.Len(t, rows, 1)
	assert.Contains(t, rows, pair{3, 4})
}

func TestCollection_InsertAfterIndex(t *testing.T) {
	coll := NewCollection[pair]()
	coll.Insert(pair{1, 2})
	coll.Insert(pair{1, 3})
	coll.Insert(pair{3, 4})
	index := CreateIndex(coll, first)

	coll.Insert(pair{1, 4})

	rows := index.GetValues(1)
	assert.Len(t, rows, 3)
	assert.Contains(t, rows, pair{1, 2})
	assert.Contains(t, rows, pair{1, 3})
	assert.Contains(t, rows, pair{1, 4})
}

func TestCollection_TwoIndexes(t *testing.T) {
	coll := NewCollection[pair]()
	coll.Insert(pair{1, 2})
	coll.Insert(pair{1, 3})
	coll.Insert(pair{3, 2})
	byFirst := CreateIndex(coll, first)
	bySecond := CreateIndex(coll, second)

	assert.ElementsMatch(t, []pair{{1, 2}, {1, 3}}, byFirst.GetValues(1))
	assert.ElementsMatch(t, []pair{{1, 2}, {3, 2}}, bySecond.GetValues(2))

	coll.Insert(pair{3, 3})

	assert.ElementsMatch(t, []pair{{1, 2}, {1, 3}}, byFirst.GetValues(1))
	assert.ElementsMatch(t, []pair{{3, 2}, {3, 3}}, byFirst.GetValues(3))
	assert.ElementsMatch(t, []pair{{1, 2}, {3, 2}}, bySecond.GetValues(2))
	assert.ElementsMatch(t, []pair{{1, 3}, {3, 3}}, bySecond.GetValues(3))
	assert.NotEqual(t, byFirst.ID(), bySecond.ID())
}

func TestCollection_DuplicateRows(t *testing.T) {
	coll := NewCollection[pair]()
	index := CreateIndex(coll, first)

	id1 := coll.Insert(pair{7, 7})
	id2 := coll.Insert(pair{7, 7})

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, []pair{{7, 7}, {7, 7}}, index.GetValues(7))
	assert.Equal(t, 2, coll.Len())
}

func TestCollection_UnseenKey(t *testing.T) {
	coll := NewCollection[pair]()
	coll.Insert(pair{1, 2})
	index := CreateIndex(coll, first)

	rows := index.GetValues(99)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestCollection_IndexOnEmptyStore(t *testing.T) {
	coll := NewCollection[pair]()
	index := CreateIndex(coll, first)
	assert.Equal(t, 0, index.Len())

	coll.Insert(pair{2, 2})
	assert.Equal(t, []pair{{2, 2}}, index.GetValues(2))
}

func TestCollection_LaterIndexBackfills(t *testing.T) {
	coll := NewCollection[pair]()
	early := CreateIndex(coll, first)
	coll.Insert(pair{1, 1})
	coll.Insert(pair{1, 2})
	late := CreateIndex(coll, first)
	coll.Insert(pair{1, 3})

	assert.Equal(t, early.GetValues(1), late.GetValues(1))
	assert.Len(t, late.GetValues(1), 3)
}

func TestCollection_InsertReturnsHandle(t *testing.T) {
	coll := NewCollection[string](WithCapacity(4))
	for i, s := range []string{"a", "b", "c"} {
		assert.Equal(t, domain.RowID(i), coll.Insert(s))
	}

	row, ok := coll.Row(1)
	require.True(t, ok)
	assert.Equal(t, "b", row)

	_, ok = coll.Row(3)
	assert.False(t, ok)
}

func TestCollection_Iteration(t *testing.T) {
	coll := NewCollection[string]()
	coll.Insert("x")
	coll.Insert("y")
	coll.Insert("z")

	var ids []domain.RowID
	var rows []string
	for id, row := range coll.All() {
		ids = append(ids, id)
		rows = append(rows, row)
	}
	assert.Equal(t, []domain.RowID{0, 1, 2}, ids)
	assert.Equal(t, []string{"x", "y", "z"}, rows)

	// restartable
	var again []string
	for row := range coll.Values() {
		again = append(again, row)
	}
	assert.Equal(t, rows, again)

	// early exit
	var firstOnly []string
	for row := range coll.Values() {
		firstOnly = append(firstOnly, row)
		break
	}
	assert.Equal(t, []string{"x"}, firstOnly)
}

func TestCollection_IterationIgnoresRowsAddedWhileRanging(t *testing.T) {
	coll := NewCollection[int]()
	coll.Insert(1)
	coll.Insert(2)

	visited := 0
	for row := range coll.Values() {
		coll.Insert(row * 10)
		visited++
	}
	assert.Equal(t, 2, visited)
	assert.Equal(t, 4, coll.Len())
}

func TestCollection_DropIndex(t *testing.T) {
	coll := NewCollection[pair]()
	coll.Insert(pair{1, 2})
	byFirst := CreateIndex(coll, first)
	bySecond := CreateIndex(coll, second)
	assert.Equal(t, []domain.IndexID{byFirst.ID(), bySecond.ID()}, coll.IndexIDs())

	assert.True(t, coll.DropIndex(byFirst.ID()))
	assert.False(t, coll.DropIndex(byFirst.ID()))
	assert.Equal(t, 1, coll.IndexCount())

	coll.Insert(pair{1, 5})

	assert.True(t, byFirst.Dropped())
	assert.Empty(t, byFirst.GetValues(1))
	assert.Equal(t, []pair{{1, 5}}, bySecond.GetValues(5))
	assert.Equal(t, 2, coll.Len())

	third := CreateIndex(coll, first)
	assert.Greater(t, third.ID(), bySecond.ID())
}

func TestCollection_MultiIndex(t *testing.T) {
	coll := NewCollection[pair]()
	coll.Insert(pair{1, 2})
	coll.Insert(pair{2, 3})
	either := CreateMultiIndex(coll, func(p pair) []int { return []int{p.a, p.b} })
	coll.Insert(pair{3, 1})

	assert.Equal(t, []pair{{1, 2}, {3, 1}}, either.GetValues(1))
	assert.Equal(t, []pair{{1, 2}, {2, 3}}, either.GetValues(2))
	assert.Equal(t, []pair{{2, 3}, {3, 1}}, either.GetValues(3))
}

func TestCollection_LogsIndexLifecycle(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	coll := NewCollection[pair](WithLogger(zap.New(core)))
	coll.Insert(pair{1, 2})

	index := CreateIndex(coll, first)
	coll.DropIndex(index.ID())

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "index created", entries[0].Message)
	assert.Equal(t, int64(1), entries[0].ContextMap()["rows"])
	assert.Equal(t, "index dropped", entries[1].Message)
}
