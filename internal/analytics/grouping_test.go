package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrouping_WithDoesNotMutatePrevious(t *testing.T) {
	add := func(n int) func(int, bool) int {
		return func(current int, _ bool) int { return current + n }
	}

	empty := NewGrouping[string, int]()
	first := empty.With("a", add(1))
	second := first.With("b", add(2))
	third := second.With("a", add(10))

	assert.Equal(t, 0, empty.Len())

	value, ok := first.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, value)
	_, ok = first.Get("b")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, second.Keys())
	assert.Equal(t, []int{1, 2}, second.Values())

	// atualizar uma chave existente mantém a ordem da primeira ocorrência
	assert.Equal(t, []string{"a", "b"}, third.Keys())
	assert.Equal(t, []int{11, 2}, third.Values())
}

func TestGrouping_SiblingsDoNotShareKeys(t *testing.T) {
	base := NewGrouping[string, int]().
		With("a", func(int, bool) int { return 1 }).
		With("b", func(int, bool) int { return 2 })

	left := base.With("x", func(int, bool) int { return 3 })
	right := base.With("y", func(int, bool) int { return 4 })

	assert.Equal(t, []string{"a", "b", "x"}, left.Keys())
	assert.Equal(t, []string{"a", "b", "y"}, right.Keys())
	assert.Equal(t, []string{"a", "b"}, base.Keys())
}

func TestGrouping_WithReportsExistence(t *testing.T) {
	var seen []bool
	record := func(current int, exists bool) int {
		seen = append(seen, exists)
		return current
	}

	NewGrouping[int, int]().With(1, record).With(1, record).With(2, record)

	assert.Equal(t, []bool{false, true, false}, seen)
}

func TestFold(t *testing.T) {
	sum := Fold([]int{1, 2, 3, 4}, 0, func(acc, item int) int { return acc + item })
	assert.Equal(t, 10, sum)

	empty := Fold(nil, "inicial", func(acc string, item int) string { return "alterado" })
	assert.Equal(t, "inicial", empty)
}
