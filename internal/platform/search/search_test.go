package search

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    int
	First string
	Age   int
	Date  string
	Total float64
}

func rows() []row {
	return []row{
		{ID: 3, First: "Carol", Age: 60, Date: "01-03-2024", Total: 10},
		{ID: 4, First: "Alice", Age: 25, Date: "15-03-2024", Total: 50},
		{ID: 5, First: "ALICE", Age: 19, Date: "30-04-2024", Total: 99.5},
	}
}

func ptr[V any](v V) *V { return &v }

func ids(rs []row) []int {
	out := make([]int, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func newQuery() *Query[row] { return New[row](zerolog.Nop()) }

func first(r row) string { return r.First }
func age(r row) int      { return r.Age }
func date(r row) string  { return r.Date }

func TestRun_NoCriteriaReturnsAll(t *testing.T) {
	q := newQuery().EqualFold(nil, first).IntRange(nil, nil, age)
	assert.True(t, q.Empty())
	assert.Len(t, q.Run(rows()), 3)
}

func TestEqualFold_CaseInsensitive(t *testing.T) {
	got := newQuery().EqualFold(ptr("alice"), first).Run(rows())
	assert.Equal(t, []int{4, 5}, ids(got))
}

func TestEqualFold_EmptyIsAbsent(t *testing.T) {
	q := newQuery().EqualFold(ptr(""), first)
	assert.True(t, q.Empty())
}

func TestIntRange_MinAge(t *testing.T) {
	got := newQuery().IntRange(ptr(30), nil, age).Run(rows())
	assert.Equal(t, []int{3}, ids(got))
}

func TestIntRange_Inclusive(t *testing.T) {
	got := newQuery().IntRange(ptr(19), ptr(25), age).Run(rows())
	assert.Equal(t, []int{4, 5}, ids(got))
}

func TestCriteriaAreConjunctive(t *testing.T) {
	got := newQuery().
		EqualFold(ptr("Alice"), first).
		IntRange(ptr(20), nil, age).
		Run(rows())
	assert.Equal(t, []int{4}, ids(got))
}

func TestFloatRange(t *testing.T) {
	got := newQuery().FloatRange(ptr(50.0), nil, func(r row) float64 { return r.Total }).Run(rows())
	assert.Equal(t, []int{4, 5}, ids(got))
}

func TestDateRange(t *testing.T) {
	got := newQuery().DateRange(ptr("01-03-2024"), ptr("15-03-2024"), date).Run(rows())
	assert.Equal(t, []int{3, 4}, ids(got))

	got = newQuery().DateRange(ptr("02-03-2024"), nil, date).Run(rows())
	assert.Equal(t, []int{4, 5}, ids(got))
}

func TestDateRange_BadBoundAbortsWithEmptyResult(t *testing.T) {
	q := newQuery().
		EqualFold(ptr("alice"), first).
		DateRange(ptr("2024-03-01"), ptr("15-03-2024"), date)
	require.Error(t, q.Err())
	assert.False(t, q.Empty())

	got := q.Run(rows())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDateRange_BadStoredDateAborts(t *testing.T) {
	data := append(rows(), row{ID: 9, First: "Dan", Date: "not-a-date"})
	got := newQuery().DateRange(ptr("01-01-2024"), ptr("31-12-2024"), date).Run(data)
	assert.Empty(t, got)
}
