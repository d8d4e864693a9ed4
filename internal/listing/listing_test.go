package listing

import (
	"testing"

	"marketdash/internal/domain"
	"marketdash/internal/domain/models"
	"marketdash/internal/normalize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orders() []domain.Record {
	return normalize.Orders([]models.RawOrder{
		{ID: "a", Amount: models.Num("10"), Status: "pending", CreatedAt: "2024-01-03T00:00:00Z"},
		{ID: "b", Amount: models.Num("5"), Status: "completed", CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: "c", Amount: models.Num("10"), Status: "pending", CreatedAt: "2024-01-03T00:00:00Z"},
		{ID: "d", Amount: models.Num("1"), Status: "cancelled"},
		{ID: "e", Amount: models.Num("10.00"), Status: "completed", CreatedAt: "2024-01-02T00:00:00Z"},
	})
}

func idsOf(recs []domain.Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}

func TestSortByDateDefaultsToNewestFirst(t *testing.T) {
	key := SortByDate
	got := Sort(orders(), key, DefaultDirection(key))
	assert.Equal(t, []string{"a", "c", "e", "b", "d"}, idsOf(got))
}

func TestSortIsStable(t *testing.T) {
	in := orders()

	byAmount := Sort(in, SortByAmount, Asc)
	assert.Equal(t, []string{"d", "b", "a", "c", "e"}, idsOf(byAmount))

	byAmountDesc := Sort(in, SortByAmount, Desc)
	assert.Equal(t, []string{"a", "c", "e", "b", "d"}, idsOf(byAmountDesc))

	byStatus := Sort(in, SortByStatus, Asc)
	assert.Equal(t, []string{"d", "b", "e", "a", "c"}, idsOf(byStatus))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := orders()
	_ = Sort(in, SortByAmount, Desc)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, idsOf(in))
}

func TestSelectTogglesAndResets(t *testing.T) {
	s := NewSortState(SortByDate)
	assert.Equal(t, Desc, s.Direction)

	s = s.Select(SortByDate)
	assert.Equal(t, SortState{Key: SortByDate, Direction: Asc}, s)

	s = s.Select(SortByAmount)
	assert.Equal(t, SortState{Key: SortByAmount, Direction: Asc}, s)

	s = s.Select(SortByAmount)
	assert.Equal(t, Desc, s.Direction)

	s = s.Select(SortByStatus)
	assert.Equal(t, Asc, s.Direction)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, SortByAmount, ParseSortKey(" Amount "))
	assert.Equal(t, SortByDate, ParseSortKey("bogus"))
	assert.Equal(t, Desc, ParseDirection("", SortByDate))
	assert.Equal(t, Asc, ParseDirection("", SortByStatus))
	assert.Equal(t, Desc, ParseDirection("DESC", SortByStatus))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	p := Paginate(items, 2, 3)
	assert.Equal(t, []int{4, 5, 6}, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 7, p.TotalCount)
	assert.False(t, p.Clamped)

	p = Paginate(items, 3, 3)
	assert.Equal(t, []int{7}, p.Items)

	p = Paginate(items, 9, 3)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 9, p.RequestedPage)
	assert.True(t, p.Clamped)
	assert.Equal(t, []int{7}, p.Items)

	p = Paginate(items, 0, 3)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, []int{1, 2, 3}, p.Items)
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]int{}, 4, 6)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.TotalPages)
	assert.True(t, p.Clamped)
	assert.Empty(t, p.Items)
}

func TestPaginateNeverExceedsLastPage(t *testing.T) {
	for _, size := range []int{1, 6, 10, 15} {
		for n := 0; n <= 40; n++ {
			items := make([]int, n)
			want := TotalPages(n, size)
			for page := 1; page <= 50; page++ {
				p := Paginate(items, page, size)
				require.LessOrEqual(t, p.Page, want)
				require.GreaterOrEqual(t, p.Page, 1)
				require.LessOrEqual(t, len(p.Items), size)
			}
		}
	}
}

func TestPaginateFallsBackOnBadSize(t *testing.T) {
	p := Paginate(make([]int, 25), 1, 0)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 3, p.TotalPages)
}
