package timeline

import (
	"testing"
	"time"

	"worklines-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestBuildMonthColumns_EmptyWithoutValidDates(t *testing.T) {
	require.Empty(t, BuildMonthColumns(nil))
	require.Empty(t, BuildMonthColumns([]models.Task{
		{ID: "t1", StartDate: "not-a-date", EndDate: "also-bad"},
	}))
}

func TestBuildMonthColumns_PadsToSixMonths(t *testing.T) {
	cols := BuildMonthColumns([]models.Task{
		{ID: "t1", StartDate: "2024-01-10", EndDate: "2024-02-20"},
	})

	require.Len(t, cols, 6)
	require.Equal(t, 2024, cols[0].Year)
	require.Equal(t, time.January, cols[0].Month)
	require.Equal(t, "ene", cols[0].Label)
	require.Equal(t, time.June, cols[5].Month)
	require.Equal(t, "jun", cols[5].Label)
}

func TestBuildMonthColumns_SpansAllTasks(t *testing.T) {
	cols := BuildMonthColumns([]models.Task{
		{ID: "t1", StartDate: "2023-11-05", EndDate: "2023-12-01"},
		{ID: "t2", StartDate: "2024-03-01", EndDate: "2024-08-15"},
	})

	require.Len(t, cols, 10) // Nov 2023 .. Aug 2024
	require.Equal(t, time.November, cols[0].Month)
	require.Equal(t, 2023, cols[0].Year)
	require.Equal(t, time.August, cols[9].Month)
	require.Equal(t, 2024, cols[9].Year)
}

func TestBuildMonthColumns_IgnoresUnparseableTasks(t *testing.T) {
	cols := BuildMonthColumns([]models.Task{
		{ID: "t1", StartDate: "2024-01-01", EndDate: "2024-01-31"},
		{ID: "t2", StartDate: "garbage", EndDate: "2030-12-31"},
	})

	// t2 must not stretch the range to 2030.
	require.Len(t, cols, MinColumns)
	require.Equal(t, 2024, cols[len(cols)-1].Year)
}

func TestLayoutBar_FullyOutsideIsHidden(t *testing.T) {
	cols := BuildMonthColumns([]models.Task{
		{ID: "anchor", StartDate: "2024-01-01", EndDate: "2024-12-31"},
	})

	_, ok := LayoutBar(models.Task{StartDate: "2030-01-01", EndDate: "2030-02-01"}, cols)
	require.False(t, ok)

	_, ok = LayoutBar(models.Task{StartDate: "2010-01-01", EndDate: "2010-02-01"}, cols)
	require.False(t, ok)
}

func TestLayoutBar_BadDatesAreHidden(t *testing.T) {
	cols := BuildMonthColumns([]models.Task{
		{ID: "anchor", StartDate: "2024-01-01", EndDate: "2024-12-31"},
	})

	_, ok := LayoutBar(models.Task{StartDate: "??", EndDate: "2024-02-01"}, cols)
	require.False(t, ok)
}

func TestLayoutBar_PartialOverlapClamps(t *testing.T) {
	cols := BuildMonthColumns([]models.Task{
		{ID: "anchor", StartDate: "2024-01-01", EndDate: "2024-06-30"},
	})

	bar, ok := LayoutBar(models.Task{StartDate: "2023-10-01", EndDate: "2024-03-01"}, cols)
	require.True(t, ok)
	require.GreaterOrEqual(t, bar.LeftPercent, 0.0)
	require.LessOrEqual(t, bar.LeftPercent+bar.WidthPercent, 100.0)
	require.Equal(t, 0.0, bar.LeftPercent) // clamped to timeline start
}

func TestLayoutBar_FullSpanIsFullWidth(t *testing.T) {
	cols := BuildMonthColumns([]models.Task{
		{ID: "anchor", StartDate: "2024-01-01", EndDate: "2024-06-30"},
	})

	bar, ok := LayoutBar(models.Task{StartDate: "2020-01-01", EndDate: "2030-01-01"}, cols)
	require.True(t, ok)
	require.Equal(t, 0.0, bar.LeftPercent)
	require.InDelta(t, 100.0, bar.WidthPercent, 0.001)
}

func TestLayoutBar_NoColumnsIsHidden(t *testing.T) {
	_, ok := LayoutBar(models.Task{StartDate: "2024-01-01", EndDate: "2024-02-01"}, nil)
	require.False(t, ok)
}

func TestOrderRows_ParentsByStartChildrenGrouped(t *testing.T) {
	tasks := []models.Task{
		{ID: "late", StartDate: "2024-06-01"},
		{ID: "early", StartDate: "2024-01-01"},
		{ID: "late-b", ParentID: "late", StartDate: "2024-07-01"},
		{ID: "late-a", ParentID: "late", StartDate: "2024-06-15"},
		{ID: "orphan", ParentID: "gone", StartDate: "2024-02-01"},
	}

	got := OrderRows(tasks)
	ids := make([]string, len(got))
	for i, task := range got {
		ids[i] = task.ID
	}
	require.Equal(t, []string{"early", "late", "late-a", "late-b"}, ids)
}

func TestParseDate_Layouts(t *testing.T) {
	for _, s := range []string{"2024-01-02", "2 Jan 2024", "02 Jan 2024"} {
		parsed, ok := ParseDate(s)
		require.True(t, ok, s)
		require.Equal(t, 2024, parsed.Year())
	}
	_, ok := ParseDate("")
	require.False(t, ok)
}
