package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []Month
	}{
		{
			name:  "same month",
			start: date(2025, time.March, 5),
			end:   date(2025, time.March, 28),
			want:  []Month{{Year: 2025, Month: 3}},
		},
		{
			name:  "ignores day of month",
			start: date(2025, time.January, 31),
			end:   date(2025, time.March, 1),
			want:  []Month{{2025, 1}, {2025, 2}, {2025, 3}},
		},
		{
			name:  "crosses year boundary",
			start: date(2024, time.November, 15),
			end:   date(2025, time.February, 2),
			want:  []Month{{2024, 11}, {2024, 12}, {2025, 1}, {2025, 2}},
		},
		{
			name:  "start after end",
			start: date(2025, time.May, 1),
			end:   date(2025, time.April, 30),
			want:  []Month{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthRange(tt.start, tt.end)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthRangeLength(t *testing.T) {
	pairs := [][2]time.Time{
		{date(2020, time.January, 1), date(2020, time.January, 1)},
		{date(2020, time.February, 10), date(2023, time.July, 9)},
		{date(2019, time.December, 31), date(2026, time.January, 1)},
	}

	for _, p := range pairs {
		start, end := p[0], p[1]
		want := (end.Year()*12 + int(end.Month())) - (start.Year()*12 + int(start.Month())) + 1
		assert.Len(t, MonthRange(start, end), want, "%s..%s", start.Format("2006-01"), end.Format("2006-01"))
	}
}

func TestInRange(t *testing.T) {
	start, end := date(2025, time.April, 20), date(2025, time.June, 2)

	tests := []struct {
		month Month
		want  bool
	}{
		{Month{2025, 3}, false},
		{Month{2025, 4}, true},
		{Month{2025, 5}, true},
		{Month{2025, 6}, true},
		{Month{2025, 7}, false},
		{Month{2099, 12}, false},
		{Month{2024, 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, InRange(tt.month, start, end))
		})
	}

	assert.False(t, InRange(Month{2025, 5}, end, start))
}

func TestWallClockUTC(t *testing.T) {
	plusTwo := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2025, time.April, 1, 0, 30, 0, 0, plusTwo)

	got := WallClockUTC(local)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, Month{2025, 4}, MonthOf(got))
	assert.Equal(t, 30, got.Minute())

	// The instant itself would fall in March.
	assert.Equal(t, Month{2025, 3}, MonthOf(local.UTC()))
}

func TestQuarterRange(t *testing.T) {
	got := QuarterRange(date(2024, time.November, 20), date(2025, time.August, 3))
	assert.Equal(t, []Quarter{
		{Year: 2024, Quarter: 4},
		{Year: 2025, Quarter: 1},
		{Year: 2025, Quarter: 2},
		{Year: 2025, Quarter: 3},
	}, got)

	assert.Empty(t, QuarterRange(date(2025, time.June, 1), date(2025, time.January, 1)))
	assert.Equal(t, []Quarter{{2025, 2}}, QuarterRange(date(2025, time.April, 1), date(2025, time.June, 30)))
}

func TestQuarterRangeHasNoDuplicates(t *testing.T) {
	start := date(2021, time.March, 31)
	for offset := 0; offset < 40; offset++ {
		end := start.AddDate(0, offset, 0)
		seen := map[Quarter]bool{}
		for _, q := range QuarterRange(start, end) {
			require.False(t, seen[q], "duplicate %s for end %s", q, end.Format("2006-01"))
			seen[q] = true
		}
	}
}

func TestQuarterOfMonth(t *testing.T) {
	want := []int{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4}
	for i, q := range want {
		assert.Equal(t, q, QuarterOfMonth(i+1), "month %d", i+1)
	}
}

func TestQuarterMonthsAndContains(t *testing.T) {
	q := Quarter{Year: 2025, Quarter: 3}
	assert.Equal(t, [3]Month{{2025, 7}, {2025, 8}, {2025, 9}}, q.Months())
	assert.True(t, q.Contains(Month{2025, 8}))
	assert.False(t, q.Contains(Month{2025, 10}))
	assert.False(t, q.Contains(Month{2024, 8}))
}

func TestClassify(t *testing.T) {
	today := Month{Year: 2025, Month: 6}
	reviewed := map[Month]bool{{2025, 4}: true}

	want := map[Month]SlotState{
		{2025, 4}: SlotReviewed,
		{2025, 5}: SlotOverdue,
		{2025, 6}: SlotDueNow,
		{2025, 7}: SlotFuture,
		{2025, 8}: SlotFuture,
	}

	for _, m := range MonthRange(date(2025, time.April, 1), date(2025, time.August, 31)) {
		assert.Equal(t, want[m], Classify(today, m, reviewed[m]), m.String())
	}
}

func TestClassifyQuarter(t *testing.T) {
	current := Quarter{Year: 2025, Quarter: 2}
	assert.Equal(t, SlotOverdue, Classify(current, Quarter{2025, 1}, false))
	assert.Equal(t, SlotDueNow, Classify(current, Quarter{2025, 2}, false))
	assert.Equal(t, SlotFuture, Classify(current, Quarter{2025, 3}, false))
	assert.Equal(t, SlotReviewed, Classify(current, Quarter{2025, 3}, true))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidMonth(1))
	assert.True(t, ValidMonth(12))
	assert.False(t, ValidMonth(0))
	assert.False(t, ValidMonth(13))
	assert.True(t, ValidQuarter(4))
	assert.False(t, ValidQuarter(5))
	assert.True(t, ValidYear(2000))
	assert.True(t, ValidYear(2100))
	assert.False(t, ValidYear(1999))
	assert.False(t, ValidYear(2101))
}
