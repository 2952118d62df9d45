package stats

import (
	"testing"
	"time"

	"masroufi/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Thursday
var now = time.Date(2026, time.October, 15, 18, 45, 0, 0, time.UTC)

func expense(amount int64, category, date string) models.Expense {
	return models.Expense{
		ID:       date + "_" + category,
		Amount:   decimal.NewFromInt(amount),
		Category: category,
		Date:     date,
	}
}

func categoriesOf(s RangeSummary) []string {
	out := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		out = append(out, c.Category+"="+c.Total.String())
	}
	return out
}

func TestDaily(t *testing.T) {
	all := []models.Expense{
		expense(30, "transport", "2026-10-15"),
		expense(50, "food", "2026-10-15"),
		expense(999, "food", "2026-10-14"),
		expense(100, "food", "2026-10-15"),
	}

	summary := Daily(all, now)
	assert.Equal(t, "2026-10-15", summary.Date)
	assert.Equal(t, "180", summary.Total.String())
	assert.False(t, summary.Empty)
	require.Len(t, summary.Items, 3)
	assert.Equal(t, "transport", summary.Items[0].Category, "store order must be preserved")
	assert.Equal(t, "100", summary.Items[2].Amount.String())
}

func TestDaily_Empty(t *testing.T) {
	summary := Daily([]models.Expense{expense(10, "food", "2026-10-14")}, now)
	assert.True(t, summary.Empty)
	assert.True(t, summary.Total.IsZero())
	assert.NotNil(t, summary.Items)
	assert.Empty(t, summary.Items)
}

func TestSummarize_Ranking(t *testing.T) {
	all := []models.Expense{
		expense(100, "food", "2026-10-15"),
		expense(50, "food", "2026-10-15"),
		expense(30, "transport", "2026-10-15"),
	}

	summary := Summarize(all, Today, now)
	assert.Equal(t, "180", summary.Total.String())
	assert.Equal(t, []string{"food=150", "transport=30"}, categoriesOf(summary))
	assert.Equal(t, 2, summary.Categories[0].Count)
	assert.InDelta(t, 83.33, summary.Categories[0].Percentage, 0.01)
	assert.InDelta(t, 16.67, summary.Categories[1].Percentage, 0.01)
	assert.Equal(t, "Date: 2026-10-15", summary.Subtitle)
}

func TestSummarize_TiesKeepFirstSeenOrder(t *testing.T) {
	all := []models.Expense{
		expense(20, "transport", "2026-10-15"),
		expense(20, "food", "2026-10-15"),
		expense(5, "bills", "2026-10-15"),
		expense(20, "health", "2026-10-15"),
	}

	summary := Summarize(all, Today, now)
	assert.Equal(t, []string{"transport=20", "food=20", "health=20", "bills=5"}, categoriesOf(summary))
}

func TestSummarize_Windows(t *testing.T) {
	all := []models.Expense{
		expense(1, "a", "2026-10-16"), // tomorrow
		expense(2, "b", "2026-10-13"), // this week
		expense(4, "c", "2026-10-12"), // monday, first day of week
		expense(8, "d", "2026-10-11"), // last sunday
		expense(16, "e", "2026-10-05"),
		expense(32, "f", "2026-10-01"), // first of month
		expense(64, "g", "2026-09-20"),
		expense(128, "h", "not-a-date"),
	}

	tests := []struct {
		r        Range
		total    string
		from     time.Time
		subtitle string
	}{
		{Today, "0", time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC), "Date: 2026-10-15"},
		{ThisWeek, "6", time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC), "From 2026-10-12 to 2026-10-15"},
		{ThisMonth, "62", time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), "From 2026-10-01 to 2026-10-15"},
	}

	for _, tt := range tests {
		t.Run(tt.r.String(), func(t *testing.T) {
			summary := Summarize(all, tt.r, now)
			assert.Equal(t, tt.total, summary.Total.String())
			assert.Equal(t, tt.from, summary.From)
			assert.Equal(t, now, summary.To)
			assert.Equal(t, tt.subtitle, summary.Subtitle)
		})
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, ThisMonth, now)
	assert.True(t, summary.Empty)
	assert.True(t, summary.Total.IsZero())
	assert.NotNil(t, summary.Categories)
	assert.Empty(t, summary.Categories)
}

func TestParseRange(t *testing.T) {
	tests := map[string]Range{
		"today": Today,
		"0":     Today,
		"Week":  ThisWeek,
		"1":     ThisWeek,
		"month": ThisMonth,
		"2":     ThisMonth,
	}
	for in, want := range tests {
		got, err := ParseRange(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRange("year")
	assert.Error(t, err)
}

func TestBounds(t *testing.T) {
	sunday := time.Date(2026, time.October, 18, 7, 0, 0, 0, time.UTC)
	from, to := Bounds(ThisWeek, sunday)
	assert.Equal(t, time.Date(2026, time.October, 12, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, sunday, to)
}
