// Package stats reduces the expense list to the daily and range views.
package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"masroufi/internal/dates"
	"masroufi/internal/models"

	"github.com/shopspring/decimal"
)

// Range selects the window of the range view.
type Range int

const (
	Today Range = iota
	ThisWeek
	ThisMonth
)

// Ranges lists the selectable windows in selector order.
var Ranges = []Range{Today, ThisWeek, ThisMonth}

func (r Range) String() string {
	switch r {
	case Today:
		return "today"
	case ThisWeek:
		return "week"
	case ThisMonth:
		return "month"
	default:
		return "range(" + strconv.Itoa(int(r)) + ")"
	}
}

// ParseRange accepts today/week/month or the selector index 0/1/2.
func ParseRange(s string) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today", "day", "0":
		return Today, nil
	case "week", "thisweek", "1":
		return ThisWeek, nil
	case "month", "thismonth", "2":
		return ThisMonth, nil
	}
	return Today, fmt.Errorf("unknown range %q: want today, week or month", s)
}

// Bounds returns the inclusive window for r ending at now.
func Bounds(r Range, now time.Time) (from, to time.Time) {
	switch r {
	case ThisWeek:
		return dates.StartOfWeek(now), now
	case ThisMonth:
		return dates.StartOfMonth(now), now
	default:
		return dates.StartOfDay(now), now
	}
}

// DailySummary is the home screen: today's records and their sum.
type DailySummary struct {
	Date  string
	Total decimal.Decimal
	Items []models.Expense
	Empty bool
}

// Daily keeps the records dated today in store order.
func Daily(all []models.Expense, now time.Time) DailySummary {
	today := dates.FormatDate(now)
	summary := DailySummary{Date: today, Total: decimal.Zero, Items: []models.Expense{}}
	for _, e := range all {
		if e.Date != today {
			continue
		}
		summary.Items = append(summary.Items, e)
		summary.Total = summary.Total.Add(e.Amount)
	}
	summary.Empty = len(summary.Items) == 0
	return summary
}

// CategoryTotal is one row of the ranking.
type CategoryTotal struct {
	Category   string
	Total      decimal.Decimal
	Count      int
	Percentage float64
}

// RangeSummary is the statistics screen for one window.
type RangeSummary struct {
	Range      Range
	From       time.Time
	To         time.Time
	Subtitle   string
	Total      decimal.Decimal
	Categories []CategoryTotal
	Empty      bool
}

// Summarize filters all to the window of r, sums per category and ranks the
// categories by descending total. Equal totals keep first-seen order.
// Records whose date cannot be parsed are skipped.
func Summarize(all []models.Expense, r Range, now time.Time) RangeSummary {
	from, to := Bounds(r, now)
	summary := RangeSummary{
		Range:      r,
		From:       from,
		To:         to,
		Subtitle:   subtitle(r, from, now),
		Total:      decimal.Zero,
		Categories: []CategoryTotal{},
	}

	index := make(map[string]int)
	for _, e := range all {
		day, err := dates.ParseDate(e.Date, now.Location())
		if err != nil || day.Before(from) || day.After(to) {
			continue
		}
		summary.Total = summary.Total.Add(e.Amount)

		i, ok := index[e.Category]
		if !ok {
			i = len(summary.Categories)
			index[e.Category] = i
			summary.Categories = append(summary.Categories, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		summary.Categories[i].Total = summary.Categories[i].Total.Add(e.Amount)
		summary.Categories[i].Count++
	}

	sort.SliceStable(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Total.GreaterThan(summary.Categories[j].Total)
	})

	if summary.Total.IsPositive() {
		for i := range summary.Categories {
			summary.Categories[i].Percentage = summary.Categories[i].Total.
				Div(summary.Total).
				Mul(decimal.NewFromInt(100)).
				InexactFloat64()
		}
	}

	summary.Empty = len(summary.Categories) == 0
	return summary
}

func subtitle(r Range, from, now time.Time) string {
	if r == Today {
		return "Date: " + dates.FormatDate(now)
	}
	return fmt.Sprintf("From %s to %s", dates.FormatDate(from), dates.FormatDate(now))
}
