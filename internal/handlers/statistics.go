package handlers

import (
	"fmt"
	"io"

	"masroufi/internal/stats"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var rangeLabels = map[stats.Range]string{
	stats.Today:     "Today",
	stats.ThisWeek:  "This week",
	stats.ThisMonth: "This month",
}

// Stats renders the per-category ranking for r.
func (h *Handlers) Stats(w io.Writer, r stats.Range) error {
	summary := stats.Summarize(h.store.LoadAll(), r, h.store.Now())

	for _, opt := range stats.Ranges {
		label := rangeLabels[opt]
		if opt == r {
			label = "[" + label + "]"
		}
		fmt.Fprintf(w, "%s  ", label)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, summary.Subtitle)
	fmt.Fprintf(w, "Total: %s\n\n", text.Bold.Sprint(h.money.Format(summary.Total)))

	if summary.Empty {
		fmt.Fprintln(w, "No expenses in this period.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Category", "Count", "Share", "Total"})
	for _, c := range summary.Categories {
		t.AppendRow(table.Row{
			h.categoryLabel(c.Category),
			c.Count,
			fmt.Sprintf("%.0f%%", c.Percentage),
			h.money.Format(c.Total),
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
	return nil
}
