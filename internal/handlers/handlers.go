package handlers

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"masroufi/internal/config"
	"masroufi/internal/models"
	"masroufi/internal/session"
	"masroufi/internal/stats"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Screen titles
const (
	TitleHome  = "Masroufi"
	TitleAdd   = "Add expense"
	TitleStats = "Statistics"
)

// ExpenseStore is what the screens need from the expense store.
type ExpenseStore interface {
	LoadAll() []models.Expense
	Append(amount, category, note string) (models.Expense, error)
	Now() time.Time
}

// SessionSource exposes the bridge the login screen signs in through.
type SessionSource interface {
	Bridge() session.Bridge
}

// Handlers renders the app screens.
type Handlers struct {
	store      ExpenseStore
	sessions   SessionSource
	categories []config.Category
	money      *Money
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store ExpenseStore, sessions SessionSource, categories []config.Category, money *Money) *Handlers {
	if len(categories) == 0 {
		categories = config.DefaultCategories
	}
	return &Handlers{store: store, sessions: sessions, categories: categories, money: money}
}

// Header renders the app bar.
func (h *Handlers) Header(w io.Writer, title string, showBack bool) {
	if showBack {
		fmt.Fprintf(w, "\n← back | %s\n", text.Bold.Sprint(title))
	} else {
		fmt.Fprintf(w, "\n%s\n", text.Bold.Sprint(title))
	}
	fmt.Fprintln(w, strings.Repeat("─", 40))
}

// Message renders a user-facing notice.
func (h *Handlers) Message(w io.Writer, msg string) {
	fmt.Fprintf(w, "! %s\n", msg)
}

// Login renders the login screen. message is shown when a previous
// attempt failed.
func (h *Handlers) Login(w io.Writer, message string) error {
	fmt.Fprintf(w, "\n%s\n", text.Bold.Sprint(TitleHome))
	fmt.Fprintf(w, "Sign in with your wallet (%s) to continue.\n", h.sessions.Bridge().Name())
	fmt.Fprintln(w, "Type 'login' to sign in.")
	if message != "" {
		h.Message(w, message)
	}
	return nil
}

// Home renders today's expenses.
func (h *Handlers) Home(w io.Writer) error {
	summary := stats.Daily(h.store.LoadAll(), h.store.Now())

	fmt.Fprintf(w, "Today: %s\n", summary.Date)
	fmt.Fprintf(w, "Spent today: %s\n\n", text.Bold.Sprint(h.money.Format(summary.Total)))

	if summary.Empty {
		fmt.Fprintln(w, "No expenses recorded today.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Category", "Note", "Amount"})
	for _, e := range summary.Items {
		t.AppendRow(table.Row{h.categoryLabel(e.Category), e.Note, h.money.Format(e.Amount)})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	t.Render()
	return nil
}

// AddForm renders the add expense form.
func (h *Handlers) AddForm(w io.Writer) error {
	fmt.Fprintln(w, "Categories:")
	for i, c := range h.categories {
		fmt.Fprintf(w, "  %d. %s\n", i+1, h.categoryLabel(c.ID))
	}
	fmt.Fprintln(w, "\nsubmit <amount> <category> [note]")
	return nil
}

// Submit stores a new expense from form input. Validation errors from the
// store are returned unchanged.
func (h *Handlers) Submit(amount, category, note string) (models.Expense, error) {
	return h.store.Append(amount, h.resolveCategory(category), strings.TrimSpace(note))
}

// resolveCategory maps a catalog id, display name or 1-based index to the
// catalog id. Anything else is kept as typed.
func (h *Handlers) resolveCategory(input string) string {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(h.categories) {
		return h.categories[n-1].ID
	}
	for _, c := range h.categories {
		if strings.EqualFold(c.ID, input) || strings.EqualFold(c.Name, input) {
			return c.ID
		}
	}
	return input
}

func (h *Handlers) categoryLabel(category string) string {
	for _, c := range h.categories {
		if strings.EqualFold(c.ID, category) {
			if c.Icon == "" {
				return c.Name
			}
			return c.Icon + " " + c.Name
		}
	}
	return category
}
