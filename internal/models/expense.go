package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single recorded expense.
// Records are immutable once stored.
type Expense struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Note      string          `json:"note"`
	Date      string          `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
}

// MarshalJSON writes the amount as a JSON number so stored lists keep
// their numeric "amount" field.
func (e Expense) MarshalJSON() ([]byte, error) {
	type plain Expense
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{plain(e), json.Number(e.Amount.String())})
}

// Session represents the identity handed over by the host container.
// Its contents are opaque; only its presence matters.
type Session struct {
	Name  string `json:"name"`
	ID    string `json:"id"`
	Token string `json:"token"`
}
